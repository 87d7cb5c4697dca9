package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefUnmarshalShapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Ref
	}{
		{"number", `7`, Ref{ID: 7, Valid: true}},
		{"string", `"7"`, Ref{ID: 7, Valid: true}},
		{"object", `{"id": 7}`, Ref{ID: 7, Valid: true}},
		{"object string id", `{"id": "7"}`, Ref{ID: 7, Valid: true}},
		{"old object", `{"_id": "42"}`, Ref{ID: 42, Valid: true}},
		{"wrapped", `{"ref": {"id": 7}}`, Ref{ID: 7, Valid: true}},
		{"null", `null`, Ref{}},
		{"null id", `{"id": null}`, Ref{}},
		{"null ref", `{"ref": null}`, Ref{}},
		{"empty string", `""`, Ref{}},
		{"empty object", `{}`, Ref{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r Ref
			require.NoError(t, json.Unmarshal([]byte(tc.in), &r))
			require.Equal(t, tc.want, r)
		})
	}
}

func TestRefUnmarshalRejectsGarbage(t *testing.T) {
	var r Ref
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &r))
	require.Error(t, json.Unmarshal([]byte(`true`), &r))
}

func TestRefMarshal(t *testing.T) {
	b, err := json.Marshal(Ref{ID: 9, Valid: true})
	require.NoError(t, err)
	require.Equal(t, "9", string(b))

	b, err = json.Marshal(Ref{})
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestRefPtr(t *testing.T) {
	require.Nil(t, Ref{}.Ptr())

	p := Ref{ID: 3, Valid: true}.Ptr()
	require.NotNil(t, p)
	require.Equal(t, int64(3), *p)
}

func TestTrackInputUnmarshalFlat(t *testing.T) {
	var tr TrackInput
	err := json.Unmarshal([]byte(`{"id": 5, "title": "Intro", "durationSecs": 183, "lyricId": 12}`), &tr)
	require.NoError(t, err)
	require.Equal(t, int64(5), tr.ID)
	require.Equal(t, "Intro", tr.Title)
	require.Equal(t, 183, tr.DurationSecs)
	require.Equal(t, Ref{ID: 12, Valid: true}, tr.LyricID)
}

func TestTrackInputUnmarshalLegacyShapes(t *testing.T) {
	// string id, "duration" instead of "durationSecs"
	var tr TrackInput
	err := json.Unmarshal([]byte(`{"_id": "8", "title": "Outro", "duration": 95}`), &tr)
	require.NoError(t, err)
	require.Equal(t, int64(8), tr.ID)
	require.Equal(t, 95, tr.DurationSecs)
	require.False(t, tr.LyricID.Valid)

	// the oldest admin wrapped each entry in a ref sub-document
	var wrapped TrackInput
	err = json.Unmarshal([]byte(`{"ref": {"id": 3, "title": "Bridge", "durationSecs": 40}}`), &wrapped)
	require.NoError(t, err)
	require.Equal(t, int64(3), wrapped.ID)
	require.Equal(t, "Bridge", wrapped.Title)
	require.Equal(t, 40, wrapped.DurationSecs)
}

func TestTrackInputUnmarshalNewEntry(t *testing.T) {
	var tr TrackInput
	err := json.Unmarshal([]byte(`{"title": "New Song"}`), &tr)
	require.NoError(t, err)
	require.Zero(t, tr.ID)
	require.Equal(t, "New Song", tr.Title)
	require.Zero(t, tr.DurationSecs)
}

func TestTrackInputDurationSecsWins(t *testing.T) {
	var tr TrackInput
	err := json.Unmarshal([]byte(`{"title": "x", "durationSecs": 10, "duration": 99}`), &tr)
	require.NoError(t, err)
	require.Equal(t, 10, tr.DurationSecs)
}
