package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Ref is a nullable record reference as sent by the admin forms. The old
// admin serialized references in several shapes depending on the screen and
// its age:
//
//	7                    plain id
//	"7"                  id as string
//	{"id": 7}            object form
//	{"_id": "7"}         oldest object form
//	{"ref": {"id": 7}}   wrapped sub-document
//	null                 no reference
//
// All of them normalize to (ID, Valid).
type Ref struct {
	ID    int64
	Valid bool
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*r = Ref{}
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("ref: bad id %q", s)
		}
		*r = Ref{ID: id, Valid: true}
		return nil

	case '{':
		var obj struct {
			ID    json.RawMessage `json:"id"`
			OldID json.RawMessage `json:"_id"`
			Ref   json.RawMessage `json:"ref"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		switch {
		case len(obj.Ref) > 0 && !bytes.Equal(bytes.TrimSpace(obj.Ref), []byte("null")):
			return r.UnmarshalJSON(obj.Ref)
		case len(obj.ID) > 0:
			return r.UnmarshalJSON(obj.ID)
		case len(obj.OldID) > 0:
			return r.UnmarshalJSON(obj.OldID)
		}
		*r = Ref{}
		return nil

	default:
		id, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("ref: bad id %q", b)
		}
		*r = Ref{ID: id, Valid: true}
		return nil
	}
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, r.ID, 10), nil
}

// Ptr returns the id as a nullable column value.
func (r Ref) Ptr() *int64 {
	if !r.Valid {
		return nil
	}
	id := r.ID
	return &id
}

// TrackInput is one entry of an incoming CD/DVD track list. Entries arrive
// either flat or wrapped in a legacy "ref" sub-document; ids may be numbers
// or strings, and the oldest payloads say "duration" instead of
// "durationSecs". Position is not read from the entry: order in the array is
// the order that counts.
type TrackInput struct {
	ID           int64
	Title        string
	DurationSecs int
	LyricID      Ref
}

func (t *TrackInput) UnmarshalJSON(b []byte) error {
	var raw struct {
		Ref          json.RawMessage `json:"ref"`
		ID           Ref             `json:"id"`
		OldID        Ref             `json:"_id"`
		Title        string          `json:"title"`
		DurationSecs *int            `json:"durationSecs"`
		Duration     *int            `json:"duration"`
		LyricID      Ref             `json:"lyricId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if len(raw.Ref) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Ref), []byte("null")) {
		return t.UnmarshalJSON(raw.Ref)
	}

	switch {
	case raw.ID.Valid:
		t.ID = raw.ID.ID
	case raw.OldID.Valid:
		t.ID = raw.OldID.ID
	default:
		t.ID = 0
	}

	t.Title = raw.Title
	switch {
	case raw.DurationSecs != nil:
		t.DurationSecs = *raw.DurationSecs
	case raw.Duration != nil:
		t.DurationSecs = *raw.Duration
	default:
		t.DurationSecs = 0
	}
	t.LyricID = raw.LyricID

	return nil
}
