package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanTracksKeepsMatchedIDs(t *testing.T) {
	plan := planTracks([]int64{1, 2, 3}, []int64{2, 3, 0})

	require.Equal(t, map[int64]bool{2: true, 3: true}, plan.Keep)
	require.Equal(t, []int64{1}, plan.Deletes)
}

func TestPlanTracksAllNew(t *testing.T) {
	plan := planTracks(nil, []int64{0, 0})

	require.Empty(t, plan.Keep)
	require.Empty(t, plan.Deletes)
}

func TestPlanTracksEmptyPayloadDeletesAll(t *testing.T) {
	plan := planTracks([]int64{4, 5}, nil)

	require.Empty(t, plan.Keep)
	require.Equal(t, []int64{4, 5}, plan.Deletes)
}

func TestPlanTracksIgnoresForeignIDs(t *testing.T) {
	// an id from another CD must not count as a match
	plan := planTracks([]int64{1}, []int64{1, 999})

	require.Equal(t, map[int64]bool{1: true}, plan.Keep)
	require.Empty(t, plan.Deletes)
	require.False(t, plan.Keep[999])
}
