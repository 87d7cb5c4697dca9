package infra

// trackPlan is the outcome of diffing an incoming track list against the
// rows currently stored for the parent: which incoming entries update
// existing rows, which are inserts, and which stored rows disappear.
type trackPlan struct {
	Keep    map[int64]bool // stored ids that stay
	Deletes []int64        // stored ids absent from the payload
}

// planTracks matches incoming ids against stored ones. Incoming ids that do
// not belong to the parent's stored set are treated as new rows, so a stale
// or foreign id can never update or steal another parent's track.
func planTracks(stored []int64, incoming []int64) trackPlan {
	have := make(map[int64]bool, len(stored))
	for _, id := range stored {
		have[id] = true
	}

	plan := trackPlan{Keep: make(map[int64]bool)}
	for _, id := range incoming {
		if id > 0 && have[id] {
			plan.Keep[id] = true
		}
	}
	for _, id := range stored {
		if !plan.Keep[id] {
			plan.Deletes = append(plan.Deletes, id)
		}
	}
	return plan
}
