package ports

import "time"

const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionPublished   = "published"
	ActionUnpublished = "unpublished"
)

// ChangeEvent is broadcast to connected admin dashboards after every
// successful mutation.
type ChangeEvent struct {
	Kind   string    `json:"kind"`
	ID     int64     `json:"id"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

type EventPublisher interface {
	Emit(ev ChangeEvent)
	Events() <-chan ChangeEvent
}
