package domain

import (
	"log"
	"time"

	"github.com/Vovarama1992/backstage/internal/ports"
)

type eventBus struct {
	ch chan ports.ChangeEvent
}

// NewEventBus returns the publisher mutations report to. The channel is
// drained by the ws bridge in main; when nobody keeps up the event is
// dropped rather than blocking a request.
func NewEventBus() ports.EventPublisher {
	return &eventBus{ch: make(chan ports.ChangeEvent, 100)}
}

func (b *eventBus) Emit(ev ports.ChangeEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	select {
	case b.ch <- ev:
	default:
		log.Printf("[events][DROP] kind=%s id=%d action=%s", ev.Kind, ev.ID, ev.Action)
	}
}

func (b *eventBus) Events() <-chan ports.ChangeEvent {
	return b.ch
}
