// Package pubsub provides the generic publish/subscribe broker used to fan out
// catalog reloads and log entries.
package pubsub

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event being published.
type EventType string

const (
	ReloadedEvent     EventType = "reloaded"      // a new registry snapshot is live
	ReloadFailedEvent EventType = "reload_failed" // a reload was attempted and the old snapshot kept
	LoggedEvent       EventType = "logged"        // a log entry was written
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	ID        string
	Type      EventType
	Payload   T
	Timestamp time.Time
}

func newEvent[T any](eventType EventType, payload T) Event[T] {
	return Event[T]{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
