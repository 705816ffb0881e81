// Package emitter provides an in-memory asynchronous event emission engine:
// listeners are registered against exact, case-sensitive event names and
// invoked on emit with defined ordering, concurrency, and failure isolation.
package emitter

import "time"

// Event is the event contract.
type Event interface {
	// Name is the event's unique identifier (e.g. "user.created").
	// Matching is exact and case-sensitive; there are no wildcards.
	Name() string
}

// BaseEvent can be embedded into concrete event structs.
type BaseEvent struct {
	name       string
	occurredAt time.Time
}

// NewEvent creates a base event stamped with the current time.
func NewEvent(name string) BaseEvent {
	return BaseEvent{
		name:       name,
		occurredAt: time.Now(),
	}
}

// Name returns the event name.
func (e BaseEvent) Name() string {
	return e.name
}

// OccurredAt returns the event creation time.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// PayloadEvent is a ready-made event carrying an arbitrary payload, for
// producers that do not want to define their own event types.
type PayloadEvent struct {
	BaseEvent
	payload interface{}
}

// NewPayloadEvent creates an event with an attached payload.
func NewPayloadEvent(name string, payload interface{}) *PayloadEvent {
	return &PayloadEvent{
		BaseEvent: NewEvent(name),
		payload:   payload,
	}
}

// Payload returns the attached payload.
func (e *PayloadEvent) Payload() interface{} {
	return e.payload
}
