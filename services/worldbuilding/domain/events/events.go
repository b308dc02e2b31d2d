// Package events defines the immutable domain event records emitted by
// worldbuilding aggregates and the publisher contract used to dispatch them.
//
// Events carry primitive payload fields copied from the aggregate at the
// moment of mutation, never live references, so a subscriber observes the
// aggregate's state at event time regardless of later mutations. Dispatch
// happens only after a successful commit; a rolled-back transaction must
// never make an event externally visible.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event record in this package.
type DomainEvent interface {
	// EventID is the unique publish-time identifier for deduplication.
	EventID() uuid.UUID
	// OccurredAt is the UTC timestamp of the mutation that produced the event.
	OccurredAt() time.Time
	// Topic is the Watermill topic the event is published to.
	Topic() string
}

// Publisher dispatches domain events after a successful commit.
// Implementations must preserve the order events are passed in.
type Publisher interface {
	Publish(ctx context.Context, evts ...DomainEvent) error
}

// Header holds the fields shared by every domain event.
// Embed by value; events are immutable once created.
type Header struct {
	ID      uuid.UUID `json:"event_id"`
	Version int       `json:"version"` // Schema version; increment on breaking changes
	At      time.Time `json:"occurred_at"`
}

// NewHeader returns a Header with a fresh event ID and the current UTC time.
func NewHeader() Header {
	return Header{ID: uuid.New(), Version: 1, At: time.Now().UTC()}
}

func (h Header) EventID() uuid.UUID    { return h.ID }
func (h Header) OccurredAt() time.Time { return h.At }
