package models

import "github.com/ghuser/inkwell/services/worldbuilding/domain/events"

// eventLog is the ordered domain-event sequence owned by an aggregate.
// Only the aggregate's own mutators append to it; an external publisher reads
// the log via DomainEvents and then calls ClearDomainEvents — it never mutates
// the log directly. A deleted aggregate records no further events.
type eventLog struct {
	events  []events.DomainEvent
	deleted bool
}

func (l *eventLog) record(e events.DomainEvent) {
	l.events = append(l.events, e)
}

// DomainEvents returns a copy of the recorded events in append order.
func (l *eventLog) DomainEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(l.events))
	copy(out, l.events)
	return out
}

// ClearDomainEvents empties the log. Called by the event publisher after a
// successful dispatch.
func (l *eventLog) ClearDomainEvents() {
	l.events = nil
}

// IsDeleted reports whether Delete has been called on the aggregate.
func (l *eventLog) IsDeleted() bool { return l.deleted }
