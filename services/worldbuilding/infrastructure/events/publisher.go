// Package events adapts the shared Watermill EventBus to the worldbuilding
// domain's Publisher contract.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/ghuser/inkwell/pkg/events"
	domainevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

// Publisher dispatches domain events to their Watermill topics. Events are
// published one at a time so the aggregate's append order is preserved even
// across topics. Call only after a successful commit.
type Publisher struct {
	bus *pkgevents.EventBus
}

// NewPublisher returns a Publisher backed by the given EventBus.
func NewPublisher(bus *pkgevents.EventBus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish marshals and dispatches each event in order. A failure stops the
// batch; already-published events stay published (handlers are idempotent).
func (p *Publisher) Publish(ctx context.Context, evts ...domainevents.DomainEvent) error {
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", evt.Topic(), err)
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("event_id", evt.EventID().String())
		msg.Metadata.Set("occurred_at", strconv.FormatInt(evt.OccurredAt().UnixMilli(), 10))
		if err := p.bus.Publish(ctx, evt.Topic(), msg); err != nil {
			return fmt.Errorf("publish %s event: %w", evt.Topic(), err)
		}
	}
	return nil
}
