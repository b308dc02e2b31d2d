package models

import (
	"time"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

// Character belongs to one universe and may appear in chapters across many
// stories through a many-to-many link.
type Character struct {
	ID         CharacterID
	UniverseID UniverseID
	Name       EntityName
	Tier       CharacterTier
	Bio        CharacterBio
	Notes      CharacterNotes
	CreatedAt  time.Time

	eventLog
}

// NewCharacter constructs a Character from pre-validated value objects and
// records a CharacterCreatedEvent. The ID stays zero until the repository
// calls BindID.
func NewCharacter(universeID UniverseID, name EntityName, tier CharacterTier, bio CharacterBio, notes CharacterNotes) *Character {
	c := &Character{
		UniverseID: universeID,
		Name:       name,
		Tier:       tier,
		Bio:        bio,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}
	c.record(events.CharacterCreatedEvent{
		Header:     events.NewHeader(),
		UniverseID: universeID.Int64(),
		Name:       name.String(),
		Tier:       tier.String(),
	})
	return c
}

// Update replaces the character's profile and records a CharacterUpdatedEvent.
func (c *Character) Update(name EntityName, tier CharacterTier, bio CharacterBio, notes CharacterNotes) error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	c.Name = name
	c.Tier = tier
	c.Bio = bio
	c.Notes = notes
	c.record(events.CharacterUpdatedEvent{
		Header:      events.NewHeader(),
		CharacterID: c.ID.Int64(),
		UniverseID:  c.UniverseID.Int64(),
		Name:        name.String(),
		Tier:        tier.String(),
	})
	return nil
}

// Delete marks the character for deletion and records a CharacterDeletedEvent.
// Physical removal is gated by the character validator, which blocks deletion
// while the character is still linked to any chapter.
func (c *Character) Delete() error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	c.deleted = true
	c.record(events.CharacterDeletedEvent{
		Header:      events.NewHeader(),
		CharacterID: c.ID.Int64(),
		UniverseID:  c.UniverseID.Int64(),
		Name:        c.Name.String(),
	})
	return nil
}

// BindID backfills the store-assigned identifier into the aggregate and any
// pending created event. Called by the repository immediately after insert.
func (c *Character) BindID(id CharacterID) {
	c.ID = id
	for i, e := range c.events {
		if ce, ok := e.(events.CharacterCreatedEvent); ok && ce.CharacterID == 0 {
			ce.CharacterID = id.Int64()
			c.events[i] = ce
		}
	}
}
