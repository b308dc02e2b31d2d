package models

import (
	"time"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

// Universe is the root aggregate of the worldbuilding context. It owns its
// stories and characters for cascading validation; persisting children is the
// repository layer's job.
type Universe struct {
	ID          UniverseID
	Name        EntityName
	Description EntityDescription
	Stories     []*Story
	Characters  []*Character
	CreatedAt   time.Time

	eventLog
}

// NewUniverse constructs a Universe from pre-validated value objects and
// records a UniverseCreatedEvent. The ID stays zero until the repository
// persists the aggregate and calls BindID.
func NewUniverse(name EntityName, description EntityDescription) *Universe {
	u := &Universe{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	u.record(events.UniverseCreatedEvent{
		Header:      events.NewHeader(),
		Name:        name.String(),
		Description: description.String(),
	})
	return u
}

// Update replaces the universe's name and description and records a
// UniverseUpdatedEvent. Fails once the universe has been deleted.
func (u *Universe) Update(name EntityName, description EntityDescription) error {
	if u.deleted {
		return domain.ErrAggregateDeleted
	}
	u.Name = name
	u.Description = description
	u.record(events.UniverseUpdatedEvent{
		Header:      events.NewHeader(),
		UniverseID:  u.ID.Int64(),
		Name:        name.String(),
		Description: description.String(),
	})
	return nil
}

// Delete marks the universe for deletion and records a UniverseDeletedEvent.
// Physical removal is the repository's responsibility, gated by the universe
// validator's safe-deletion check. No event can be recorded after this call.
func (u *Universe) Delete() error {
	if u.deleted {
		return domain.ErrAggregateDeleted
	}
	u.deleted = true
	u.record(events.UniverseDeletedEvent{
		Header:     events.NewHeader(),
		UniverseID: u.ID.Int64(),
		Name:       u.Name.String(),
	})
	return nil
}

// AddStory attaches a story to the universe. The story name must be unique
// among the universe's loaded stories (case-insensitive).
func (u *Universe) AddStory(s *Story) error {
	if u.deleted {
		return domain.ErrAggregateDeleted
	}
	for _, existing := range u.Stories {
		if existing.Name.EqualsFold(s.Name) {
			return domain.ErrDuplicateName
		}
	}
	s.UniverseID = u.ID
	u.Stories = append(u.Stories, s)
	return nil
}

// AddCharacter attaches a character to the universe. The character name must
// be unique among the universe's loaded characters (case-insensitive).
func (u *Universe) AddCharacter(c *Character) error {
	if u.deleted {
		return domain.ErrAggregateDeleted
	}
	for _, existing := range u.Characters {
		if existing.Name.EqualsFold(c.Name) {
			return domain.ErrDuplicateName
		}
	}
	c.UniverseID = u.ID
	u.Characters = append(u.Characters, c)
	return nil
}

// BindID backfills the store-assigned identifier into the aggregate and into
// any pending created event still awaiting dispatch. Called by the repository
// immediately after insert.
func (u *Universe) BindID(id UniverseID) {
	u.ID = id
	for i, e := range u.events {
		if ce, ok := e.(events.UniverseCreatedEvent); ok && ce.UniverseID == 0 {
			ce.UniverseID = id.Int64()
			u.events[i] = ce
		}
	}
}
