package models

import (
	"time"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

// Chapter is one entry in a story's reading order. Characters appearing in
// the chapter are tracked through a many-to-many link.
type Chapter struct {
	ID           ChapterID
	StoryID      StoryID
	Title        EntityName
	ChapterOrder int
	Content      ChapterContent
	Characters   []*Character
	CreatedAt    time.Time

	eventLog
}

// NewChapter constructs a Chapter and records a ChapterCreatedEvent.
// order must be positive; callers obtain it from the chapter validator's
// NextChapterOrder.
func NewChapter(storyID StoryID, title EntityName, order int, content ChapterContent) (*Chapter, error) {
	if order <= 0 {
		return nil, domain.ErrInvalidInput
	}
	c := &Chapter{
		StoryID:      storyID,
		Title:        title,
		ChapterOrder: order,
		Content:      content,
		CreatedAt:    time.Now().UTC(),
	}
	c.record(events.ChapterCreatedEvent{
		Header:       events.NewHeader(),
		StoryID:      storyID.Int64(),
		Title:        title.String(),
		ChapterOrder: order,
	})
	return c, nil
}

// Update replaces the chapter's title and content and records a
// ChapterUpdatedEvent. The chapter order is changed only through the story's
// reorder operation.
func (c *Chapter) Update(title EntityName, content ChapterContent) error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	c.Title = title
	c.Content = content
	c.record(events.ChapterUpdatedEvent{
		Header:       events.NewHeader(),
		ChapterID:    c.ID.Int64(),
		StoryID:      c.StoryID.Int64(),
		Title:        title.String(),
		ChapterOrder: c.ChapterOrder,
	})
	return nil
}

// Delete marks the chapter for deletion and records a ChapterDeletedEvent.
func (c *Chapter) Delete() error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	c.deleted = true
	c.record(events.ChapterDeletedEvent{
		Header:    events.NewHeader(),
		ChapterID: c.ID.Int64(),
		StoryID:   c.StoryID.Int64(),
		Title:     c.Title.String(),
	})
	return nil
}

// LinkCharacter adds a character to the chapter's cast and records a
// ChapterCharacterLinkedEvent. Linking the same character twice is invalid.
func (c *Chapter) LinkCharacter(ch *Character) error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	for _, existing := range c.Characters {
		if existing.ID == ch.ID {
			return domain.ErrInvalidInput
		}
	}
	c.Characters = append(c.Characters, ch)
	c.record(events.ChapterCharacterLinkedEvent{
		Header:      events.NewHeader(),
		ChapterID:   c.ID.Int64(),
		CharacterID: ch.ID.Int64(),
	})
	return nil
}

// UnlinkCharacter removes a character from the chapter's cast and records a
// ChapterCharacterUnlinkedEvent. The character must currently be linked.
func (c *Chapter) UnlinkCharacter(id CharacterID) error {
	if c.deleted {
		return domain.ErrAggregateDeleted
	}
	for i, existing := range c.Characters {
		if existing.ID == id {
			c.Characters = append(c.Characters[:i], c.Characters[i+1:]...)
			c.record(events.ChapterCharacterUnlinkedEvent{
				Header:      events.NewHeader(),
				ChapterID:   c.ID.Int64(),
				CharacterID: id.Int64(),
			})
			return nil
		}
	}
	return domain.ErrInvalidInput
}

// BindID backfills the store-assigned identifier into the aggregate and any
// pending created event. Called by the repository immediately after insert.
func (c *Chapter) BindID(id ChapterID) {
	c.ID = id
	for i, e := range c.events {
		if ce, ok := e.(events.ChapterCreatedEvent); ok && ce.ChapterID == 0 {
			ce.ChapterID = id.Int64()
			c.events[i] = ce
		}
	}
}
