package models

import (
	"time"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/events"
)

// Story is an ordered sequence of chapters inside a universe.
type Story struct {
	ID         StoryID
	UniverseID UniverseID
	Name       EntityName
	Logline    Logline
	Chapters   []*Chapter
	CreatedAt  time.Time

	eventLog
}

// NewStory constructs a Story from pre-validated value objects and records a
// StoryCreatedEvent. The ID stays zero until the repository calls BindID.
func NewStory(universeID UniverseID, name EntityName, logline Logline) *Story {
	s := &Story{
		UniverseID: universeID,
		Name:       name,
		Logline:    logline,
		CreatedAt:  time.Now().UTC(),
	}
	s.record(events.StoryCreatedEvent{
		Header:     events.NewHeader(),
		UniverseID: universeID.Int64(),
		Name:       name.String(),
		Logline:    logline.String(),
	})
	return s
}

// Update replaces the story's name and logline and records a StoryUpdatedEvent.
func (s *Story) Update(name EntityName, logline Logline) error {
	if s.deleted {
		return domain.ErrAggregateDeleted
	}
	s.Name = name
	s.Logline = logline
	s.record(events.StoryUpdatedEvent{
		Header:     events.NewHeader(),
		StoryID:    s.ID.Int64(),
		UniverseID: s.UniverseID.Int64(),
		Name:       name.String(),
		Logline:    logline.String(),
	})
	return nil
}

// Delete marks the story for deletion and records a StoryDeletedEvent.
// Physical removal is gated by the story validator's safe-deletion check.
func (s *Story) Delete() error {
	if s.deleted {
		return domain.ErrAggregateDeleted
	}
	s.deleted = true
	s.record(events.StoryDeletedEvent{
		Header:     events.NewHeader(),
		StoryID:    s.ID.Int64(),
		UniverseID: s.UniverseID.Int64(),
		Name:       s.Name.String(),
	})
	return nil
}

// AddChapter attaches a chapter to the story. The chapter title must be unique
// among the story's loaded chapters (case-insensitive).
func (s *Story) AddChapter(c *Chapter) error {
	if s.deleted {
		return domain.ErrAggregateDeleted
	}
	for _, existing := range s.Chapters {
		if existing.Title.EqualsFold(c.Title) {
			return domain.ErrDuplicateName
		}
	}
	c.StoryID = s.ID
	s.Chapters = append(s.Chapters, c)
	return nil
}

// NextChapterOrder returns max(existing ChapterOrder) + 1, or 1 when the story
// has no chapters.
func (s *Story) NextChapterOrder() int {
	next := 1
	for _, c := range s.Chapters {
		if c.ChapterOrder >= next {
			next = c.ChapterOrder + 1
		}
	}
	return next
}

// ReorderChapters reassigns each chapter's ChapterOrder to its position in
// orderedIDs (1-based). The list must be a full permutation of the story's
// current chapter set: every chapter id exactly once, no strangers. Records a
// StoryChaptersReorderedEvent on success.
func (s *Story) ReorderChapters(orderedIDs []ChapterID) error {
	if s.deleted {
		return domain.ErrAggregateDeleted
	}
	if len(orderedIDs) != len(s.Chapters) {
		return domain.ErrInvalidInput
	}

	byID := make(map[ChapterID]*Chapter, len(s.Chapters))
	for _, c := range s.Chapters {
		byID[c.ID] = c
	}

	seen := make(map[ChapterID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] || byID[id] == nil {
			return domain.ErrInvalidInput
		}
		seen[id] = true
	}

	ids := make([]int64, len(orderedIDs))
	for pos, id := range orderedIDs {
		byID[id].ChapterOrder = pos + 1
		ids[pos] = id.Int64()
	}

	s.record(events.StoryChaptersReorderedEvent{
		Header:     events.NewHeader(),
		StoryID:    s.ID.Int64(),
		ChapterIDs: ids,
	})
	return nil
}

// BindID backfills the store-assigned identifier into the aggregate and any
// pending created event. Called by the repository immediately after insert.
func (s *Story) BindID(id StoryID) {
	s.ID = id
	for i, e := range s.events {
		if ce, ok := e.(events.StoryCreatedEvent); ok && ce.StoryID == 0 {
			ce.StoryID = id.Int64()
			s.events[i] = ce
		}
	}
}
