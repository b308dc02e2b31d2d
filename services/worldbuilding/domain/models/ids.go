package models

import "fmt"

// Typed identifiers for each aggregate. Identifiers are assigned by the
// persistence layer (bigserial); zero means "not yet persisted" and is never
// a valid constructed identifier.
type (
	UniverseID  int64
	StoryID     int64
	ChapterID   int64
	CharacterID int64
)

// newID validates the shared identifier rule: strictly positive.
func newID(v int64, kind string) (int64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", kind, v)
	}
	return v, nil
}

// NewUniverseID constructs a valid UniverseID or returns an error for non-positive input.
func NewUniverseID(v int64) (UniverseID, error) {
	id, err := newID(v, "universe id")
	return UniverseID(id), err
}

// NewStoryID constructs a valid StoryID or returns an error for non-positive input.
func NewStoryID(v int64) (StoryID, error) {
	id, err := newID(v, "story id")
	return StoryID(id), err
}

// NewChapterID constructs a valid ChapterID or returns an error for non-positive input.
func NewChapterID(v int64) (ChapterID, error) {
	id, err := newID(v, "chapter id")
	return ChapterID(id), err
}

// NewCharacterID constructs a valid CharacterID or returns an error for non-positive input.
func NewCharacterID(v int64) (CharacterID, error) {
	id, err := newID(v, "character id")
	return CharacterID(id), err
}

func (id UniverseID) Int64() int64  { return int64(id) }
func (id StoryID) Int64() int64     { return int64(id) }
func (id ChapterID) Int64() int64   { return int64(id) }
func (id CharacterID) Int64() int64 { return int64(id) }

// IsZero reports whether the identifier has not been assigned yet.
func (id UniverseID) IsZero() bool  { return id == 0 }
func (id StoryID) IsZero() bool     { return id == 0 }
func (id ChapterID) IsZero() bool   { return id == 0 }
func (id CharacterID) IsZero() bool { return id == 0 }
