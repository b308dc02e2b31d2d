// Package repositories declares the persistence interfaces owned by the
// worldbuilding domain; infrastructure implements them. Single-entity reads
// report absence through the domain's *NotFound sentinels (match with
// errors.Is), never by panicking; list reads return empty slices.
package repositories

import (
	"context"

	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// UniverseRepository persists the Universe aggregate.
type UniverseRepository interface {
	// Add inserts a new universe and binds the store-assigned ID onto it.
	Add(ctx context.Context, u *models.Universe) error
	GetByID(ctx context.Context, id models.UniverseID) (*models.Universe, error)
	GetAll(ctx context.Context) ([]*models.Universe, error)
	Update(ctx context.Context, u *models.Universe) error
	Delete(ctx context.Context, id models.UniverseID) error

	// Find translates the specification into a store query.
	Find(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) ([]*models.Universe, error)
	// FindOne returns the first match or ErrUniverseNotFound.
	FindOne(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) (*models.Universe, error)
}

// StoryRepository persists the Story aggregate.
type StoryRepository interface {
	Add(ctx context.Context, s *models.Story) error
	GetByID(ctx context.Context, id models.StoryID) (*models.Story, error)
	GetAll(ctx context.Context) ([]*models.Story, error)
	Update(ctx context.Context, s *models.Story) error
	Delete(ctx context.Context, id models.StoryID) error

	Find(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) ([]*models.Story, error)
	FindOne(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) (*models.Story, error)

	// CountByUniverseID reports how many stories a universe owns; used by the
	// universe validator's safe-deletion check.
	CountByUniverseID(ctx context.Context, universeID models.UniverseID) (int, error)
	// UpdateChapterOrders persists the ChapterOrder of each chapter in one
	// round-trip after a reorder.
	UpdateChapterOrders(ctx context.Context, s *models.Story) error
}

// ChapterRepository persists the Chapter aggregate and its character links.
type ChapterRepository interface {
	Add(ctx context.Context, c *models.Chapter) error
	GetByID(ctx context.Context, id models.ChapterID) (*models.Chapter, error)
	GetAll(ctx context.Context) ([]*models.Chapter, error)
	Update(ctx context.Context, c *models.Chapter) error
	Delete(ctx context.Context, id models.ChapterID) error

	Find(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) ([]*models.Chapter, error)
	FindOne(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) (*models.Chapter, error)

	CountByStoryID(ctx context.Context, storyID models.StoryID) (int, error)
	LinkCharacter(ctx context.Context, chapterID models.ChapterID, characterID models.CharacterID) error
	UnlinkCharacter(ctx context.Context, chapterID models.ChapterID, characterID models.CharacterID) error
}

// CharacterRepository persists the Character aggregate.
type CharacterRepository interface {
	Add(ctx context.Context, c *models.Character) error
	GetByID(ctx context.Context, id models.CharacterID) (*models.Character, error)
	GetAll(ctx context.Context) ([]*models.Character, error)
	Update(ctx context.Context, c *models.Character) error
	Delete(ctx context.Context, id models.CharacterID) error

	Find(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) ([]*models.Character, error)
	FindOne(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) (*models.Character, error)

	CountByUniverseID(ctx context.Context, universeID models.UniverseID) (int, error)
	// CountChapterLinks reports how many chapters still reference the
	// character; used by the character validator's safe-deletion check.
	CountChapterLinks(ctx context.Context, id models.CharacterID) (int, error)
}
