package services

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// StoryValidator enforces story-level business rules.
type StoryValidator struct {
	stories  repositories.StoryRepository
	chapters repositories.ChapterRepository
}

// NewStoryValidator wires the validator with the repositories it reads from.
func NewStoryValidator(stories repositories.StoryRepository, chapters repositories.ChapterRepository) *StoryValidator {
	return &StoryValidator{stories: stories, chapters: chapters}
}

// IsNameUnique reports whether no other story in the universe carries a
// case-insensitive-equal name. excludeID skips the story being updated.
func (v *StoryValidator) IsNameUnique(ctx context.Context, name models.EntityName, universeID models.UniverseID, excludeID models.StoryID) (bool, error) {
	matches, err := v.stories.Find(ctx, specifications.StoryByNameInUniverse(universeID, name))
	if err != nil {
		return false, fmt.Errorf("check story name: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// CanDelete reports whether the story owns no chapters.
func (v *StoryValidator) CanDelete(ctx context.Context, s *models.Story) (bool, error) {
	count, err := v.chapters.CountByStoryID(ctx, s.ID)
	if err != nil {
		return false, fmt.Errorf("count chapters: %w", err)
	}
	return count == 0, nil
}

// ValidateCreation aggregates all creation rules for a story within its universe.
func (v *StoryValidator) ValidateCreation(ctx context.Context, universeID models.UniverseID, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, universeID, 0)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a story named %q already exists in this universe", name.String()))
	}
	return result, nil
}

// ValidateUpdate aggregates all update rules for a story, excluding the story
// itself from the uniqueness check.
func (v *StoryValidator) ValidateUpdate(ctx context.Context, s *models.Story, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, s.UniverseID, s.ID)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a story named %q already exists in this universe", name.String()))
	}
	return result, nil
}
