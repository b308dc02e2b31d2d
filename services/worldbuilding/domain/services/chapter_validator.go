package services

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// ChapterValidator enforces chapter-level business rules: title uniqueness
// within a story and the strictly increasing chapter order.
type ChapterValidator struct {
	chapters repositories.ChapterRepository
}

// NewChapterValidator wires the validator with the chapter repository.
func NewChapterValidator(chapters repositories.ChapterRepository) *ChapterValidator {
	return &ChapterValidator{chapters: chapters}
}

// IsTitleUnique reports whether no other chapter in the story carries a
// case-insensitive-equal title. excludeID skips the chapter being updated.
func (v *ChapterValidator) IsTitleUnique(ctx context.Context, title models.EntityName, storyID models.StoryID, excludeID models.ChapterID) (bool, error) {
	matches, err := v.chapters.Find(ctx, specifications.ChapterByTitleInStory(storyID, title))
	if err != nil {
		return false, fmt.Errorf("check chapter title: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// NextChapterOrder returns max(existing ChapterOrder) + 1 for the story's
// loaded chapters, or 1 when the story has none.
func (v *ChapterValidator) NextChapterOrder(s *models.Story) int {
	return s.NextChapterOrder()
}

// ReorderChapters reassigns ChapterOrder to match the position of each id in
// orderedIDs. The list must contain every chapter of the story exactly once;
// anything else fails with ErrInvalidInput (full-permutation contract).
func (v *ChapterValidator) ReorderChapters(s *models.Story, orderedIDs []models.ChapterID) error {
	return s.ReorderChapters(orderedIDs)
}

// ValidateCreation aggregates all creation rules for a chapter within its story.
func (v *ChapterValidator) ValidateCreation(ctx context.Context, storyID models.StoryID, title models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsTitleUnique(ctx, title, storyID, 0)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a chapter titled %q already exists in this story", title.String()))
	}
	return result, nil
}

// ValidateUpdate aggregates all update rules for a chapter, excluding the
// chapter itself from the uniqueness check.
func (v *ChapterValidator) ValidateUpdate(ctx context.Context, c *models.Chapter, title models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsTitleUnique(ctx, title, c.StoryID, c.ID)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a chapter titled %q already exists in this story", title.String()))
	}
	return result, nil
}
