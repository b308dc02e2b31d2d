// Package services contains the domain validators for the worldbuilding
// context. Validators enforce the cross-entity rules a single aggregate
// cannot check alone: name uniqueness within a scope, safe deletion, and
// chapter ordering. Expected rule failures are reported as
// domain.ValidationResult data; only infrastructure faults surface as errors.
package services

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// UniverseValidator enforces universe-level business rules.
type UniverseValidator struct {
	universes  repositories.UniverseRepository
	stories    repositories.StoryRepository
	characters repositories.CharacterRepository
}

// NewUniverseValidator wires the validator with the repositories it reads from.
func NewUniverseValidator(
	universes repositories.UniverseRepository,
	stories repositories.StoryRepository,
	characters repositories.CharacterRepository,
) *UniverseValidator {
	return &UniverseValidator{universes: universes, stories: stories, characters: characters}
}

// IsNameUnique reports whether no other universe carries a case-insensitive-
// equal name. excludeID skips the universe being updated; pass zero on create.
func (v *UniverseValidator) IsNameUnique(ctx context.Context, name models.EntityName, excludeID models.UniverseID) (bool, error) {
	matches, err := v.universes.Find(ctx, specifications.UniverseByName(name))
	if err != nil {
		return false, fmt.Errorf("check universe name: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// CanDelete reports whether the universe owns no stories and no characters.
func (v *UniverseValidator) CanDelete(ctx context.Context, u *models.Universe) (bool, error) {
	storyCount, err := v.stories.CountByUniverseID(ctx, u.ID)
	if err != nil {
		return false, fmt.Errorf("count stories: %w", err)
	}
	if storyCount > 0 {
		return false, nil
	}
	characterCount, err := v.characters.CountByUniverseID(ctx, u.ID)
	if err != nil {
		return false, fmt.Errorf("count characters: %w", err)
	}
	return characterCount == 0, nil
}

// ValidateCreation aggregates all creation rules for a universe. Length and
// emptiness are already enforced by the value objects; this layer adds the
// global uniqueness rule.
func (v *UniverseValidator) ValidateCreation(ctx context.Context, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, 0)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a universe named %q already exists", name.String()))
	}
	return result, nil
}

// ValidateUpdate aggregates all update rules for a universe, excluding the
// universe itself from the uniqueness check.
func (v *UniverseValidator) ValidateUpdate(ctx context.Context, id models.UniverseID, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, id)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a universe named %q already exists", name.String()))
	}
	return result, nil
}
