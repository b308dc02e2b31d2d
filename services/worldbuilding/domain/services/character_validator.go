package services

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// CharacterValidator enforces character-level business rules.
type CharacterValidator struct {
	characters repositories.CharacterRepository
}

// NewCharacterValidator wires the validator with the character repository.
func NewCharacterValidator(characters repositories.CharacterRepository) *CharacterValidator {
	return &CharacterValidator{characters: characters}
}

// IsNameUnique reports whether no other character in the universe carries a
// case-insensitive-equal name. excludeID skips the character being updated.
func (v *CharacterValidator) IsNameUnique(ctx context.Context, name models.EntityName, universeID models.UniverseID, excludeID models.CharacterID) (bool, error) {
	matches, err := v.characters.Find(ctx, specifications.CharacterByNameInUniverse(universeID, name))
	if err != nil {
		return false, fmt.Errorf("check character name: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// CanDelete reports whether the character is no longer linked to any chapter.
func (v *CharacterValidator) CanDelete(ctx context.Context, c *models.Character) (bool, error) {
	links, err := v.characters.CountChapterLinks(ctx, c.ID)
	if err != nil {
		return false, fmt.Errorf("count chapter links: %w", err)
	}
	return links == 0, nil
}

// ValidateCreation aggregates all creation rules for a character within its universe.
func (v *CharacterValidator) ValidateCreation(ctx context.Context, universeID models.UniverseID, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, universeID, 0)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a character named %q already exists in this universe", name.String()))
	}
	return result, nil
}

// ValidateUpdate aggregates all update rules for a character, excluding the
// character itself from the uniqueness check.
func (v *CharacterValidator) ValidateUpdate(ctx context.Context, c *models.Character, name models.EntityName) (domain.ValidationResult, error) {
	result := domain.Valid()
	unique, err := v.IsNameUnique(ctx, name, c.UniverseID, c.ID)
	if err != nil {
		return result, err
	}
	if !unique {
		result.Add(fmt.Sprintf("a character named %q already exists in this universe", name.String()))
	}
	return result, nil
}
