package services

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	domainevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	domainsvcs "github.com/ghuser/inkwell/services/worldbuilding/domain/services"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// CharacterService exposes the character use cases.
type CharacterService struct {
	uow        UnitOfWorkFactory
	validator  *domainsvcs.CharacterValidator
	publisher  domainevents.Publisher
	characters repositories.CharacterRepository
}

// NewCharacterService wires the character use cases.
func NewCharacterService(
	uow UnitOfWorkFactory,
	validator *domainsvcs.CharacterValidator,
	publisher domainevents.Publisher,
	characters repositories.CharacterRepository,
) *CharacterService {
	return &CharacterService{uow: uow, validator: validator, publisher: publisher, characters: characters}
}

// Create validates and persists a new character in its universe, then
// publishes its recorded events.
func (s *CharacterService) Create(ctx context.Context, rawUniverseID int64, name, tier, bio, notes string) (*models.Character, domain.ValidationResult, error) {
	universeID, err := models.NewUniverseID(rawUniverseID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	nameVO, tierVO, bioVO, notesVO, err := characterFields(name, tier, bio, notes)
	if err != nil {
		return nil, domain.Valid(), err
	}

	result, err := s.validator.ValidateCreation(ctx, universeID, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	character := models.NewCharacter(universeID, nameVO, tierVO, bioVO, notesVO)

	uow := s.uow()
	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Characters().Add(ctx, character); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, character); err != nil {
		return character, result, err
	}
	return character, result, nil
}

// GetByID loads one character.
func (s *CharacterService) GetByID(ctx context.Context, rawID int64) (*models.Character, error) {
	id, err := models.NewCharacterID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.characters.GetByID(ctx, id)
}

// ListByUniverse lists a universe's characters ordered by name.
func (s *CharacterService) ListByUniverse(ctx context.Context, rawUniverseID int64) ([]*models.Character, error) {
	universeID, err := models.NewUniverseID(rawUniverseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.characters.Find(ctx, specifications.CharactersByUniverseOrderedByName(universeID))
}

// CastByChapter lists the characters linked to one chapter, main tier first.
func (s *CharacterService) CastByChapter(ctx context.Context, rawChapterID int64) ([]*models.Character, error) {
	chapterID, err := models.NewChapterID(rawChapterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.characters.Find(ctx, specifications.CharactersByChapter(chapterID))
}

// Update validates and persists a changed character profile, then publishes
// the recorded update event.
func (s *CharacterService) Update(ctx context.Context, rawID int64, name, tier, bio, notes string) (*models.Character, domain.ValidationResult, error) {
	id, err := models.NewCharacterID(rawID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	nameVO, tierVO, bioVO, notesVO, err := characterFields(name, tier, bio, notes)
	if err != nil {
		return nil, domain.Valid(), err
	}

	uow := s.uow()
	character, err := uow.Characters().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Valid(), err
	}

	result, err := s.validator.ValidateUpdate(ctx, character, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	if err := character.Update(nameVO, tierVO, bioVO, notesVO); err != nil {
		return nil, result, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Characters().Update(ctx, character); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, character); err != nil {
		return character, result, err
	}
	return character, result, nil
}

// Delete removes a character that no chapter references. A character still
// linked to any chapter fails with ErrDeleteBlocked.
func (s *CharacterService) Delete(ctx context.Context, rawID int64) error {
	id, err := models.NewCharacterID(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	character, err := uow.Characters().GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.validator.CanDelete(ctx, character)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: character is still linked to chapters", domain.ErrDeleteBlocked)
	}

	if err := character.Delete(); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Characters().Delete(ctx, character.ID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, s.publisher, character)
}

func characterFields(name, tier, bio, notes string) (models.EntityName, models.CharacterTier, models.CharacterBio, models.CharacterNotes, error) {
	nameVO, err := models.NewEntityName(name)
	if err != nil {
		return "", "", "", "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	tierVO, err := models.ParseCharacterTier(tier)
	if err != nil {
		return "", "", "", "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	bioVO, err := models.NewCharacterBio(bio)
	if err != nil {
		return "", "", "", "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	notesVO, err := models.NewCharacterNotes(notes)
	if err != nil {
		return "", "", "", "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nameVO, tierVO, bioVO, notesVO, nil
}
