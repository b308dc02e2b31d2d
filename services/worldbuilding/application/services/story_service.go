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

// StoryService exposes the story use cases, including the chapter reorder
// flow that rewrites a story's whole reading order in one transaction.
type StoryService struct {
	uow        UnitOfWorkFactory
	validator  *domainsvcs.StoryValidator
	chapterVal *domainsvcs.ChapterValidator
	publisher  domainevents.Publisher
	stories    repositories.StoryRepository
}

// NewStoryService wires the story use cases.
func NewStoryService(
	uow UnitOfWorkFactory,
	validator *domainsvcs.StoryValidator,
	chapterVal *domainsvcs.ChapterValidator,
	publisher domainevents.Publisher,
	stories repositories.StoryRepository,
) *StoryService {
	return &StoryService{uow: uow, validator: validator, chapterVal: chapterVal, publisher: publisher, stories: stories}
}

// Create validates and persists a new story in its universe, then publishes
// its recorded events.
func (s *StoryService) Create(ctx context.Context, rawUniverseID int64, name, logline string) (*models.Story, domain.ValidationResult, error) {
	universeID, err := models.NewUniverseID(rawUniverseID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	nameVO, err := models.NewEntityName(name)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	loglineVO, err := models.NewLogline(logline)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	result, err := s.validator.ValidateCreation(ctx, universeID, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	story := models.NewStory(universeID, nameVO, loglineVO)

	uow := s.uow()
	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Stories().Add(ctx, story); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, story); err != nil {
		return story, result, err
	}
	return story, result, nil
}

// GetByID loads one story.
func (s *StoryService) GetByID(ctx context.Context, rawID int64) (*models.Story, error) {
	id, err := models.NewStoryID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.stories.GetByID(ctx, id)
}

// GetWithChapters loads one story together with its chapters in reading order.
func (s *StoryService) GetWithChapters(ctx context.Context, rawID int64) (*models.Story, error) {
	id, err := models.NewStoryID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.stories.FindOne(ctx, specifications.StoryWithChapters(id))
}

// ListByUniverse lists a universe's stories ordered by name.
func (s *StoryService) ListByUniverse(ctx context.Context, rawUniverseID int64) ([]*models.Story, error) {
	universeID, err := models.NewUniverseID(rawUniverseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.stories.Find(ctx, specifications.StoriesByUniverse(universeID))
}

// Update validates and persists changed story fields, then publishes the
// recorded update event.
func (s *StoryService) Update(ctx context.Context, rawID int64, name, logline string) (*models.Story, domain.ValidationResult, error) {
	id, err := models.NewStoryID(rawID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	nameVO, err := models.NewEntityName(name)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	loglineVO, err := models.NewLogline(logline)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	story, err := uow.Stories().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Valid(), err
	}

	result, err := s.validator.ValidateUpdate(ctx, story, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	if err := story.Update(nameVO, loglineVO); err != nil {
		return nil, result, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Stories().Update(ctx, story); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, story); err != nil {
		return story, result, err
	}
	return story, result, nil
}

// Delete removes a story with no chapters. A story that still owns chapters
// fails with ErrDeleteBlocked.
func (s *StoryService) Delete(ctx context.Context, rawID int64) error {
	id, err := models.NewStoryID(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	story, err := uow.Stories().GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.validator.CanDelete(ctx, story)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: story still owns chapters", domain.ErrDeleteBlocked)
	}

	if err := story.Delete(); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Stories().Delete(ctx, story.ID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, s.publisher, story)
}

// ReorderChapters rewrites the story's reading order to match orderedIDs.
// The list must contain every chapter of the story exactly once; anything
// else fails with ErrInvalidInput and the stored order stays untouched.
func (s *StoryService) ReorderChapters(ctx context.Context, rawStoryID int64, rawOrderedIDs []int64) (*models.Story, error) {
	storyID, err := models.NewStoryID(rawStoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	orderedIDs := make([]models.ChapterID, len(rawOrderedIDs))
	for i, raw := range rawOrderedIDs {
		id, err := models.NewChapterID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		orderedIDs[i] = id
	}

	uow := s.uow()
	story, err := uow.Stories().FindOne(ctx, specifications.StoryWithChapters(storyID))
	if err != nil {
		return nil, err
	}

	if err := s.chapterVal.ReorderChapters(story, orderedIDs); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.Stories().UpdateChapterOrders(ctx, story); err != nil {
		_ = uow.Rollback(ctx)
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err := publishAndClear(ctx, s.publisher, story); err != nil {
		return story, err
	}
	return story, nil
}
