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

// ChapterService exposes the chapter use cases, including the cast links
// between chapters and characters.
type ChapterService struct {
	uow        UnitOfWorkFactory
	validator  *domainsvcs.ChapterValidator
	publisher  domainevents.Publisher
	stories    repositories.StoryRepository
	chapters   repositories.ChapterRepository
	characters repositories.CharacterRepository
}

// NewChapterService wires the chapter use cases.
func NewChapterService(
	uow UnitOfWorkFactory,
	validator *domainsvcs.ChapterValidator,
	publisher domainevents.Publisher,
	stories repositories.StoryRepository,
	chapters repositories.ChapterRepository,
	characters repositories.CharacterRepository,
) *ChapterService {
	return &ChapterService{
		uow:        uow,
		validator:  validator,
		publisher:  publisher,
		stories:    stories,
		chapters:   chapters,
		characters: characters,
	}
}

// Create validates and appends a new chapter to the end of the story's
// reading order, then publishes its recorded events.
func (s *ChapterService) Create(ctx context.Context, rawStoryID int64, title, content string) (*models.Chapter, domain.ValidationResult, error) {
	storyID, err := models.NewStoryID(rawStoryID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	titleVO, err := models.NewEntityName(title)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	contentVO, err := models.NewChapterContent(content)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	result, err := s.validator.ValidateCreation(ctx, storyID, titleVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	// the next order slot comes from the story's loaded chapters
	story, err := s.stories.FindOne(ctx, specifications.StoryWithChapters(storyID))
	if err != nil {
		return nil, result, err
	}
	chapter, err := models.NewChapter(storyID, titleVO, s.validator.NextChapterOrder(story), contentVO)
	if err != nil {
		return nil, result, err
	}

	uow := s.uow()
	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Chapters().Add(ctx, chapter); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, chapter); err != nil {
		return chapter, result, err
	}
	return chapter, result, nil
}

// GetByID loads one chapter without its prose.
func (s *ChapterService) GetByID(ctx context.Context, rawID int64) (*models.Chapter, error) {
	id, err := models.NewChapterID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.chapters.GetByID(ctx, id)
}

// GetWithContent loads one chapter including its prose and linked cast.
func (s *ChapterService) GetWithContent(ctx context.Context, rawID int64) (*models.Chapter, error) {
	id, err := models.NewChapterID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.chapters.FindOne(ctx, specifications.ChapterWithContent(id))
}

// ListByStory lists a story's chapters in reading order, without prose.
func (s *ChapterService) ListByStory(ctx context.Context, rawStoryID int64) ([]*models.Chapter, error) {
	storyID, err := models.NewStoryID(rawStoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.chapters.Find(ctx, specifications.ChaptersByStoryOrdered(storyID))
}

// Update validates and persists changed chapter fields, then publishes the
// recorded update event. The reading-order slot never changes here.
func (s *ChapterService) Update(ctx context.Context, rawID int64, title, content string) (*models.Chapter, domain.ValidationResult, error) {
	id, err := models.NewChapterID(rawID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	titleVO, err := models.NewEntityName(title)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	contentVO, err := models.NewChapterContent(content)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	chapter, err := uow.Chapters().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Valid(), err
	}

	result, err := s.validator.ValidateUpdate(ctx, chapter, titleVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	if err := chapter.Update(titleVO, contentVO); err != nil {
		return nil, result, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Chapters().Update(ctx, chapter); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, chapter); err != nil {
		return chapter, result, err
	}
	return chapter, result, nil
}

// Delete removes a chapter. Cast links go with it; chapters are never
// delete-blocked.
func (s *ChapterService) Delete(ctx context.Context, rawID int64) error {
	id, err := models.NewChapterID(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	chapter, err := uow.Chapters().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := chapter.Delete(); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Chapters().Delete(ctx, chapter.ID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, s.publisher, chapter)
}

// LinkCharacter adds a character to the chapter's cast. Both sides must exist
// and belong to the same universe tree; linking twice fails with ErrInvalidInput.
func (s *ChapterService) LinkCharacter(ctx context.Context, rawChapterID, rawCharacterID int64) error {
	chapterID, characterID, err := s.linkIDs(rawChapterID, rawCharacterID)
	if err != nil {
		return err
	}

	uow := s.uow()
	chapter, err := uow.Chapters().FindOne(ctx, specifications.ChapterWithContent(chapterID))
	if err != nil {
		return err
	}
	character, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		return err
	}
	story, err := s.stories.GetByID(ctx, chapter.StoryID)
	if err != nil {
		return err
	}
	if story.UniverseID != character.UniverseID {
		return fmt.Errorf("%w: character belongs to a different universe than the chapter's story", domain.ErrInvalidInput)
	}

	if err := chapter.LinkCharacter(character); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Chapters().LinkCharacter(ctx, chapter.ID, character.ID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, s.publisher, chapter)
}

// UnlinkCharacter removes a character from the chapter's cast. The character
// must currently be linked.
func (s *ChapterService) UnlinkCharacter(ctx context.Context, rawChapterID, rawCharacterID int64) error {
	chapterID, characterID, err := s.linkIDs(rawChapterID, rawCharacterID)
	if err != nil {
		return err
	}

	uow := s.uow()
	chapter, err := uow.Chapters().FindOne(ctx, specifications.ChapterWithContent(chapterID))
	if err != nil {
		return err
	}

	if err := chapter.UnlinkCharacter(characterID); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Chapters().UnlinkCharacter(ctx, chapter.ID, characterID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, s.publisher, chapter)
}

func (s *ChapterService) linkIDs(rawChapterID, rawCharacterID int64) (models.ChapterID, models.CharacterID, error) {
	chapterID, err := models.NewChapterID(rawChapterID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	characterID, err := models.NewCharacterID(rawCharacterID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return chapterID, characterID, nil
}
