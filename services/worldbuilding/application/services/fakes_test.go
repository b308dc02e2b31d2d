package services

import (
	"context"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	domainevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// fakePublisher records every dispatched event in order.
type fakePublisher struct {
	published []domainevents.DomainEvent
}

func (p *fakePublisher) Publish(_ context.Context, evts ...domainevents.DomainEvent) error {
	p.published = append(p.published, evts...)
	return nil
}

// fakeUnitOfWork hands out the shared in-memory repositories and tracks the
// transaction lifecycle. commitErr simulates a commit-time failure.
type fakeUnitOfWork struct {
	universes  repositories.UniverseRepository
	stories    repositories.StoryRepository
	chapters   repositories.ChapterRepository
	characters repositories.CharacterRepository

	begun, committed, rolledBack bool
	commitErr                    error
}

func (u *fakeUnitOfWork) Universes() repositories.UniverseRepository   { return u.universes }
func (u *fakeUnitOfWork) Stories() repositories.StoryRepository        { return u.stories }
func (u *fakeUnitOfWork) Chapters() repositories.ChapterRepository     { return u.chapters }
func (u *fakeUnitOfWork) Characters() repositories.CharacterRepository { return u.characters }

func (u *fakeUnitOfWork) SaveChanges(context.Context) error { return nil }

func (u *fakeUnitOfWork) Begin(context.Context) error {
	if u.begun && !u.committed && !u.rolledBack {
		return domain.ErrTransactionActive
	}
	u.begun = true
	return nil
}

func (u *fakeUnitOfWork) Commit(context.Context) error {
	if !u.begun {
		return domain.ErrNoTransaction
	}
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback(context.Context) error {
	if !u.begun {
		return domain.ErrNoTransaction
	}
	u.rolledBack = true
	return nil
}

type fakeUniverseRepo struct {
	universes []*models.Universe
}

func (r *fakeUniverseRepo) Add(_ context.Context, u *models.Universe) error {
	r.universes = append(r.universes, u)
	return nil
}

func (r *fakeUniverseRepo) GetByID(_ context.Context, id models.UniverseID) (*models.Universe, error) {
	for _, u := range r.universes {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUniverseNotFound
}

func (r *fakeUniverseRepo) GetAll(context.Context) ([]*models.Universe, error) {
	return r.universes, nil
}

func (r *fakeUniverseRepo) Update(context.Context, *models.Universe) error { return nil }
func (r *fakeUniverseRepo) Delete(context.Context, models.UniverseID) error {
	return nil
}

func (r *fakeUniverseRepo) Find(_ context.Context, spec specifications.Spec[specifications.UniverseFilter]) ([]*models.Universe, error) {
	var matches []*models.Universe
	for _, u := range r.universes {
		f := spec.Filter
		if f.ID != nil && u.ID != *f.ID {
			continue
		}
		if f.NameEquals != nil && !u.Name.EqualsFold(*f.NameEquals) {
			continue
		}
		matches = append(matches, u)
	}
	return matches, nil
}

func (r *fakeUniverseRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) (*models.Universe, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrUniverseNotFound
	}
	return matches[0], nil
}

type fakeStoryRepo struct {
	stories []*models.Story
}

func (r *fakeStoryRepo) Add(_ context.Context, s *models.Story) error {
	r.stories = append(r.stories, s)
	return nil
}

func (r *fakeStoryRepo) GetByID(_ context.Context, id models.StoryID) (*models.Story, error) {
	for _, s := range r.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrStoryNotFound
}

func (r *fakeStoryRepo) GetAll(context.Context) ([]*models.Story, error) { return r.stories, nil }
func (r *fakeStoryRepo) Update(context.Context, *models.Story) error     { return nil }
func (r *fakeStoryRepo) Delete(context.Context, models.StoryID) error    { return nil }

func (r *fakeStoryRepo) Find(_ context.Context, spec specifications.Spec[specifications.StoryFilter]) ([]*models.Story, error) {
	var matches []*models.Story
	for _, s := range r.stories {
		f := spec.Filter
		if f.ID != nil && s.ID != *f.ID {
			continue
		}
		if f.UniverseID != nil && s.UniverseID != *f.UniverseID {
			continue
		}
		if f.NameEquals != nil && !s.Name.EqualsFold(*f.NameEquals) {
			continue
		}
		matches = append(matches, s)
	}
	return matches, nil
}

func (r *fakeStoryRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) (*models.Story, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrStoryNotFound
	}
	return matches[0], nil
}

func (r *fakeStoryRepo) CountByUniverseID(_ context.Context, universeID models.UniverseID) (int, error) {
	count := 0
	for _, s := range r.stories {
		if s.UniverseID == universeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeStoryRepo) UpdateChapterOrders(context.Context, *models.Story) error { return nil }

type fakeChapterRepo struct {
	chapters []*models.Chapter
	links    [][2]int64 // chapter id, character id
}

func (r *fakeChapterRepo) Add(_ context.Context, c *models.Chapter) error {
	r.chapters = append(r.chapters, c)
	return nil
}

func (r *fakeChapterRepo) GetByID(_ context.Context, id models.ChapterID) (*models.Chapter, error) {
	for _, c := range r.chapters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrChapterNotFound
}

func (r *fakeChapterRepo) GetAll(context.Context) ([]*models.Chapter, error) { return r.chapters, nil }
func (r *fakeChapterRepo) Update(context.Context, *models.Chapter) error     { return nil }
func (r *fakeChapterRepo) Delete(context.Context, models.ChapterID) error    { return nil }

func (r *fakeChapterRepo) Find(_ context.Context, spec specifications.Spec[specifications.ChapterFilter]) ([]*models.Chapter, error) {
	var matches []*models.Chapter
	for _, c := range r.chapters {
		f := spec.Filter
		if f.ID != nil && c.ID != *f.ID {
			continue
		}
		if f.StoryID != nil && c.StoryID != *f.StoryID {
			continue
		}
		if f.TitleEquals != nil && !c.Title.EqualsFold(*f.TitleEquals) {
			continue
		}
		matches = append(matches, c)
	}
	return matches, nil
}

func (r *fakeChapterRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) (*models.Chapter, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrChapterNotFound
	}
	return matches[0], nil
}

func (r *fakeChapterRepo) CountByStoryID(_ context.Context, storyID models.StoryID) (int, error) {
	count := 0
	for _, c := range r.chapters {
		if c.StoryID == storyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeChapterRepo) LinkCharacter(_ context.Context, chapterID models.ChapterID, characterID models.CharacterID) error {
	r.links = append(r.links, [2]int64{chapterID.Int64(), characterID.Int64()})
	return nil
}

func (r *fakeChapterRepo) UnlinkCharacter(_ context.Context, chapterID models.ChapterID, characterID models.CharacterID) error {
	for i, link := range r.links {
		if link == [2]int64{chapterID.Int64(), characterID.Int64()} {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCharacterRepo struct {
	characters []*models.Character
}

func (r *fakeCharacterRepo) Add(_ context.Context, c *models.Character) error {
	r.characters = append(r.characters, c)
	return nil
}

func (r *fakeCharacterRepo) GetByID(_ context.Context, id models.CharacterID) (*models.Character, error) {
	for _, c := range r.characters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCharacterNotFound
}

func (r *fakeCharacterRepo) GetAll(context.Context) ([]*models.Character, error) {
	return r.characters, nil
}

func (r *fakeCharacterRepo) Update(context.Context, *models.Character) error  { return nil }
func (r *fakeCharacterRepo) Delete(context.Context, models.CharacterID) error { return nil }

func (r *fakeCharacterRepo) Find(_ context.Context, spec specifications.Spec[specifications.CharacterFilter]) ([]*models.Character, error) {
	var matches []*models.Character
	for _, c := range r.characters {
		f := spec.Filter
		if f.ID != nil && c.ID != *f.ID {
			continue
		}
		if f.UniverseID != nil && c.UniverseID != *f.UniverseID {
			continue
		}
		if f.NameEquals != nil && !c.Name.EqualsFold(*f.NameEquals) {
			continue
		}
		matches = append(matches, c)
	}
	return matches, nil
}

func (r *fakeCharacterRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) (*models.Character, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrCharacterNotFound
	}
	return matches[0], nil
}

func (r *fakeCharacterRepo) CountByUniverseID(_ context.Context, universeID models.UniverseID) (int, error) {
	count := 0
	for _, c := range r.characters {
		if c.UniverseID == universeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCharacterRepo) CountChapterLinks(context.Context, models.CharacterID) (int, error) {
	return 0, nil
}
