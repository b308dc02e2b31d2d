package services

import (
	"context"

	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// In-memory repository fakes. Only the read paths the validators exercise are
// implemented with real behavior; writes are no-ops.

type fakeUniverseRepo struct {
	universes []*models.Universe
}

func (f *fakeUniverseRepo) Add(context.Context, *models.Universe) error    { return nil }
func (f *fakeUniverseRepo) Update(context.Context, *models.Universe) error { return nil }
func (f *fakeUniverseRepo) Delete(context.Context, models.UniverseID) error {
	return nil
}

func (f *fakeUniverseRepo) GetByID(_ context.Context, id models.UniverseID) (*models.Universe, error) {
	for _, u := range f.universes {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUniverseNotFound
}

func (f *fakeUniverseRepo) GetAll(context.Context) ([]*models.Universe, error) {
	return f.universes, nil
}

func (f *fakeUniverseRepo) Find(_ context.Context, spec specifications.Spec[specifications.UniverseFilter]) ([]*models.Universe, error) {
	var out []*models.Universe
	for _, u := range f.universes {
		if spec.Filter.ID != nil && u.ID != *spec.Filter.ID {
			continue
		}
		if spec.Filter.NameEquals != nil && !u.Name.EqualsFold(*spec.Filter.NameEquals) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUniverseRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) (*models.Universe, error) {
	matches, _ := f.Find(ctx, spec)
	if len(matches) == 0 {
		return nil, domain.ErrUniverseNotFound
	}
	return matches[0], nil
}

type fakeStoryRepo struct {
	stories []*models.Story
}

func (f *fakeStoryRepo) Add(context.Context, *models.Story) error    { return nil }
func (f *fakeStoryRepo) Update(context.Context, *models.Story) error { return nil }
func (f *fakeStoryRepo) Delete(context.Context, models.StoryID) error {
	return nil
}
func (f *fakeStoryRepo) UpdateChapterOrders(context.Context, *models.Story) error { return nil }

func (f *fakeStoryRepo) GetByID(_ context.Context, id models.StoryID) (*models.Story, error) {
	for _, s := range f.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrStoryNotFound
}

func (f *fakeStoryRepo) GetAll(context.Context) ([]*models.Story, error) { return f.stories, nil }

func (f *fakeStoryRepo) Find(_ context.Context, spec specifications.Spec[specifications.StoryFilter]) ([]*models.Story, error) {
	var out []*models.Story
	for _, s := range f.stories {
		if spec.Filter.ID != nil && s.ID != *spec.Filter.ID {
			continue
		}
		if spec.Filter.UniverseID != nil && s.UniverseID != *spec.Filter.UniverseID {
			continue
		}
		if spec.Filter.NameEquals != nil && !s.Name.EqualsFold(*spec.Filter.NameEquals) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoryRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) (*models.Story, error) {
	matches, _ := f.Find(ctx, spec)
	if len(matches) == 0 {
		return nil, domain.ErrStoryNotFound
	}
	return matches[0], nil
}

func (f *fakeStoryRepo) CountByUniverseID(_ context.Context, universeID models.UniverseID) (int, error) {
	count := 0
	for _, s := range f.stories {
		if s.UniverseID == universeID {
			count++
		}
	}
	return count, nil
}

type fakeChapterRepo struct {
	chapters []*models.Chapter
}

func (f *fakeChapterRepo) Add(context.Context, *models.Chapter) error    { return nil }
func (f *fakeChapterRepo) Update(context.Context, *models.Chapter) error { return nil }
func (f *fakeChapterRepo) Delete(context.Context, models.ChapterID) error {
	return nil
}
func (f *fakeChapterRepo) LinkCharacter(context.Context, models.ChapterID, models.CharacterID) error {
	return nil
}
func (f *fakeChapterRepo) UnlinkCharacter(context.Context, models.ChapterID, models.CharacterID) error {
	return nil
}

func (f *fakeChapterRepo) GetByID(_ context.Context, id models.ChapterID) (*models.Chapter, error) {
	for _, c := range f.chapters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrChapterNotFound
}

func (f *fakeChapterRepo) GetAll(context.Context) ([]*models.Chapter, error) { return f.chapters, nil }

func (f *fakeChapterRepo) Find(_ context.Context, spec specifications.Spec[specifications.ChapterFilter]) ([]*models.Chapter, error) {
	var out []*models.Chapter
	for _, c := range f.chapters {
		if spec.Filter.ID != nil && c.ID != *spec.Filter.ID {
			continue
		}
		if spec.Filter.StoryID != nil && c.StoryID != *spec.Filter.StoryID {
			continue
		}
		if spec.Filter.TitleEquals != nil && !c.Title.EqualsFold(*spec.Filter.TitleEquals) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeChapterRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) (*models.Chapter, error) {
	matches, _ := f.Find(ctx, spec)
	if len(matches) == 0 {
		return nil, domain.ErrChapterNotFound
	}
	return matches[0], nil
}

func (f *fakeChapterRepo) CountByStoryID(_ context.Context, storyID models.StoryID) (int, error) {
	count := 0
	for _, c := range f.chapters {
		if c.StoryID == storyID {
			count++
		}
	}
	return count, nil
}

type fakeCharacterRepo struct {
	characters []*models.Character
	links      map[models.CharacterID]int
}

func (f *fakeCharacterRepo) Add(context.Context, *models.Character) error    { return nil }
func (f *fakeCharacterRepo) Update(context.Context, *models.Character) error { return nil }
func (f *fakeCharacterRepo) Delete(context.Context, models.CharacterID) error {
	return nil
}

func (f *fakeCharacterRepo) GetByID(_ context.Context, id models.CharacterID) (*models.Character, error) {
	for _, c := range f.characters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCharacterNotFound
}

func (f *fakeCharacterRepo) GetAll(context.Context) ([]*models.Character, error) {
	return f.characters, nil
}

func (f *fakeCharacterRepo) Find(_ context.Context, spec specifications.Spec[specifications.CharacterFilter]) ([]*models.Character, error) {
	var out []*models.Character
	for _, c := range f.characters {
		if spec.Filter.ID != nil && c.ID != *spec.Filter.ID {
			continue
		}
		if spec.Filter.UniverseID != nil && c.UniverseID != *spec.Filter.UniverseID {
			continue
		}
		if spec.Filter.NameEquals != nil && !c.Name.EqualsFold(*spec.Filter.NameEquals) {
			continue
		}
		if spec.Filter.Tier != nil && c.Tier != *spec.Filter.Tier {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCharacterRepo) FindOne(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) (*models.Character, error) {
	matches, _ := f.Find(ctx, spec)
	if len(matches) == 0 {
		return nil, domain.ErrCharacterNotFound
	}
	return matches[0], nil
}

func (f *fakeCharacterRepo) CountByUniverseID(_ context.Context, universeID models.UniverseID) (int, error) {
	count := 0
	for _, c := range f.characters {
		if c.UniverseID == universeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCharacterRepo) CountChapterLinks(_ context.Context, id models.CharacterID) (int, error) {
	return f.links[id], nil
}
