package services

import (
	"context"
	"testing"

	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
)

func TestUniverseValidator_IsNameUnique(t *testing.T) {
	universes := &fakeUniverseRepo{universes: []*models.Universe{
		{ID: 1, Name: "The Ember Realms"},
		{ID: 2, Name: "Arrakis"},
	}}
	v := NewUniverseValidator(universes, &fakeStoryRepo{}, &fakeCharacterRepo{})
	ctx := context.Background()

	tests := []struct {
		name      string
		candidate models.EntityName
		excludeID models.UniverseID
		want      bool
	}{
		{name: "fresh name", candidate: "Middle Earth", want: true},
		{name: "taken name", candidate: "Arrakis", want: false},
		{name: "taken name different case", candidate: "ARRAKIS", want: false},
		{name: "own name excluded on update", candidate: "Arrakis", excludeID: 2, want: true},
		{name: "other's name still blocks update", candidate: "The Ember Realms", excludeID: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.IsNameUnique(ctx, tt.candidate, tt.excludeID)
			if err != nil {
				t.Fatalf("IsNameUnique failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsNameUnique(%q, %d) = %v, want %v", tt.candidate, tt.excludeID, got, tt.want)
			}
		})
	}
}

func TestUniverseValidator_CanDelete(t *testing.T) {
	ctx := context.Background()
	u := &models.Universe{ID: 1, Name: "Realm"}

	t.Run("empty universe", func(t *testing.T) {
		v := NewUniverseValidator(&fakeUniverseRepo{}, &fakeStoryRepo{}, &fakeCharacterRepo{})
		ok, err := v.CanDelete(ctx, u)
		if err != nil || !ok {
			t.Fatalf("CanDelete = %v, %v; want true", ok, err)
		}
	})

	t.Run("universe with stories", func(t *testing.T) {
		stories := &fakeStoryRepo{stories: []*models.Story{{ID: 1, UniverseID: 1, Name: "S"}}}
		v := NewUniverseValidator(&fakeUniverseRepo{}, stories, &fakeCharacterRepo{})
		ok, err := v.CanDelete(ctx, u)
		if err != nil || ok {
			t.Fatalf("CanDelete = %v, %v; want false", ok, err)
		}
	})

	t.Run("universe with characters", func(t *testing.T) {
		characters := &fakeCharacterRepo{characters: []*models.Character{{ID: 1, UniverseID: 1, Name: "C"}}}
		v := NewUniverseValidator(&fakeUniverseRepo{}, &fakeStoryRepo{}, characters)
		ok, err := v.CanDelete(ctx, u)
		if err != nil || ok {
			t.Fatalf("CanDelete = %v, %v; want false", ok, err)
		}
	})
}

func TestUniverseValidator_ValidateCreation(t *testing.T) {
	universes := &fakeUniverseRepo{universes: []*models.Universe{{ID: 1, Name: "Taken"}}}
	v := NewUniverseValidator(universes, &fakeStoryRepo{}, &fakeCharacterRepo{})
	ctx := context.Background()

	result, err := v.ValidateCreation(ctx, "Fresh")
	if err != nil {
		t.Fatalf("ValidateCreation failed: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("fresh name should be valid, got %v", result.Errors)
	}

	result, err = v.ValidateCreation(ctx, "taken")
	if err != nil {
		t.Fatalf("ValidateCreation failed: %v", err)
	}
	if result.IsValid() {
		t.Fatalf("taken name should be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 rule failure, got %v", result.Errors)
	}
}

func TestStoryValidator_uniquenessIsScopedToUniverse(t *testing.T) {
	stories := &fakeStoryRepo{stories: []*models.Story{
		{ID: 1, UniverseID: 1, Name: "The Ashen Crown"},
	}}
	v := NewStoryValidator(stories, &fakeChapterRepo{})
	ctx := context.Background()

	ok, err := v.IsNameUnique(ctx, "the ashen crown", 1, 0)
	if err != nil || ok {
		t.Fatalf("same name in same universe should not be unique, got %v, %v", ok, err)
	}

	// same name in a different universe is fine
	ok, err = v.IsNameUnique(ctx, "The Ashen Crown", 2, 0)
	if err != nil || !ok {
		t.Fatalf("same name in another universe should be unique, got %v, %v", ok, err)
	}
}

func TestStoryValidator_CanDelete(t *testing.T) {
	chapters := &fakeChapterRepo{chapters: []*models.Chapter{{ID: 1, StoryID: 7, Title: "One"}}}
	v := NewStoryValidator(&fakeStoryRepo{}, chapters)
	ctx := context.Background()

	ok, err := v.CanDelete(ctx, &models.Story{ID: 7})
	if err != nil || ok {
		t.Fatalf("story with chapters should not be deletable, got %v, %v", ok, err)
	}

	ok, err = v.CanDelete(ctx, &models.Story{ID: 8})
	if err != nil || !ok {
		t.Fatalf("chapterless story should be deletable, got %v, %v", ok, err)
	}
}

func TestChapterValidator_titleUniquenessScopedToStory(t *testing.T) {
	chapters := &fakeChapterRepo{chapters: []*models.Chapter{
		{ID: 1, StoryID: 1, Title: "Maps of a Burned City"},
	}}
	v := NewChapterValidator(chapters)
	ctx := context.Background()

	ok, err := v.IsTitleUnique(ctx, "MAPS OF A BURNED CITY", 1, 0)
	if err != nil || ok {
		t.Fatalf("duplicate title in story should not be unique, got %v, %v", ok, err)
	}

	ok, err = v.IsTitleUnique(ctx, "Maps of a Burned City", 2, 0)
	if err != nil || !ok {
		t.Fatalf("same title in another story should be unique, got %v, %v", ok, err)
	}

	// updating the chapter itself keeps its own title available
	ok, err = v.IsTitleUnique(ctx, "Maps of a Burned City", 1, 1)
	if err != nil || !ok {
		t.Fatalf("chapter's own title should pass on update, got %v, %v", ok, err)
	}
}

func TestCharacterValidator_CanDelete(t *testing.T) {
	characters := &fakeCharacterRepo{links: map[models.CharacterID]int{4: 2}}
	v := NewCharacterValidator(characters)
	ctx := context.Background()

	ok, err := v.CanDelete(ctx, &models.Character{ID: 4})
	if err != nil || ok {
		t.Fatalf("linked character should not be deletable, got %v, %v", ok, err)
	}

	ok, err = v.CanDelete(ctx, &models.Character{ID: 5})
	if err != nil || !ok {
		t.Fatalf("unlinked character should be deletable, got %v, %v", ok, err)
	}
}

func TestCharacterValidator_ValidateUpdate(t *testing.T) {
	characters := &fakeCharacterRepo{characters: []*models.Character{
		{ID: 1, UniverseID: 1, Name: "Serela"},
		{ID: 2, UniverseID: 1, Name: "Kade"},
	}}
	v := NewCharacterValidator(characters)
	ctx := context.Background()

	// renaming onto another character's name fails
	result, err := v.ValidateUpdate(ctx, &models.Character{ID: 2, UniverseID: 1, Name: "Kade"}, "serela")
	if err != nil {
		t.Fatalf("ValidateUpdate failed: %v", err)
	}
	if result.IsValid() {
		t.Fatalf("rename onto existing name should be invalid")
	}

	// keeping your own name passes
	result, err = v.ValidateUpdate(ctx, &models.Character{ID: 1, UniverseID: 1, Name: "Serela"}, "Serela")
	if err != nil {
		t.Fatalf("ValidateUpdate failed: %v", err)
	}
	if !result.IsValid() {
		t.Fatalf("own name should be valid on update, got %v", result.Errors)
	}
}
