package specifications

import "github.com/ghuser/inkwell/services/worldbuilding/domain/models"

// UniverseFilter is the closed predicate set for universe reads.
type UniverseFilter struct {
	ID           *models.UniverseID
	NameEquals   *models.EntityName // case-insensitive match
	NameContains string             // case-insensitive substring search
}

// StoryFilter is the closed predicate set for story reads.
type StoryFilter struct {
	ID         *models.StoryID
	UniverseID *models.UniverseID
	NameEquals *models.EntityName
}

// ChapterFilter is the closed predicate set for chapter reads.
type ChapterFilter struct {
	ID          *models.ChapterID
	StoryID     *models.StoryID
	TitleEquals *models.EntityName
}

// CharacterFilter is the closed predicate set for character reads.
type CharacterFilter struct {
	ID         *models.CharacterID
	UniverseID *models.UniverseID
	ChapterID  *models.ChapterID // characters linked to this chapter
	NameEquals *models.EntityName
	Tier       *models.CharacterTier
}

// UniverseByName matches a universe by case-insensitive name. Read-only;
// used by uniqueness checks.
func UniverseByName(name models.EntityName) Spec[UniverseFilter] {
	return New(UniverseFilter{NameEquals: &name}).ReadOnly()
}

// UniverseNameSearch lists universes whose names contain q, ordered by name.
func UniverseNameSearch(q string) Spec[UniverseFilter] {
	return New(UniverseFilter{NameContains: q}).ReadOnly().OrderedBy(FieldName, false)
}

// UniverseWithContent loads one universe together with its stories and
// characters, for editing.
func UniverseWithContent(id models.UniverseID) Spec[UniverseFilter] {
	return New(UniverseFilter{ID: &id}).With(IncludeStories, IncludeCharacters)
}

// UniversesOrderedByName lists all universes for browsing.
func UniversesOrderedByName() Spec[UniverseFilter] {
	return New(UniverseFilter{}).ReadOnly().OrderedBy(FieldName, false)
}

// StoriesByUniverse lists a universe's stories ordered by name.
func StoriesByUniverse(universeID models.UniverseID) Spec[StoryFilter] {
	return New(StoryFilter{UniverseID: &universeID}).ReadOnly().OrderedBy(FieldName, false)
}

// StoryByNameInUniverse matches a story by case-insensitive name within one
// universe. Read-only; used by uniqueness checks.
func StoryByNameInUniverse(universeID models.UniverseID, name models.EntityName) Spec[StoryFilter] {
	return New(StoryFilter{UniverseID: &universeID, NameEquals: &name}).ReadOnly()
}

// StoryWithChapters loads one story together with its chapters, for editing
// and reordering. The chapter include always arrives in reading order.
func StoryWithChapters(id models.StoryID) Spec[StoryFilter] {
	return New(StoryFilter{ID: &id}).With(IncludeChapters)
}

// ChaptersByStoryOrdered lists a story's chapters in reading order, without
// the prose column.
func ChaptersByStoryOrdered(storyID models.StoryID) Spec[ChapterFilter] {
	return New(ChapterFilter{StoryID: &storyID}).ReadOnly().OrderedBy(FieldChapterOrder, false)
}

// ChapterByTitleInStory matches a chapter by case-insensitive title within one
// story. Read-only; used by uniqueness checks.
func ChapterByTitleInStory(storyID models.StoryID, title models.EntityName) Spec[ChapterFilter] {
	return New(ChapterFilter{StoryID: &storyID, TitleEquals: &title}).ReadOnly()
}

// ChapterWithContent loads one chapter including its prose and linked cast.
func ChapterWithContent(id models.ChapterID) Spec[ChapterFilter] {
	return New(ChapterFilter{ID: &id}).With(IncludeContent, IncludeCharacters)
}

// CharactersByUniverseOrderedByName lists a universe's characters ordered by name.
func CharactersByUniverseOrderedByName(universeID models.UniverseID) Spec[CharacterFilter] {
	return New(CharacterFilter{UniverseID: &universeID}).ReadOnly().OrderedBy(FieldName, false)
}

// CharacterByNameInUniverse matches a character by case-insensitive name
// within one universe. Read-only; used by uniqueness checks.
func CharacterByNameInUniverse(universeID models.UniverseID, name models.EntityName) Spec[CharacterFilter] {
	return New(CharacterFilter{UniverseID: &universeID, NameEquals: &name}).ReadOnly()
}

// CharactersByChapter lists the cast linked to one chapter, main tier first.
func CharactersByChapter(chapterID models.ChapterID) Spec[CharacterFilter] {
	return New(CharacterFilter{ChapterID: &chapterID}).ReadOnly().
		OrderedBy(FieldTier, false).
		OrderedBy(FieldName, false)
}
