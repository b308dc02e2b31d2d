package events

// Watermill topics for chapter lifecycle and linking events.
const (
	TopicChapterCreated           = "worldbuilding.chapter.created"
	TopicChapterUpdated           = "worldbuilding.chapter.updated"
	TopicChapterDeleted           = "worldbuilding.chapter.deleted"
	TopicChapterCharacterLinked   = "worldbuilding.chapter.character_linked"
	TopicChapterCharacterUnlinked = "worldbuilding.chapter.character_unlinked"
)

// ChapterCreatedEvent is recorded when a chapter aggregate is constructed.
type ChapterCreatedEvent struct {
	Header
	ChapterID    int64  `json:"chapter_id"`
	StoryID      int64  `json:"story_id"`
	Title        string `json:"title"`
	ChapterOrder int    `json:"chapter_order"`
}

func (ChapterCreatedEvent) Topic() string { return TopicChapterCreated }

// ChapterUpdatedEvent is recorded when a chapter's title, content, or order changes.
type ChapterUpdatedEvent struct {
	Header
	ChapterID    int64  `json:"chapter_id"`
	StoryID      int64  `json:"story_id"`
	Title        string `json:"title"`
	ChapterOrder int    `json:"chapter_order"`
}

func (ChapterUpdatedEvent) Topic() string { return TopicChapterUpdated }

// ChapterDeletedEvent is recorded when a chapter is marked for deletion.
type ChapterDeletedEvent struct {
	Header
	ChapterID int64  `json:"chapter_id"`
	StoryID   int64  `json:"story_id"`
	Title     string `json:"title"`
}

func (ChapterDeletedEvent) Topic() string { return TopicChapterDeleted }

// ChapterCharacterLinkedEvent is recorded when a character is added to a chapter.
type ChapterCharacterLinkedEvent struct {
	Header
	ChapterID   int64 `json:"chapter_id"`
	CharacterID int64 `json:"character_id"`
}

func (ChapterCharacterLinkedEvent) Topic() string { return TopicChapterCharacterLinked }

// ChapterCharacterUnlinkedEvent is recorded when a character is removed from a chapter.
type ChapterCharacterUnlinkedEvent struct {
	Header
	ChapterID   int64 `json:"chapter_id"`
	CharacterID int64 `json:"character_id"`
}

func (ChapterCharacterUnlinkedEvent) Topic() string { return TopicChapterCharacterUnlinked }
