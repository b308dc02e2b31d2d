package events

// Watermill topics for story lifecycle events.
const (
	TopicStoryCreated           = "worldbuilding.story.created"
	TopicStoryUpdated           = "worldbuilding.story.updated"
	TopicStoryDeleted           = "worldbuilding.story.deleted"
	TopicStoryChaptersReordered = "worldbuilding.story.chapters_reordered"
)

// StoryCreatedEvent is recorded when a story aggregate is constructed.
type StoryCreatedEvent struct {
	Header
	StoryID    int64  `json:"story_id"`
	UniverseID int64  `json:"universe_id"`
	Name       string `json:"name"`
	Logline    string `json:"logline"`
}

func (StoryCreatedEvent) Topic() string { return TopicStoryCreated }

// StoryUpdatedEvent is recorded when a story's name or logline changes.
type StoryUpdatedEvent struct {
	Header
	StoryID    int64  `json:"story_id"`
	UniverseID int64  `json:"universe_id"`
	Name       string `json:"name"`
	Logline    string `json:"logline"`
}

func (StoryUpdatedEvent) Topic() string { return TopicStoryUpdated }

// StoryDeletedEvent is recorded when a story is marked for deletion.
type StoryDeletedEvent struct {
	Header
	StoryID    int64  `json:"story_id"`
	UniverseID int64  `json:"universe_id"`
	Name       string `json:"name"`
}

func (StoryDeletedEvent) Topic() string { return TopicStoryDeleted }

// StoryChaptersReorderedEvent is recorded when a story's chapters are
// explicitly reordered. ChapterIDs lists the new reading order.
type StoryChaptersReorderedEvent struct {
	Header
	StoryID    int64   `json:"story_id"`
	ChapterIDs []int64 `json:"chapter_ids"`
}

func (StoryChaptersReorderedEvent) Topic() string { return TopicStoryChaptersReordered }
