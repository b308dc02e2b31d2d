package events

// Watermill topics for universe lifecycle events.
const (
	TopicUniverseCreated = "worldbuilding.universe.created"
	TopicUniverseUpdated = "worldbuilding.universe.updated"
	TopicUniverseDeleted = "worldbuilding.universe.deleted"
)

// UniverseCreatedEvent is recorded when a universe aggregate is constructed.
// UniverseID is zero until the repository assigns the persisted identifier.
type UniverseCreatedEvent struct {
	Header
	UniverseID  int64  `json:"universe_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (UniverseCreatedEvent) Topic() string { return TopicUniverseCreated }

// UniverseUpdatedEvent is recorded when a universe's name or description changes.
type UniverseUpdatedEvent struct {
	Header
	UniverseID  int64  `json:"universe_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (UniverseUpdatedEvent) Topic() string { return TopicUniverseUpdated }

// UniverseDeletedEvent is recorded when a universe is marked for deletion.
type UniverseDeletedEvent struct {
	Header
	UniverseID int64  `json:"universe_id"`
	Name       string `json:"name"`
}

func (UniverseDeletedEvent) Topic() string { return TopicUniverseDeleted }
