package events

// Watermill topics for character lifecycle events.
const (
	TopicCharacterCreated = "worldbuilding.character.created"
	TopicCharacterUpdated = "worldbuilding.character.updated"
	TopicCharacterDeleted = "worldbuilding.character.deleted"
)

// CharacterCreatedEvent is recorded when a character aggregate is constructed.
type CharacterCreatedEvent struct {
	Header
	CharacterID int64  `json:"character_id"`
	UniverseID  int64  `json:"universe_id"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
}

func (CharacterCreatedEvent) Topic() string { return TopicCharacterCreated }

// CharacterUpdatedEvent is recorded when a character's profile changes.
type CharacterUpdatedEvent struct {
	Header
	CharacterID int64  `json:"character_id"`
	UniverseID  int64  `json:"universe_id"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
}

func (CharacterUpdatedEvent) Topic() string { return TopicCharacterUpdated }

// CharacterDeletedEvent is recorded when a character is marked for deletion.
type CharacterDeletedEvent struct {
	Header
	CharacterID int64  `json:"character_id"`
	UniverseID  int64  `json:"universe_id"`
	Name        string `json:"name"`
}

func (CharacterDeletedEvent) Topic() string { return TopicCharacterDeleted }
