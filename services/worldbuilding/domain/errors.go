package domain

import "errors"

// Sentinel errors for the worldbuilding domain. Use errors.Is() to check these.
var (
	// ErrUniverseNotFound indicates the requested universe does not exist.
	ErrUniverseNotFound = errors.New("universe not found")

	// ErrStoryNotFound indicates the requested story does not exist.
	ErrStoryNotFound = errors.New("story not found")

	// ErrChapterNotFound indicates the requested chapter does not exist.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrCharacterNotFound indicates the requested character does not exist.
	ErrCharacterNotFound = errors.New("character not found")

	// ErrDuplicateName indicates another entity in the same scope already
	// carries a case-insensitive-equal name.
	ErrDuplicateName = errors.New("name already in use within scope")

	// ErrInvalidInput indicates a malformed argument: an empty or over-length
	// value, a non-positive identifier, or a reorder list that is not a full
	// permutation of the story's chapters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAggregateDeleted indicates a mutation was attempted on an aggregate
	// that has already recorded its deletion event.
	ErrAggregateDeleted = errors.New("aggregate already deleted")

	// ErrDeleteBlocked indicates a deletion was attempted while dependents
	// still reference the entity.
	ErrDeleteBlocked = errors.New("delete blocked by dependent entities")

	// ErrTransactionActive indicates Begin was called while a transaction was
	// already open on the unit of work. Programming error, not user-facing.
	ErrTransactionActive = errors.New("transaction already active")

	// ErrNoTransaction indicates Commit or Rollback was called with no open
	// transaction. Programming error, not user-facing.
	ErrNoTransaction = errors.New("no active transaction")
)
