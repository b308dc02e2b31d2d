package repositories

import "context"

// UnitOfWork groups repository writes into one atomic boundary. It is scoped
// to a single logical operation and is not safe for concurrent use; create
// one per request/command and discard it afterward.
//
// Outside an open transaction, repository writes persist immediately. After
// Begin, writes are queued in issue order and flushed by SaveChanges or
// Commit; a Rollback discards them. At most one transaction may be open at a
// time — a second Begin fails with ErrTransactionActive, and Commit/Rollback
// without Begin fail with ErrNoTransaction.
//
// The unit of work never dispatches domain events. The caller collects events
// from mutated aggregates and publishes them only after a successful Commit,
// so a rolled-back transaction never produces an externally visible event.
type UnitOfWork interface {
	Universes() UniverseRepository
	Stories() StoryRepository
	Chapters() ChapterRepository
	Characters() CharacterRepository

	// SaveChanges flushes all queued repository operations in one
	// persistence round-trip, preserving issue order.
	SaveChanges(ctx context.Context) error

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
