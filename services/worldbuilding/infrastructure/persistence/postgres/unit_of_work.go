package postgres

import (
	"context"
	"fmt"

	"github.com/ghuser/inkwell/pkg/database"
	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
)

// UnitOfWork implements repositories.UnitOfWork over a single shared session.
// Scoped to one logical operation; not safe for concurrent use.
type UnitOfWork struct {
	session    *session
	universes  *UniverseRepository
	stories    *StoryRepository
	chapters   *ChapterRepository
	characters *CharacterRepository
}

// NewUnitOfWork returns a UnitOfWork whose repositories share one session, so
// writes issued after Begin land in the same transaction.
func NewUnitOfWork(db *database.Database) *UnitOfWork {
	s := newSession(db)
	return &UnitOfWork{
		session:    s,
		universes:  &UniverseRepository{session: s},
		stories:    &StoryRepository{session: s},
		chapters:   &ChapterRepository{session: s},
		characters: &CharacterRepository{session: s},
	}
}

func (u *UnitOfWork) Universes() repositories.UniverseRepository   { return u.universes }
func (u *UnitOfWork) Stories() repositories.StoryRepository        { return u.stories }
func (u *UnitOfWork) Chapters() repositories.ChapterRepository     { return u.chapters }
func (u *UnitOfWork) Characters() repositories.CharacterRepository { return u.characters }

// Begin opens the unit of work's transaction. A second Begin while one is
// open fails with ErrTransactionActive.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.session.tx != nil {
		return domain.ErrTransactionActive
	}
	tx, err := u.session.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	u.session.tx = tx
	return nil
}

// SaveChanges flushes all queued repository writes, in issue order, onto the
// open transaction. Without an open transaction there is nothing queued —
// writes persisted immediately — so SaveChanges is a no-op.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.session.tx == nil {
		return nil
	}
	return u.session.flush(ctx)
}

// Commit flushes any remaining queued writes and commits atomically. On a
// flush failure the transaction is rolled back so no partial writes become
// visible.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.session.tx == nil {
		return domain.ErrNoTransaction
	}
	if err := u.session.flush(ctx); err != nil {
		_ = u.session.tx.Rollback()
		u.session.tx = nil
		u.session.pending = nil
		return err
	}
	// deferred constraints are checked here, so commit errors go through the
	// same sentinel mapping as statement errors
	if err := u.session.tx.Commit(); err != nil {
		u.session.tx = nil
		return mapWriteErr("commit transaction", err)
	}
	u.session.tx = nil
	return nil
}

// Rollback discards queued writes and aborts the open transaction.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.session.tx == nil {
		return domain.ErrNoTransaction
	}
	err := u.session.tx.Rollback()
	u.session.tx = nil
	u.session.pending = nil
	if err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
