// Package postgres implements the worldbuilding repository and unit-of-work
// interfaces against PostgreSQL using the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/inkwell/pkg/database"
	"github.com/ghuser/inkwell/services/worldbuilding/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// pendingOp is one deferred repository write, executed at flush time.
type pendingOp func(ctx context.Context, q querier) error

// session routes repository operations. Outside a transaction, writes execute
// immediately against the pool. While a transaction is open, writes queue in
// issue order and flush on SaveChanges/Commit; reads go through the open
// transaction and therefore do not observe still-queued writes.
type session struct {
	db      *database.Database
	tx      *sql.Tx
	pending []pendingOp
}

func newSession(db *database.Database) *session {
	return &session{db: db}
}

func (s *session) reader() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db.DB()
}

func (s *session) write(ctx context.Context, op pendingOp) error {
	if s.tx != nil {
		s.pending = append(s.pending, op)
		return nil
	}
	return op(ctx, s.db.DB())
}

// flush executes the queued writes in issue order on the open transaction.
func (s *session) flush(ctx context.Context) error {
	for _, op := range s.pending {
		if err := op(ctx, s.tx); err != nil {
			return err
		}
	}
	s.pending = nil
	return nil
}

// mapWriteErr translates driver-level constraint violations into domain
// sentinels, otherwise wraps with op. 23505 is PostgreSQL's unique_violation:
// the deferred chapter-order constraint fires when concurrent creates race for
// one reading-order slot, every other unique index in this schema is a
// case-insensitive name rule. 23503 is foreign_key_violation, raised when
// dependents block a delete.
func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "chapters_story_order_uq" {
				return fmt.Errorf("%s: reading-order slot already taken: %w", op, domain.ErrInvalidInput)
			}
			return domain.ErrDuplicateName
		case "23503":
			return domain.ErrDeleteBlocked
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
