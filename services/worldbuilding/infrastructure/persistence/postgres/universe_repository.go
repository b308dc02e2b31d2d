package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/inkwell/pkg/database"
	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// UniverseRepository implements repositories.UniverseRepository against PostgreSQL.
type UniverseRepository struct {
	session *session
}

// NewUniverseRepository returns a standalone repository whose writes persist
// immediately. For transactional grouping, obtain the repository from a
// UnitOfWork instead.
func NewUniverseRepository(db *database.Database) *UniverseRepository {
	return &UniverseRepository{session: newSession(db)}
}

const universeColumns = "id, name, description, created_at"

// Add inserts the universe and binds the assigned identifier onto the
// aggregate and its pending created event.
func (r *UniverseRepository) Add(ctx context.Context, u *models.Universe) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO universes (name, description, created_at) VALUES ($1, $2, $3) RETURNING id`,
			u.Name.String(), u.Description.String(), u.CreatedAt,
		).Scan(&id)
		if err != nil {
			return mapWriteErr("insert universe", err)
		}
		uid, err := models.NewUniverseID(id)
		if err != nil {
			return fmt.Errorf("insert universe: %w", err)
		}
		u.BindID(uid)
		return nil
	})
}

// GetByID retrieves a universe. Returns ErrUniverseNotFound when absent.
func (r *UniverseRepository) GetByID(ctx context.Context, id models.UniverseID) (*models.Universe, error) {
	row := r.session.reader().QueryRowContext(ctx,
		`SELECT `+universeColumns+` FROM universes WHERE id = $1`, id.Int64())
	u, err := scanUniverse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUniverseNotFound
		}
		return nil, fmt.Errorf("query universe: %w", err)
	}
	return u, nil
}

// GetAll retrieves every universe ordered by name.
func (r *UniverseRepository) GetAll(ctx context.Context) ([]*models.Universe, error) {
	return r.Find(ctx, specifications.UniversesOrderedByName())
}

// Update persists name and description changes.
func (r *UniverseRepository) Update(ctx context.Context, u *models.Universe) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE universes SET name = $1, description = $2 WHERE id = $3`,
			u.Name.String(), u.Description.String(), u.ID.Int64(),
		)
		if err != nil {
			return mapWriteErr("update universe", err)
		}
		return checkAffected(res, domain.ErrUniverseNotFound)
	})
}

// Delete removes a universe. The caller must have passed the universe
// validator's CanDelete check; dependent rows still present surface as
// ErrDeleteBlocked from the store's foreign keys.
func (r *UniverseRepository) Delete(ctx context.Context, id models.UniverseID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx, `DELETE FROM universes WHERE id = $1`, id.Int64())
		if err != nil {
			return mapWriteErr("delete universe", err)
		}
		return checkAffected(res, domain.ErrUniverseNotFound)
	})
}

// Find translates the specification into SQL and loads requested includes.
func (r *UniverseRepository) Find(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) ([]*models.Universe, error) {
	var w whereBuilder
	f := spec.Filter
	if f.ID != nil {
		w.add("id = $%d", f.ID.Int64())
	}
	if f.NameEquals != nil {
		w.add("LOWER(name) = LOWER($%d)", f.NameEquals.String())
	}
	if f.NameContains != "" {
		w.add("name ILIKE '%%' || $%d || '%%'", f.NameContains)
	}

	query := `SELECT ` + universeColumns + ` FROM universes` +
		w.clause() + orderClause(spec.OrderBy) + pageClause(spec.Page)

	rows, err := r.session.reader().QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query universes: %w", err)
	}
	defer rows.Close()

	var universes []*models.Universe
	for rows.Next() {
		u, err := scanUniverse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan universe: %w", err)
		}
		universes = append(universes, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate universes: %w", err)
	}

	for _, u := range universes {
		if spec.HasInclude(specifications.IncludeStories) {
			stories, err := listStoriesByUniverse(ctx, r.session.reader(), u.ID)
			if err != nil {
				return nil, err
			}
			u.Stories = stories
		}
		if spec.HasInclude(specifications.IncludeCharacters) {
			characters, err := listCharactersByUniverse(ctx, r.session.reader(), u.ID)
			if err != nil {
				return nil, err
			}
			u.Characters = characters
		}
	}
	return universes, nil
}

// FindOne returns the first match or ErrUniverseNotFound.
func (r *UniverseRepository) FindOne(ctx context.Context, spec specifications.Spec[specifications.UniverseFilter]) (*models.Universe, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrUniverseNotFound
	}
	return matches[0], nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUniverse(row rowScanner) (*models.Universe, error) {
	var u models.Universe
	var id int64
	var name, description string
	if err := row.Scan(&id, &name, &description, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ID = models.UniverseID(id)
	u.Name = models.EntityName(name)
	u.Description = models.EntityDescription(description)
	return &u, nil
}

// checkAffected maps a zero-row write to the given not-found sentinel.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
