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

// StoryRepository implements repositories.StoryRepository against PostgreSQL.
type StoryRepository struct {
	session *session
}

// NewStoryRepository returns a standalone repository whose writes persist
// immediately.
func NewStoryRepository(db *database.Database) *StoryRepository {
	return &StoryRepository{session: newSession(db)}
}

const storyColumns = "id, universe_id, name, logline, created_at"

// Add inserts the story and binds the assigned identifier onto the aggregate.
func (r *StoryRepository) Add(ctx context.Context, s *models.Story) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO stories (universe_id, name, logline, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			s.UniverseID.Int64(), s.Name.String(), s.Logline.String(), s.CreatedAt,
		).Scan(&id)
		if err != nil {
			return mapWriteErr("insert story", err)
		}
		sid, err := models.NewStoryID(id)
		if err != nil {
			return fmt.Errorf("insert story: %w", err)
		}
		s.BindID(sid)
		return nil
	})
}

// GetByID retrieves a story. Returns ErrStoryNotFound when absent.
func (r *StoryRepository) GetByID(ctx context.Context, id models.StoryID) (*models.Story, error) {
	row := r.session.reader().QueryRowContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE id = $1`, id.Int64())
	s, err := scanStory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStoryNotFound
		}
		return nil, fmt.Errorf("query story: %w", err)
	}
	return s, nil
}

// GetAll retrieves every story ordered by id.
func (r *StoryRepository) GetAll(ctx context.Context) ([]*models.Story, error) {
	return r.Find(ctx, specifications.New(specifications.StoryFilter{}).ReadOnly())
}

// Update persists name and logline changes.
func (r *StoryRepository) Update(ctx context.Context, s *models.Story) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE stories SET name = $1, logline = $2 WHERE id = $3`,
			s.Name.String(), s.Logline.String(), s.ID.Int64(),
		)
		if err != nil {
			return mapWriteErr("update story", err)
		}
		return checkAffected(res, domain.ErrStoryNotFound)
	})
}

// Delete removes a story. Remaining chapters surface as ErrDeleteBlocked from
// the store's foreign keys.
func (r *StoryRepository) Delete(ctx context.Context, id models.StoryID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id.Int64())
		if err != nil {
			return mapWriteErr("delete story", err)
		}
		return checkAffected(res, domain.ErrStoryNotFound)
	})
}

// Find translates the specification into SQL and loads requested includes.
func (r *StoryRepository) Find(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) ([]*models.Story, error) {
	var w whereBuilder
	f := spec.Filter
	if f.ID != nil {
		w.add("id = $%d", f.ID.Int64())
	}
	if f.UniverseID != nil {
		w.add("universe_id = $%d", f.UniverseID.Int64())
	}
	if f.NameEquals != nil {
		w.add("LOWER(name) = LOWER($%d)", f.NameEquals.String())
	}

	query := `SELECT ` + storyColumns + ` FROM stories` +
		w.clause() + orderClause(spec.OrderBy) + pageClause(spec.Page)

	rows, err := r.session.reader().QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query stories: %w", err)
	}
	defer rows.Close()

	stories, err := collectStories(rows)
	if err != nil {
		return nil, err
	}

	if spec.HasInclude(specifications.IncludeChapters) {
		for _, s := range stories {
			chapters, err := listChaptersByStory(ctx, r.session.reader(), s.ID, false)
			if err != nil {
				return nil, err
			}
			s.Chapters = chapters
		}
	}
	return stories, nil
}

// FindOne returns the first match or ErrStoryNotFound.
func (r *StoryRepository) FindOne(ctx context.Context, spec specifications.Spec[specifications.StoryFilter]) (*models.Story, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrStoryNotFound
	}
	return matches[0], nil
}

// CountByUniverseID reports how many stories the universe owns.
func (r *StoryRepository) CountByUniverseID(ctx context.Context, universeID models.UniverseID) (int, error) {
	var count int
	err := r.session.reader().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stories WHERE universe_id = $1`, universeID.Int64()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

// UpdateChapterOrders persists each loaded chapter's ChapterOrder after a
// reorder. Issued as one queued operation so the whole permutation lands in a
// single flush.
func (r *StoryRepository) UpdateChapterOrders(ctx context.Context, s *models.Story) error {
	chapters := s.Chapters
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		for _, c := range chapters {
			res, err := q.ExecContext(ctx,
				`UPDATE chapters SET chapter_order = $1 WHERE id = $2 AND story_id = $3`,
				c.ChapterOrder, c.ID.Int64(), s.ID.Int64(),
			)
			if err != nil {
				return mapWriteErr("update chapter order", err)
			}
			if err := checkAffected(res, domain.ErrChapterNotFound); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanStory(row rowScanner) (*models.Story, error) {
	var s models.Story
	var id, universeID int64
	var name, logline string
	if err := row.Scan(&id, &universeID, &name, &logline, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.ID = models.StoryID(id)
	s.UniverseID = models.UniverseID(universeID)
	s.Name = models.EntityName(name)
	s.Logline = models.Logline(logline)
	return &s, nil
}

func collectStories(rows *sql.Rows) ([]*models.Story, error) {
	var stories []*models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return stories, nil
}

// listStoriesByUniverse loads a universe's stories for include directives.
func listStoriesByUniverse(ctx context.Context, q querier, universeID models.UniverseID) ([]*models.Story, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE universe_id = $1 ORDER BY LOWER(name)`,
		universeID.Int64())
	if err != nil {
		return nil, fmt.Errorf("query universe stories: %w", err)
	}
	defer rows.Close()
	return collectStories(rows)
}
