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

// ChapterRepository implements repositories.ChapterRepository against PostgreSQL.
type ChapterRepository struct {
	session *session
}

// NewChapterRepository returns a standalone repository whose writes persist
// immediately.
func NewChapterRepository(db *database.Database) *ChapterRepository {
	return &ChapterRepository{session: newSession(db)}
}

// The prose column is heavy; default reads select an empty placeholder and
// only IncludeContent specs fetch it.
const (
	chapterColumns        = "id, story_id, title, chapter_order, '' AS content, created_at"
	chapterColumnsContent = "id, story_id, title, chapter_order, content, created_at"
)

// Add inserts the chapter and binds the assigned identifier onto the aggregate.
func (r *ChapterRepository) Add(ctx context.Context, c *models.Chapter) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO chapters (story_id, title, chapter_order, content, created_at)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.StoryID.Int64(), c.Title.String(), c.ChapterOrder, c.Content.String(), c.CreatedAt,
		).Scan(&id)
		if err != nil {
			return mapWriteErr("insert chapter", err)
		}
		cid, err := models.NewChapterID(id)
		if err != nil {
			return fmt.Errorf("insert chapter: %w", err)
		}
		c.BindID(cid)
		return nil
	})
}

// GetByID retrieves a chapter without its prose. Returns ErrChapterNotFound
// when absent; use a ChapterWithContent spec to load the full chapter.
func (r *ChapterRepository) GetByID(ctx context.Context, id models.ChapterID) (*models.Chapter, error) {
	row := r.session.reader().QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE id = $1`, id.Int64())
	c, err := scanChapter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChapterNotFound
		}
		return nil, fmt.Errorf("query chapter: %w", err)
	}
	return c, nil
}

// GetAll retrieves every chapter ordered by id, without prose.
func (r *ChapterRepository) GetAll(ctx context.Context) ([]*models.Chapter, error) {
	return r.Find(ctx, specifications.New(specifications.ChapterFilter{}).ReadOnly())
}

// Update persists title, order, and prose changes.
func (r *ChapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE chapters SET title = $1, chapter_order = $2, content = $3 WHERE id = $4`,
			c.Title.String(), c.ChapterOrder, c.Content.String(), c.ID.Int64(),
		)
		if err != nil {
			return mapWriteErr("update chapter", err)
		}
		return checkAffected(res, domain.ErrChapterNotFound)
	})
}

// Delete removes a chapter together with its character links.
func (r *ChapterRepository) Delete(ctx context.Context, id models.ChapterID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM chapter_characters WHERE chapter_id = $1`, id.Int64()); err != nil {
			return mapWriteErr("delete chapter links", err)
		}
		res, err := q.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id.Int64())
		if err != nil {
			return mapWriteErr("delete chapter", err)
		}
		return checkAffected(res, domain.ErrChapterNotFound)
	})
}

// Find translates the specification into SQL and loads requested includes.
func (r *ChapterRepository) Find(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) ([]*models.Chapter, error) {
	columns := chapterColumns
	if spec.HasInclude(specifications.IncludeContent) {
		columns = chapterColumnsContent
	}

	var w whereBuilder
	f := spec.Filter
	if f.ID != nil {
		w.add("id = $%d", f.ID.Int64())
	}
	if f.StoryID != nil {
		w.add("story_id = $%d", f.StoryID.Int64())
	}
	if f.TitleEquals != nil {
		w.add("LOWER(title) = LOWER($%d)", f.TitleEquals.String())
	}

	query := `SELECT ` + columns + ` FROM chapters` +
		w.clause() + orderClause(spec.OrderBy) + pageClause(spec.Page)

	rows, err := r.session.reader().QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query chapters: %w", err)
	}
	defer rows.Close()

	chapters, err := collectChapters(rows)
	if err != nil {
		return nil, err
	}

	if spec.HasInclude(specifications.IncludeCharacters) {
		for _, c := range chapters {
			cast, err := listCharactersByChapter(ctx, r.session.reader(), c.ID)
			if err != nil {
				return nil, err
			}
			c.Characters = cast
		}
	}
	return chapters, nil
}

// FindOne returns the first match or ErrChapterNotFound.
func (r *ChapterRepository) FindOne(ctx context.Context, spec specifications.Spec[specifications.ChapterFilter]) (*models.Chapter, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrChapterNotFound
	}
	return matches[0], nil
}

// CountByStoryID reports how many chapters the story owns.
func (r *ChapterRepository) CountByStoryID(ctx context.Context, storyID models.StoryID) (int, error) {
	var count int
	err := r.session.reader().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chapters WHERE story_id = $1`, storyID.Int64()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return count, nil
}

// LinkCharacter records a chapter/character appearance. Inserting an existing
// link is idempotent.
func (r *ChapterRepository) LinkCharacter(ctx context.Context, chapterID models.ChapterID, characterID models.CharacterID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		_, err := q.ExecContext(ctx,
			`INSERT INTO chapter_characters (chapter_id, character_id) VALUES ($1, $2)
			 ON CONFLICT (chapter_id, character_id) DO NOTHING`,
			chapterID.Int64(), characterID.Int64(),
		)
		if err != nil {
			return mapWriteErr("link character", err)
		}
		return nil
	})
}

// UnlinkCharacter removes a chapter/character appearance.
func (r *ChapterRepository) UnlinkCharacter(ctx context.Context, chapterID models.ChapterID, characterID models.CharacterID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		_, err := q.ExecContext(ctx,
			`DELETE FROM chapter_characters WHERE chapter_id = $1 AND character_id = $2`,
			chapterID.Int64(), characterID.Int64(),
		)
		if err != nil {
			return mapWriteErr("unlink character", err)
		}
		return nil
	})
}

func scanChapter(row rowScanner) (*models.Chapter, error) {
	var c models.Chapter
	var id, storyID int64
	var title, content string
	if err := row.Scan(&id, &storyID, &title, &c.ChapterOrder, &content, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ID = models.ChapterID(id)
	c.StoryID = models.StoryID(storyID)
	c.Title = models.EntityName(title)
	c.Content = models.ChapterContent(content)
	return &c, nil
}

func collectChapters(rows *sql.Rows) ([]*models.Chapter, error) {
	var chapters []*models.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}
	return chapters, nil
}

// listChaptersByStory loads a story's chapters in reading order for include
// directives.
func listChaptersByStory(ctx context.Context, q querier, storyID models.StoryID, withContent bool) ([]*models.Chapter, error) {
	columns := chapterColumns
	if withContent {
		columns = chapterColumnsContent
	}
	rows, err := q.QueryContext(ctx,
		`SELECT `+columns+` FROM chapters WHERE story_id = $1 ORDER BY chapter_order`,
		storyID.Int64())
	if err != nil {
		return nil, fmt.Errorf("query story chapters: %w", err)
	}
	defer rows.Close()
	return collectChapters(rows)
}
