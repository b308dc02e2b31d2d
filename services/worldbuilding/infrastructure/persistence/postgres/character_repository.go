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

// CharacterRepository implements repositories.CharacterRepository against PostgreSQL.
type CharacterRepository struct {
	session *session
}

// NewCharacterRepository returns a standalone repository whose writes persist
// immediately.
func NewCharacterRepository(db *database.Database) *CharacterRepository {
	return &CharacterRepository{session: newSession(db)}
}

const characterColumns = "id, universe_id, name, tier, bio, notes, created_at"

// Add inserts the character and binds the assigned identifier onto the aggregate.
func (r *CharacterRepository) Add(ctx context.Context, c *models.Character) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO characters (universe_id, name, tier, bio, notes, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			c.UniverseID.Int64(), c.Name.String(), c.Tier.String(), c.Bio.String(), c.Notes.String(), c.CreatedAt,
		).Scan(&id)
		if err != nil {
			return mapWriteErr("insert character", err)
		}
		cid, err := models.NewCharacterID(id)
		if err != nil {
			return fmt.Errorf("insert character: %w", err)
		}
		c.BindID(cid)
		return nil
	})
}

// GetByID retrieves a character. Returns ErrCharacterNotFound when absent.
func (r *CharacterRepository) GetByID(ctx context.Context, id models.CharacterID) (*models.Character, error) {
	row := r.session.reader().QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id.Int64())
	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("query character: %w", err)
	}
	return c, nil
}

// GetAll retrieves every character ordered by id.
func (r *CharacterRepository) GetAll(ctx context.Context) ([]*models.Character, error) {
	return r.Find(ctx, specifications.New(specifications.CharacterFilter{}).ReadOnly())
}

// Update persists profile changes.
func (r *CharacterRepository) Update(ctx context.Context, c *models.Character) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE characters SET name = $1, tier = $2, bio = $3, notes = $4 WHERE id = $5`,
			c.Name.String(), c.Tier.String(), c.Bio.String(), c.Notes.String(), c.ID.Int64(),
		)
		if err != nil {
			return mapWriteErr("update character", err)
		}
		return checkAffected(res, domain.ErrCharacterNotFound)
	})
}

// Delete removes a character. The caller must have passed the character
// validator's CanDelete check; remaining chapter links surface as
// ErrDeleteBlocked from the store's foreign keys.
func (r *CharacterRepository) Delete(ctx context.Context, id models.CharacterID) error {
	return r.session.write(ctx, func(ctx context.Context, q querier) error {
		res, err := q.ExecContext(ctx, `DELETE FROM characters WHERE id = $1`, id.Int64())
		if err != nil {
			return mapWriteErr("delete character", err)
		}
		return checkAffected(res, domain.ErrCharacterNotFound)
	})
}

// Find translates the specification into SQL.
func (r *CharacterRepository) Find(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) ([]*models.Character, error) {
	var w whereBuilder
	f := spec.Filter
	if f.ID != nil {
		w.add("id = $%d", f.ID.Int64())
	}
	if f.UniverseID != nil {
		w.add("universe_id = $%d", f.UniverseID.Int64())
	}
	if f.ChapterID != nil {
		w.add("id IN (SELECT character_id FROM chapter_characters WHERE chapter_id = $%d)", f.ChapterID.Int64())
	}
	if f.NameEquals != nil {
		w.add("LOWER(name) = LOWER($%d)", f.NameEquals.String())
	}
	if f.Tier != nil {
		w.add("tier = $%d", f.Tier.String())
	}

	query := `SELECT ` + characterColumns + ` FROM characters` +
		w.clause() + orderClause(spec.OrderBy) + pageClause(spec.Page)

	rows, err := r.session.reader().QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()
	return collectCharacters(rows)
}

// FindOne returns the first match or ErrCharacterNotFound.
func (r *CharacterRepository) FindOne(ctx context.Context, spec specifications.Spec[specifications.CharacterFilter]) (*models.Character, error) {
	matches, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrCharacterNotFound
	}
	return matches[0], nil
}

// CountByUniverseID reports how many characters the universe owns.
func (r *CharacterRepository) CountByUniverseID(ctx context.Context, universeID models.UniverseID) (int, error) {
	var count int
	err := r.session.reader().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM characters WHERE universe_id = $1`, universeID.Int64()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count characters: %w", err)
	}
	return count, nil
}

// CountChapterLinks reports how many chapters still reference the character.
func (r *CharacterRepository) CountChapterLinks(ctx context.Context, id models.CharacterID) (int, error) {
	var count int
	err := r.session.reader().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chapter_characters WHERE character_id = $1`, id.Int64()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chapter links: %w", err)
	}
	return count, nil
}

func scanCharacter(row rowScanner) (*models.Character, error) {
	var c models.Character
	var id, universeID int64
	var name, tier, bio, notes string
	if err := row.Scan(&id, &universeID, &name, &tier, &bio, &notes, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ID = models.CharacterID(id)
	c.UniverseID = models.UniverseID(universeID)
	c.Name = models.EntityName(name)
	c.Tier = models.CharacterTier(tier)
	c.Bio = models.CharacterBio(bio)
	c.Notes = models.CharacterNotes(notes)
	return &c, nil
}

func collectCharacters(rows *sql.Rows) ([]*models.Character, error) {
	var characters []*models.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return characters, nil
}

// listCharactersByUniverse loads a universe's characters for include directives.
func listCharactersByUniverse(ctx context.Context, q querier, universeID models.UniverseID) ([]*models.Character, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE universe_id = $1 ORDER BY LOWER(name)`,
		universeID.Int64())
	if err != nil {
		return nil, fmt.Errorf("query universe characters: %w", err)
	}
	defer rows.Close()
	return collectCharacters(rows)
}

// listCharactersByChapter loads a chapter's cast for include directives.
func listCharactersByChapter(ctx context.Context, q querier, chapterID models.ChapterID) ([]*models.Character, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT c.id, c.universe_id, c.name, c.tier, c.bio, c.notes, c.created_at
		 FROM characters c
		 JOIN chapter_characters cc ON cc.character_id = c.id
		 WHERE cc.chapter_id = $1
		 ORDER BY LOWER(c.name)`,
		chapterID.Int64())
	if err != nil {
		return nil, fmt.Errorf("query chapter characters: %w", err)
	}
	defer rows.Close()
	return collectCharacters(rows)
}
