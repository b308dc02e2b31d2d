package postgres

import (
	"fmt"
	"strings"

	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// sortColumns maps specification sort fields to SQL expressions. Tier sorts
// by prominence (main, recurring, minor) rather than alphabetically.
var sortColumns = map[specifications.Field]string{
	specifications.FieldName:         "LOWER(name)",
	specifications.FieldCreatedAt:    "created_at",
	specifications.FieldChapterOrder: "chapter_order",
	specifications.FieldTier:         "CASE tier WHEN 'main' THEN 0 WHEN 'recurring' THEN 1 ELSE 2 END",
}

// whereBuilder accumulates WHERE conditions with positional placeholders.
// Conditions use $%d, resolved against the argument's position.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(expr, len(w.args)))
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// orderClause renders the spec's ordering directives in declaration order,
// falling back to a stable id order.
func orderClause(sorts []specifications.Sort) string {
	if len(sorts) == 0 {
		return " ORDER BY id"
	}
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		col, ok := sortColumns[s.Field]
		if !ok {
			continue
		}
		if s.Descending {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	if len(parts) == 0 {
		return " ORDER BY id"
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// pageClause renders skip/take paging.
func pageClause(p *specifications.Page) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset)
}
