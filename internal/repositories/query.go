package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// jsonArrayContainsAny matches rows whose JSON array column holds any of the
// given values as a quoted string. The text match works the same on
// Postgres jsonb and SQLite json columns.
func jsonArrayContainsAny(q *gorm.DB, column string, values []string) *gorm.DB {
	var (
		parts []string
		args  []interface{}
	)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(`LOWER(CAST(%s AS TEXT)) LIKE ? ESCAPE '\'`, column))
		args = append(args, "%\""+escapeLike(strings.ToLower(v))+"\"%")
	}
	if len(parts) == 0 {
		return q
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// likeClause is used with likeContains; the explicit ESCAPE makes backslash
// the escape character on SQLite too.
const likeClause = `LIKE ? ESCAPE '\'`

func likeContains(s string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(s))) + "%"
}

var likeEscaper = strings.NewReplacer(`%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// paginate applies 1-based page/limit. Callers validate the bounds.
func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		return q.Offset((page - 1) * limit).Limit(limit)
	}
}

func rowsOrNotFound(result *gorm.DB, notFound error) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
