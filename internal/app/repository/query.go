package repository

import (
	"strconv"
	"strings"

	"gorm.io/gorm/clause"
)

// likeEscape is appended to every LIKE condition built with containsPattern
const likeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase "%term%" pattern with wildcards escaped
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// containsAny matches term against any of the columns, case-insensitively
func containsAny(term string, columns ...string) (string, []interface{}) {
	pattern := containsPattern(term)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, "LOWER("+col+") LIKE ?"+likeEscape)
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// parseNumericID accepts only plain decimal ids, so slugs like "123-abc" stay slugs
func parseNumericID(token string) (uint, bool) {
	if token == "" {
		return 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// byDisplayOrder sorts by the quoted "order" column, then id for ties
func byDisplayOrder() clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "order"}},
		{Column: clause.Column{Name: "id"}},
	}}
}
