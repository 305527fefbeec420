package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsClause builds a case-insensitive substring match on column that
// treats %, _ and \ in the term literally on every driver.
func containsClause(column, term string) (string, string) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`, pattern
}
