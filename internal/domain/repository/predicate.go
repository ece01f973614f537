package repository

import (
	"strings"

	"gorm.io/gorm/clause"
)

// Equal matches columns equal to value.
func Equal(value interface{}) Predicate {
	return func(column clause.Column) clause.Expression {
		return clause.Eq{Column: column, Value: value}
	}
}

// likeEscaper escapes LIKE wildcards so a term matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains matches columns containing term, ignoring case. % and _ in term
// are matched literally.
func Contains(term string) Predicate {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return func(column clause.Column) clause.Expression {
		return clause.Expr{SQL: `LOWER(?) LIKE ? ESCAPE '\'`, Vars: []interface{}{column, pattern}}
	}
}

// In matches columns equal to any of values.
func In(values ...string) Predicate {
	vars := make([]interface{}, len(values))
	for i, v := range values {
		vars[i] = v
	}
	return func(column clause.Column) clause.Expression {
		return clause.IN{Column: column, Values: vars}
	}
}
