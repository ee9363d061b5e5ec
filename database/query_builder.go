package database

import (
	"fmt"
	"strings"
)

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) Where(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// WhereIn matches rows whose column is any of the given values.
// Uses = ANY with a single array parameter rather than one placeholder
// per value.
func (qb *QueryBuilder) WhereIn(column string, values []string) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = ANY($%d)", column, qb.argCount))
	qb.args = append(qb.args, values)
	qb.argCount++
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}
