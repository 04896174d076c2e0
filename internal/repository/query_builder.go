package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type condition func(column func(key string) exp.IdentifierExpression) exp.Expression

// QueryBuilder collects named filter predicates. Keys are API field names;
// BuildConditions maps them to SQL columns through the alias table and joins
// every predicate with AND.
type QueryBuilder struct {
	conditions []condition
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

func (q *QueryBuilder) IsEmpty() bool {
	return len(q.conditions) == 0
}

func (q *QueryBuilder) add(c condition) *QueryBuilder {
	q.conditions = append(q.conditions, c)
	return q
}

func (q *QueryBuilder) Eq(key string, value interface{}) *QueryBuilder {
	return q.add(func(column func(string) exp.IdentifierExpression) exp.Expression {
		return column(key).Eq(value)
	})
}

// In skips the predicate for an empty set.
func (q *QueryBuilder) In(key string, values []string) *QueryBuilder {
	if len(values) == 0 {
		return q
	}
	return q.add(func(column func(string) exp.IdentifierExpression) exp.Expression {
		return column(key).In(values)
	})
}

func (q *QueryBuilder) InIDs(key string, ids []uuid.UUID) *QueryBuilder {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	return q.In(key, values)
}

func (q *QueryBuilder) Contains(key string, needle string) *QueryBuilder {
	if strings.TrimSpace(needle) == "" {
		return q
	}
	return q.add(func(column func(string) exp.IdentifierExpression) exp.Expression {
		return column(key).ILike(likePattern(needle))
	})
}

// AnyContains matches when at least one of the keys contains the needle.
func (q *QueryBuilder) AnyContains(needle string, keys ...string) *QueryBuilder {
	needle = strings.TrimSpace(needle)
	if needle == "" || len(keys) == 0 {
		return q
	}
	return q.add(anyContains(needle, keys))
}

// AllWordsContain splits text on whitespace and requires every word to be
// found in at least one of the keys.
func (q *QueryBuilder) AllWordsContain(text string, keys ...string) *QueryBuilder {
	if len(keys) == 0 {
		return q
	}
	for _, word := range strings.Fields(text) {
		q.add(anyContains(word, keys))
	}
	return q
}

func (q *QueryBuilder) Gte(key string, value interface{}) *QueryBuilder {
	return q.add(func(column func(string) exp.IdentifierExpression) exp.Expression {
		return column(key).Gte(value)
	})
}

func (q *QueryBuilder) Lte(key string, value interface{}) *QueryBuilder {
	return q.add(func(column func(string) exp.IdentifierExpression) exp.Expression {
		return column(key).Lte(value)
	})
}

func (q *QueryBuilder) BuildConditions(aliases map[string]string) exp.ExpressionList {
	column := func(key string) exp.IdentifierExpression {
		if alias, ok := aliases[key]; ok {
			return goqu.I(alias)
		}
		return goqu.I(key)
	}

	expressions := make([]exp.Expression, 0, len(q.conditions))
	for _, c := range q.conditions {
		expressions = append(expressions, c(column))
	}
	return goqu.And(expressions...)
}

func anyContains(needle string, keys []string) condition {
	return func(column func(string) exp.IdentifierExpression) exp.Expression {
		pattern := likePattern(needle)
		group := make([]exp.Expression, 0, len(keys))
		for _, key := range keys {
			group = append(group, column(key).ILike(pattern))
		}
		return goqu.Or(group...)
	}
}

func likePattern(needle string) string {
	return "%" + likeEscaper.Replace(needle) + "%"
}
