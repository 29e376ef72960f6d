// Package sqlbuilder issues refiner operations on squirrel select queries.
package sqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"refiner/pkg/refiner"
)

// Query is the query type refined by this package.
type Query = squirrel.SelectBuilder

// Definition is a refiner definition over squirrel select queries.
type Definition = refiner.Definition[Query]

// Select implements refiner.Builder for squirrel.SelectBuilder.
type Select struct {
	// CaseInsensitive renders pattern searches with ILIKE (PostgreSQL).
	CaseInsensitive bool
}

var _ refiner.Builder[Query] = Select{}

func (Select) Equals(q Query, column string, value any) Query {
	return q.Where(squirrel.Eq{column: value})
}

// In renders "column IN (...)"; an empty list renders a false condition.
func (Select) In(q Query, column string, values []any) Query {
	if values == nil {
		values = []any{}
	}
	return q.Where(squirrel.Eq{column: values})
}

func (s Select) Like(q Query, column string, pattern string) Query {
	if s.CaseInsensitive {
		return q.Where(squirrel.ILike{column: pattern})
	}
	return q.Where(squirrel.Like{column: pattern})
}

func (Select) OrderBy(q Query, column string, direction refiner.Direction) Query {
	return q.OrderBy(column + " " + strings.ToUpper(string(direction)))
}

// Define starts a definition for the field name.
func Define(name string) *Definition {
	return refiner.Define[Query](name)
}

// New creates a refiner over squirrel queries.
func New(b Select, definer refiner.Definer[Query], opts ...refiner.Option) *refiner.Refiner[Query] {
	return refiner.New[Query](b, definer, opts...)
}
