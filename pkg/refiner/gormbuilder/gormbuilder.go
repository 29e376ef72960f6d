// Package gormbuilder issues refiner operations on gorm queries.
package gormbuilder

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"refiner/pkg/refiner"
)

// Definition is a refiner definition over gorm queries.
type Definition = refiner.Definition[*gorm.DB]

// DB implements refiner.Builder for *gorm.DB.
type DB struct{}

var _ refiner.Builder[*gorm.DB] = DB{}

func (DB) Equals(q *gorm.DB, column string, value any) *gorm.DB {
	return q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
}

func (DB) In(q *gorm.DB, column string, values []any) *gorm.DB {
	return q.Where(clause.IN{Column: clause.Column{Name: column}, Values: values})
}

func (DB) Like(q *gorm.DB, column string, pattern string) *gorm.DB {
	return q.Where(clause.Like{Column: clause.Column{Name: column}, Value: pattern})
}

func (DB) OrderBy(q *gorm.DB, column string, direction refiner.Direction) *gorm.DB {
	return q.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   direction == refiner.Desc,
	})
}

// Define starts a definition for the field name.
func Define(name string) *Definition {
	return refiner.Define[*gorm.DB](name)
}

// New creates a refiner over gorm queries.
func New(definer refiner.Definer[*gorm.DB], opts ...refiner.Option) *refiner.Refiner[*gorm.DB] {
	return refiner.New[*gorm.DB](DB{}, definer, opts...)
}
