package product

import (
	"context"

	"refiner/pkg/refiner/sqlbuilder"
)

// Repository reads products.
type Repository interface {
	// Select returns the base list query.
	Select() sqlbuilder.Query

	// Find runs a (refined) list query.
	Find(ctx context.Context, q sqlbuilder.Query) ([]Product, error)
}
