// Package product provides the product catalog and its list refinements.
package product

import (
	"time"

	"github.com/shopspring/decimal"

	"refiner/internal/core/id"
)

// Resource names the product resource for the default refiner factory.
const Resource = `\App\Models\Product`

// Product is one catalog entry.
type Product struct {
	ID        id.ID           `db:"id" json:"id"`
	Code      string          `db:"code" json:"code"`
	Name      string          `db:"name" json:"name"`
	Category  string          `db:"category" json:"category"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
