package dto

import (
	"time"

	"refiner/internal/domain/product"
)

// ProductResponse is a product in API responses.
type ProductResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromProduct(p product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price.StringFixed(2),
		CreatedAt: p.CreatedAt,
	}
}

func FromProducts(items []product.Product) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i, p := range items {
		out[i] = FromProduct(p)
	}
	return out
}
