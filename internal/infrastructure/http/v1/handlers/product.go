package handlers

import (
	"github.com/gin-gonic/gin"

	"refiner/internal/domain/product"
	"refiner/internal/infrastructure/http/v1/dto"
	"refiner/pkg/refiner"
)

// ProductHandler serves the product list.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// List returns the products matching the search parameters, sorted as
// requested, together with the parameters that were actually applied.
// GET /api/v1/products?search[name]=desk&sort[created]=desc
func (h *ProductHandler) List(c *gin.Context) {
	in, ok := h.RefinerInput(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ListResponse[dto.ProductResponse]{Items: dto.FromProducts(items)}
	if ref, ok := h.ClaimRefiner(c, refiner.TypeOf(product.Refiner{}), product.Resource); ok {
		if resp.Query, err = dto.NewRefinedQuery(ref); err != nil {
			h.Error(c, err)
			return
		}
	}
	h.OK(c, resp)
}
