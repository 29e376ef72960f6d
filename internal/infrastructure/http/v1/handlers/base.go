// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"refiner/internal/core/apperror"
	"refiner/pkg/refiner"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	keys refiner.Keys
}

// NewBaseHandler creates a base handler reading refinements under keys.
func NewBaseHandler(keys refiner.Keys) *BaseHandler {
	return &BaseHandler{keys: keys}
}

// RefinerInput reads the search and sort parameters of the request.
func (h *BaseHandler) RefinerInput(c *gin.Context) (refiner.Input, bool) {
	in, err := refiner.FromRequest(c.Request, h.keys)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid search or sort parameters").WithDetail("error", err.Error()))
		return refiner.Input{}, false
	}
	return in, true
}

// ClaimRefiner takes the refiner created implicitly for resource during this
// request out of the request registry.
func (h *BaseHandler) ClaimRefiner(c *gin.Context, refinerType, resource string) (refiner.Introspector, bool) {
	reg := refiner.RegistryFromContext(c.Request.Context())
	if reg == nil {
		return nil, false
	}
	return reg.Shift(refinerType, resource)
}

// Error registers err on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
