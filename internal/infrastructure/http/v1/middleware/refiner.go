package middleware

import (
	"github.com/gin-gonic/gin"

	"refiner/pkg/logger"
	"refiner/pkg/refiner"
)

// RefinerRegistry gives every request its own refiner registry, emptied
// when the request completes.
func RefinerRegistry() gin.HandlerFunc {
	return func(c *gin.Context) {
		reg := refiner.NewRegistry()
		c.Request = c.Request.WithContext(refiner.WithRegistry(c.Request.Context(), reg))

		c.Next()

		if n := reg.Len(); n > 0 {
			logger.Debug(c.Request.Context(), "unclaimed refiners dropped", "count", n)
		}
		reg.Reset()
	}
}
