package middleware

import (
	"github.com/gin-gonic/gin"

	"refiner/internal/core/apperror"
	appctx "refiner/internal/core/context"
	"refiner/pkg/logger"
)

// ErrorHandler renders the last error registered by a handler as JSON.
// Internal causes are logged, never returned to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		renderError(c)
	}
}

func renderError(c *gin.Context) {
	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	ctx := c.Request.Context()
	err := c.Errors.Last().Err
	status := apperror.GetHTTPStatus(err)

	if appErr, ok := apperror.AsAppError(err); ok {
		if appErr.Err != nil {
			logger.Error(ctx, "request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}
		c.JSON(status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		})
		return
	}

	logger.Error(ctx, "unhandled error", "error", err)
	c.JSON(status, gin.H{
		"code":    apperror.CodeInternal,
		"message": "Internal server error",
		"details": map[string]any{
			"request_id": appctx.GetRequestID(ctx),
		},
	})
}
