// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"refiner/internal/domain/product"
	"refiner/internal/infrastructure/http/v1/handlers"
	"refiner/internal/infrastructure/http/v1/middleware"
	"refiner/pkg/logger"
	"refiner/pkg/refiner"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	// Keys names the search and sort request parameters.
	Keys refiner.Keys

	// DB is checked by the readiness probe.
	DB handlers.Pinger

	Products *product.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	if cfg.DB != nil {
		health := handlers.NewHealthHandler(cfg.DB)
		router.GET("/health/live", health.Live)
		router.GET("/health/ready", health.Ready)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.RefinerRegistry())

	base := handlers.NewBaseHandler(cfg.Keys)
	products := handlers.NewProductHandler(base, cfg.Products)
	api.GET("/products", products.List)
	api.POST("/products/search", products.List)

	return router
}
