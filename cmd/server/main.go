// Package main is the entry point for the product list API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"refiner/internal/config"
	"refiner/internal/domain/product"
	v1 "refiner/internal/infrastructure/http/v1"
	"refiner/internal/infrastructure/storage/postgres"
	"refiner/internal/infrastructure/storage/postgres/product_repo"
	"refiner/pkg/logger"
	"refiner/pkg/refiner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting refiner server",
		"namespace", cfg.Namespace,
		"search_param", cfg.SearchParam,
		"sort_param", cfg.SortParam,
	)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	factory, err := product.NewFactory(cfg.Namespace, refiner.WithKeys(cfg.Keys()))
	if err != nil {
		log.Fatalw("failed to register refiners", "error", err)
	}
	log.Infow("default refiner registered",
		"resource", product.Resource,
		"refiner", factory.Name(product.Resource),
	)

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterConfig{
		Logger:   log,
		Keys:     cfg.Keys(),
		DB:       pool,
		Products: product.NewService(product_repo.NewRepo(pool), factory),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
