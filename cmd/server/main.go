// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsconsole/backend/internal/api"
	"github.com/opsconsole/backend/internal/cache"
	"github.com/opsconsole/backend/internal/config"
	"github.com/opsconsole/backend/internal/export"
	"github.com/opsconsole/backend/internal/repository/postgres"
	"github.com/opsconsole/backend/internal/service"
	"github.com/opsconsole/backend/internal/storage"
	"github.com/opsconsole/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache
	seriesCache, err := cache.NewSeriesCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("series cache unavailable, continuing without caching")
		seriesCache = cache.NewNoopSeriesCache()
	}

	// Initialize object storage for forecast exports
	var archiver *export.Archiver
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = export.NewArchiver(store)
	}

	// Initialize services
	forecastRepo := postgres.NewForecastRepository(db)
	salesRepo := postgres.NewSalesHistoryRepository(db)
	forecastService := service.NewForecastService(forecastRepo, salesRepo, seriesCache, cfg.Forecast.BaselineWindowDays)
	replenishmentService := service.NewReplenishmentService(postgres.NewRouteRepository(db), postgres.NewProductRepository(db))

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		ForecastService:      forecastService,
		ReplenishmentService: replenishmentService,
		Archiver:             archiver,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
