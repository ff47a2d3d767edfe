// cmd/ingest/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/opsconsole/backend/internal/cache"
	"github.com/opsconsole/backend/internal/config"
	"github.com/opsconsole/backend/internal/ingest"
	"github.com/opsconsole/backend/internal/repository/postgres"
	"github.com/opsconsole/backend/internal/service"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Create router
	r := mux.NewRouter()

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize cache (ingest invalidates cached series after recompute)
	seriesCache, err := cache.NewSeriesCache(cfg.Cache)
	if err != nil {
		log.Printf("series cache unavailable: %v", err)
		seriesCache = cache.NewNoopSeriesCache()
	}

	// Initialize Services
	forecastRepo := postgres.NewForecastRepository(db)
	salesRepo := postgres.NewSalesHistoryRepository(db)
	forecastService := service.NewForecastService(forecastRepo, salesRepo, seriesCache, cfg.Forecast.BaselineWindowDays)
	ingestService := ingest.NewService(salesRepo, forecastService)

	// Register routes
	ingestHandler := ingest.NewHandler(ingestService)
	ingestHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest service starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
