// internal/repository/forecast_repository.go
package repository

import (
	"context"
	"time"

	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
)

// ForecastRepository loads the forecasting inputs the engine works from.
type ForecastRepository interface {
	// GetProfiles returns validated profiles matching the filter. Rows that
	// fail validation are skipped and logged, never returned.
	GetProfiles(ctx context.Context, filter domain.SeriesFilter) ([]forecast.ForecastProfile, error)
	GetAccountAdjustments(ctx context.Context) ([]forecast.AccountAdjustment, error)
	// GetProductAdjustments returns product-scoped adjustment records keyed
	// by product id. An empty productIDs slice means all products.
	GetProductAdjustments(ctx context.Context, productIDs []string) (map[string][]forecast.ProductAdjustment, error)
	UpdateDailyRate(ctx context.Context, productID, locationID string, rate float64) error
}

// RouteRepository loads the shipping legs used by the timeline projector.
type RouteRepository interface {
	GetRoutes(ctx context.Context) ([]forecast.ShippingRoute, error)
}

// SalesHistoryRepository reads and appends the sales log.
type SalesHistoryRepository interface {
	InsertEntries(ctx context.Context, entries []forecast.SalesHistoryEntry) error
	GetEntriesSince(ctx context.Context, productID string, since time.Time) ([]forecast.SalesHistoryEntry, error)
	ListProductIDs(ctx context.Context) ([]string, error)
}

// ProductRepository exposes the catalog entries the console decorates
// engine output with.
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
