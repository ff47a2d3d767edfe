// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsconsole/backend/internal/forecast"
)

// Product is a catalog entry in the operations console.
type Product struct {
	ID         string          `json:"id" db:"id"`
	SKU        string          `json:"sku" db:"sku"`
	Name       string          `json:"name" db:"name"`
	SupplierID string          `json:"supplier_id" db:"supplier_id"`
	UnitCost   decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// Location is a warehouse or store the console tracks stock for.
type Location struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Kind      string    `json:"kind" db:"kind"` // "warehouse" or "store"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SeriesFilter selects which profiles a forecast series run covers and
// how the rows are grouped.
type SeriesFilter struct {
	ProductIDs    []string `json:"product_ids"`
	LocationID    string   `json:"location_id"`
	HorizonMonths int      `json:"horizon_months"`
	GroupBy       string   `json:"group_by"`
}

// TimelineResult is the replenishment detail view payload: the raw metric
// plus the derived display status, the ranked reasoning and the order
// value of the recommended quantity.
type TimelineResult struct {
	Metric      forecast.StockoutGapMetric `json:"metric"`
	Status      string                     `json:"status"`
	StatusLabel string                     `json:"status_label"`
	TopReasons  []forecast.ReasoningItem   `json:"top_reasons"`
	OrderValue  decimal.Decimal            `json:"order_value"`
}
