// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

type profileRow struct {
	ProductID           string          `db:"product_id"`
	SKU                 string          `db:"sku"`
	ProductName         string          `db:"product_name"`
	LocationID          string          `db:"location_id"`
	DailyRate           float64         `db:"daily_rate"`
	ManualOverride      sql.NullFloat64 `db:"manual_override"`
	SeasonalMultipliers pq.Float64Array `db:"seasonal_multipliers"`
	TrendRate           float64         `db:"trend_rate"`
	Confidence          string          `db:"confidence"`
	IsEnabled           bool            `db:"is_enabled"`
}

func (r *forecastRepository) GetProfiles(ctx context.Context, filter domain.SeriesFilter) ([]forecast.ForecastProfile, error) {
	query := `
		SELECT
			f.product_id,
			p.sku,
			p.name AS product_name,
			f.location_id,
			f.daily_rate,
			f.manual_override,
			f.seasonal_multipliers,
			f.trend_rate,
			f.confidence,
			f.is_enabled
		FROM forecast_profiles f
		JOIN products p ON p.id = f.product_id
		WHERE (cardinality($1::text[]) = 0 OR f.product_id = ANY($1))
		  AND ($2 = '' OR f.location_id = $2)
		ORDER BY p.name
	`

	var rows []profileRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, pq.Array(filter.ProductIDs), filter.LocationID); err != nil {
		return nil, fmt.Errorf("failed to load forecast profiles: %w", err)
	}

	profiles := make([]forecast.ForecastProfile, 0, len(rows))
	for _, row := range rows {
		// Legacy rows store zero for "no override"; the sentinel is mapped
		// to the unset form here so the engine never sees it.
		override := 0.0
		if row.ManualOverride.Valid {
			override = row.ManualOverride.Float64
		}

		profile, err := forecast.NewForecastProfile(
			row.ProductID,
			row.SKU,
			row.ProductName,
			row.LocationID,
			row.DailyRate,
			override,
			row.SeasonalMultipliers,
			row.TrendRate,
			row.Confidence,
			row.IsEnabled,
		)
		if err != nil {
			log.Warn().Err(err).Str("product_id", row.ProductID).Msg("skipping invalid forecast profile")
			continue
		}

		profiles = append(profiles, profile)
	}

	return profiles, nil
}

type adjustmentRow struct {
	ID                  string          `db:"id"`
	Name                string          `db:"name"`
	StartDate           sql.NullTime    `db:"start_date"`
	EndDate             sql.NullTime    `db:"end_date"`
	IsRecurring         bool            `db:"is_recurring"`
	Effect              string          `db:"effect"`
	Multiplier          sql.NullFloat64 `db:"multiplier"`
	Notes               sql.NullString  `db:"notes"`
	ProductID           sql.NullString  `db:"product_id"`
	AccountAdjustmentID sql.NullString  `db:"account_adjustment_id"`
	IsOptedOut          sql.NullBool    `db:"is_opted_out"`
}

func (row adjustmentRow) toAdjustment() forecast.Adjustment {
	adj := forecast.Adjustment{
		ID:          row.ID,
		Name:        row.Name,
		IsRecurring: row.IsRecurring,
		Effect:      forecast.AdjustmentEffect(row.Effect),
		Notes:       row.Notes.String,
	}
	if row.StartDate.Valid {
		adj.StartDate = row.StartDate.Time
	}
	if row.EndDate.Valid {
		adj.EndDate = row.EndDate.Time
	}
	if row.Multiplier.Valid {
		m := row.Multiplier.Float64
		adj.Multiplier = &m
	}
	return adj
}

func (r *forecastRepository) GetAccountAdjustments(ctx context.Context) ([]forecast.AccountAdjustment, error) {
	query := `
		SELECT id, name, start_date, end_date, is_recurring, effect, multiplier, notes
		FROM account_adjustments
		ORDER BY start_date
	`

	var rows []adjustmentRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load account adjustments: %w", err)
	}

	adjustments := make([]forecast.AccountAdjustment, 0, len(rows))
	for _, row := range rows {
		adjustments = append(adjustments, forecast.AccountAdjustment{Adjustment: row.toAdjustment()})
	}

	return adjustments, nil
}

func (r *forecastRepository) GetProductAdjustments(ctx context.Context, productIDs []string) (map[string][]forecast.ProductAdjustment, error) {
	query := `
		SELECT id, name, start_date, end_date, is_recurring, effect, multiplier, notes,
		       product_id, account_adjustment_id, is_opted_out
		FROM product_adjustments
		WHERE cardinality($1::text[]) = 0 OR product_id = ANY($1)
		ORDER BY start_date
	`

	var rows []adjustmentRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, pq.Array(productIDs)); err != nil {
		return nil, fmt.Errorf("failed to load product adjustments: %w", err)
	}

	byProduct := make(map[string][]forecast.ProductAdjustment)
	for _, row := range rows {
		pa := forecast.ProductAdjustment{
			Adjustment:          row.toAdjustment(),
			ProductID:           row.ProductID.String,
			AccountAdjustmentID: row.AccountAdjustmentID.String,
			IsOptedOut:          row.IsOptedOut.Valid && row.IsOptedOut.Bool,
		}
		byProduct[pa.ProductID] = append(byProduct[pa.ProductID], pa)
	}

	return byProduct, nil
}

func (r *forecastRepository) UpdateDailyRate(ctx context.Context, productID, locationID string, rate float64) error {
	query := `
		UPDATE forecast_profiles
		SET daily_rate = $3, updated_at = NOW()
		WHERE product_id = $1 AND location_id = $2
	`

	if _, err := r.db.ExecContext(ctx, query, productID, locationID, rate); err != nil {
		return fmt.Errorf("failed to update daily rate for product %s: %w", productID, err)
	}

	return nil
}
