// internal/repository/postgres/route_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opsconsole/backend/internal/forecast"
)

type routeRepository struct {
	db *DB
}

func NewRouteRepository(db *DB) *routeRepository {
	return &routeRepository{db: db}
}

type routeRow struct {
	ID                    string `db:"id"`
	Origin                string `db:"origin"`
	DestinationLocationID string `db:"destination_location_id"`
	Method                string `db:"method"`
	TransitDays           int    `db:"transit_days"`
	IsDefault             bool   `db:"is_default"`
}

func (r *routeRepository) GetRoutes(ctx context.Context) ([]forecast.ShippingRoute, error) {
	query := `
		SELECT id, origin, destination_location_id, method, transit_days, is_default
		FROM shipping_routes
		ORDER BY origin, destination_location_id, is_default DESC
	`

	var rows []routeRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load shipping routes: %w", err)
	}

	routes := make([]forecast.ShippingRoute, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, forecast.ShippingRoute{
			ID:                    row.ID,
			Origin:                row.Origin,
			DestinationLocationID: row.DestinationLocationID,
			Method:                row.Method,
			TransitDays:           row.TransitDays,
			IsDefault:             row.IsDefault,
		})
	}

	return routes, nil
}
