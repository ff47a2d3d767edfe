// internal/repository/postgres/sales_history_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/opsconsole/backend/internal/forecast"
)

type salesHistoryRepository struct {
	db *DB
}

func NewSalesHistoryRepository(db *DB) *salesHistoryRepository {
	return &salesHistoryRepository{db: db}
}

func (r *salesHistoryRepository) InsertEntries(ctx context.Context, entries []forecast.SalesHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sales_history (product_id, sale_date, units_sold)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id, sale_date)
			DO UPDATE SET units_sold = EXCLUDED.units_sold
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, entry := range entries {
			if _, err := stmt.ExecContext(ctx, entry.ProductID, entry.Date, entry.UnitsSold); err != nil {
				return fmt.Errorf("failed to insert sales entry for %s: %w", entry.ProductID, err)
			}
		}

		return nil
	})
}

type salesRow struct {
	ProductID string    `db:"product_id"`
	SaleDate  time.Time `db:"sale_date"`
	UnitsSold int       `db:"units_sold"`
}

func (r *salesHistoryRepository) GetEntriesSince(ctx context.Context, productID string, since time.Time) ([]forecast.SalesHistoryEntry, error) {
	query := `
		SELECT product_id, sale_date, units_sold
		FROM sales_history
		WHERE product_id = $1 AND sale_date >= $2
		ORDER BY sale_date
	`

	var rows []salesRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, productID, since); err != nil {
		return nil, fmt.Errorf("failed to load sales history for %s: %w", productID, err)
	}

	entries := make([]forecast.SalesHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, forecast.SalesHistoryEntry{
			ProductID: row.ProductID,
			Date:      row.SaleDate,
			UnitsSold: row.UnitsSold,
		})
	}

	return entries, nil
}

func (r *salesHistoryRepository) ListProductIDs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT product_id FROM sales_history ORDER BY product_id`

	var ids []string
	if err := sqlx.SelectContext(ctx, r.db, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list products with sales history: %w", err)
	}

	return ids, nil
}
