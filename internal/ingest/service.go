// internal/ingest/service.go
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/repository"
	"github.com/opsconsole/backend/internal/service"
	"github.com/opsconsole/backend/pkg/logger"
)

var ingestLog = logger.For("ingest")

// Service accepts sales-history CSV uploads, appends them to the log and
// triggers a baseline recompute.
type Service struct {
	sales     repository.SalesHistoryRepository
	forecasts *service.ForecastService
}

func NewService(sales repository.SalesHistoryRepository, forecasts *service.ForecastService) *Service {
	return &Service{sales: sales, forecasts: forecasts}
}

// IngestSalesCSV parses and stores a sales upload, then recomputes the
// baseline daily rates affected by it. Returns the number of entries
// ingested.
func (s *Service) IngestSalesCSV(ctx context.Context, r io.Reader, locationID string) (int, error) {
	entries, err := ParseSalesCSV(r)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := s.sales.InsertEntries(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to store sales history: %w", err)
	}

	if err := s.forecasts.RecomputeBaselines(ctx, locationID, time.Now().UTC()); err != nil {
		return 0, fmt.Errorf("failed to recompute baselines: %w", err)
	}

	ingestLog.Info().Int("entries", len(entries)).Str("location_id", locationID).Msg("sales history ingested")
	return len(entries), nil
}

// ParseSalesCSV reads rows of the form product_id,date,units_sold. A
// malformed date or unit count fails the whole upload: silently dropped
// or defaulted rows would skew every derived baseline.
func ParseSalesCSV(r io.Reader) ([]forecast.SalesHistoryEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	var entries []forecast.SalesHistoryEntry
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed sales csv at line %d: %w", line+1, err)
		}
		line++

		// Skip a header row if present.
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "product_id") {
			continue
		}

		productID := strings.TrimSpace(record[0])
		if productID == "" {
			return nil, fmt.Errorf("sales csv line %d: empty product id", line)
		}

		date, err := forecast.ParseDay(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("sales csv line %d: %w", line, err)
		}

		units, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil || units < 0 {
			return nil, fmt.Errorf("sales csv line %d: units_sold must be a non-negative integer", line)
		}

		entries = append(entries, forecast.SalesHistoryEntry{
			ProductID: productID,
			Date:      date,
			UnitsSold: units,
		})
	}

	return entries, nil
}
