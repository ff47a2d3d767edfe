// internal/export/csv.go
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/storage"
)

var csvHeader = []string{"product_id", "product_name", "sku", "location", "year", "month", "week", "units"}

// WriteCSV renders forecast rows in a stable field order, one line per
// row plus a header.
func WriteCSV(w io.Writer, rows []forecast.ForecastRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ProductID,
			row.ProductName,
			row.SKU,
			row.Location,
			strconv.Itoa(row.Year),
			strconv.Itoa(int(row.Month)),
			strconv.Itoa(row.Week),
			strconv.Itoa(row.Units),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Archiver snapshots generated series to object storage so runs can be
// compared after the fact.
type Archiver struct {
	store storage.ObjectStorage
}

func NewArchiver(store storage.ObjectStorage) *Archiver {
	return &Archiver{store: store}
}

// Archive uploads the rows as CSV under a date-stamped key and returns
// the key. A nil store makes Archive a no-op.
func (a *Archiver) Archive(ctx context.Context, rows []forecast.ForecastRow, label string, day time.Time) (string, error) {
	if a == nil || a.store == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}

	key := fmt.Sprintf("forecast/%s/%s.csv", day.Format("2006-01-02"), label)
	if err := a.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to archive forecast snapshot: %w", err)
	}

	log.Info().Str("key", key).Int("rows", len(rows)).Msg("forecast snapshot archived")
	return key, nil
}
