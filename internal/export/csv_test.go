package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsconsole/backend/internal/forecast"
)

func TestWriteCSV(t *testing.T) {
	rows := []forecast.ForecastRow{
		{ProductID: "p1", ProductName: "Alpha", SKU: "SKU-1", Location: "loc-1", Year: 2026, Month: time.June, Week: 23, Units: 310},
		{ProductID: "p2", ProductName: "Beta", SKU: "SKU-2", Location: "loc-1", Year: 2026, Month: time.July, Week: 27, Units: 95},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_id,product_name,sku,location,year,month,week,units", lines[0])
	assert.Equal(t, "p1,Alpha,SKU-1,loc-1,2026,6,23,310", lines[1])
	assert.Equal(t, "p2,Beta,SKU-2,loc-1,2026,7,27,95", lines[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}
