package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalesCSV(t *testing.T) {
	input := "product_id,date,units_sold\np1,2026-06-01,10\np2,2026-06-01,0\n"

	entries, err := ParseSalesCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].ProductID)
	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), entries[0].Date)
	assert.Equal(t, 10, entries[0].UnitsSold)
	assert.Equal(t, 0, entries[1].UnitsSold)
}

func TestParseSalesCSV_NoHeader(t *testing.T) {
	entries, err := ParseSalesCSV(strings.NewReader("p1,2026-06-01,10\n"))

	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestParseSalesCSV_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad date format", "p1,06/01/2026,10\n"},
		{"empty product id", ",2026-06-01,10\n"},
		{"negative units", "p1,2026-06-01,-5\n"},
		{"non-numeric units", "p1,2026-06-01,ten\n"},
		{"wrong field count", "p1,2026-06-01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSalesCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseSalesCSV_Empty(t *testing.T) {
	entries, err := ParseSalesCSV(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, entries)
}
