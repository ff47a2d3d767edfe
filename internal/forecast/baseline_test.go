package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDailyRate_MeanOverWindow(t *testing.T) {
	asOf := day(2026, time.June, 30)
	entries := []SalesHistoryEntry{
		{ProductID: "p1", Date: day(2026, time.June, 30), UnitsSold: 10},
		{ProductID: "p1", Date: day(2026, time.June, 29), UnitsSold: 20},
	}

	// 30 units over a 30-day window; missing days count as zero.
	assert.InDelta(t, 1.0, DeriveDailyRate(entries, 30, asOf), 1e-9)
}

func TestDeriveDailyRate_IgnoresOutsideWindow(t *testing.T) {
	asOf := day(2026, time.June, 30)
	entries := []SalesHistoryEntry{
		{ProductID: "p1", Date: day(2026, time.June, 30), UnitsSold: 30},
		{ProductID: "p1", Date: day(2026, time.May, 31), UnitsSold: 999}, // day before the 30-day window
		{ProductID: "p1", Date: day(2026, time.July, 1), UnitsSold: 999}, // after asOf
	}

	assert.InDelta(t, 1.0, DeriveDailyRate(entries, 30, asOf), 1e-9)
}

func TestDeriveDailyRate_WindowBoundaryInclusive(t *testing.T) {
	asOf := day(2026, time.June, 30)
	entries := []SalesHistoryEntry{
		{ProductID: "p1", Date: day(2026, time.June, 1), UnitsSold: 30}, // first day of the 30-day window
	}

	assert.InDelta(t, 1.0, DeriveDailyRate(entries, 30, asOf), 1e-9)
}

func TestDeriveDailyRate_EmptyHistory(t *testing.T) {
	assert.Equal(t, 0.0, DeriveDailyRate(nil, 30, day(2026, time.June, 30)))
}

func TestDeriveDailyRate_DefaultWindow(t *testing.T) {
	asOf := day(2026, time.June, 30)
	entries := []SalesHistoryEntry{{ProductID: "p1", Date: asOf, UnitsSold: 90}}

	assert.InDelta(t, 1.0, DeriveDailyRate(entries, 0, asOf), 1e-9)
}
