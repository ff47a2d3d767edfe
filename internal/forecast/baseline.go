package forecast

import "time"

// DefaultBaselineWindowDays is the trailing sales window used to derive a
// profile's baseline daily rate.
const DefaultBaselineWindowDays = 90

// DeriveDailyRate computes the mean units/day over the trailing window
// ending at asOf (inclusive). Days with no recorded sales count as zero,
// so the divisor is always the full window length.
func DeriveDailyRate(entries []SalesHistoryEntry, windowDays int, asOf time.Time) float64 {
	if windowDays <= 0 {
		windowDays = DefaultBaselineWindowDays
	}

	end := truncateToDay(asOf)
	start := end.AddDate(0, 0, -(windowDays - 1))

	total := 0
	for _, e := range entries {
		day := truncateToDay(e.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		total += e.UnitsSold
	}

	return float64(total) / float64(windowDays)
}
