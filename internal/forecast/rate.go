package forecast

import (
	"math"
	"time"
)

// BaseRate returns the demand baseline for a profile: the manual override
// when one is set, otherwise the derived daily rate.
func BaseRate(p ForecastProfile) float64 {
	if p.ManualOverride != nil {
		return *p.ManualOverride
	}
	return p.DailyRate
}

// TrendFactor compounds the profile's monthly trend over whole months.
// Compounding is monthly even when projecting at daily granularity: every
// day of the same target month shares one factor.
func TrendFactor(p ForecastProfile, monthsFromNow int) float64 {
	if monthsFromNow <= 0 {
		return 1
	}
	return math.Pow(1+p.TrendRate, float64(monthsFromNow))
}

// RateForDay computes the adjusted demand rate (units/day) for one
// calendar day. A day covered by an exclude adjustment contributes zero
// regardless of any multiply adjustments active on the same day.
func RateForDay(p ForecastProfile, adjs []EffectiveAdjustment, date time.Time, monthsFromNow int) float64 {
	rate := BaseRate(p) * seasonalFor(p, date.Month()) * TrendFactor(p, monthsFromNow)

	for _, adj := range adjs {
		if !adjustmentCovers(adj, date) {
			continue
		}
		if adj.Effect == EffectExclude {
			return 0
		}
		rate *= adj.Multiplier
	}

	return rate
}

// UnitsForMonth computes total forecast units for a calendar month.
//
// Rounding happens once at the month level: the adjusted daily rate is
// computed once (adjustments matched against the 1st of the month) and
// multiplied by the month's day count. Rounding per day would drift.
func UnitsForMonth(p ForecastProfile, adjs []EffectiveAdjustment, year int, month time.Month, monthsFromNow int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rate := RateForDay(p, adjs, first, monthsFromNow)
	if rate <= 0 {
		return 0
	}
	return int(math.Round(rate * float64(daysInMonth(year, month))))
}

func seasonalFor(p ForecastProfile, month time.Month) float64 {
	idx := int(month) - 1
	if idx < 0 || idx >= len(p.SeasonalMultipliers) {
		return 1
	}
	return p.SeasonalMultipliers[idx]
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// adjustmentCovers reports whether the adjustment's inclusive date range
// contains the given day. Recurring adjustments compare month/day only,
// including ranges that wrap the year boundary (e.g. Dec 15 - Jan 10).
func adjustmentCovers(adj EffectiveAdjustment, date time.Time) bool {
	if adj.IsRecurring {
		d := monthDayKey(date)
		start := monthDayKey(adj.StartDate)
		end := monthDayKey(adj.EndDate)
		if start <= end {
			return d >= start && d <= end
		}
		return d >= start || d <= end
	}

	day := truncateToDay(date)
	return !day.Before(truncateToDay(adj.StartDate)) && !day.After(truncateToDay(adj.EndDate))
}

func monthDayKey(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
