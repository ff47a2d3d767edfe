package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func flatProfile(dailyRate float64) ForecastProfile {
	return ForecastProfile{
		ProductID:           "prod-1",
		SKU:                 "SKU-1",
		ProductName:         "Widget",
		LocationID:          "loc-1",
		DailyRate:           dailyRate,
		SeasonalMultipliers: FlatSeasonality(),
		Confidence:          ConfidenceMedium,
		IsEnabled:           true,
	}
}

func multiplyAdj(id string, mult float64, start, end time.Time) EffectiveAdjustment {
	return EffectiveAdjustment{
		ID:         id,
		StartDate:  start,
		EndDate:    end,
		Effect:     EffectMultiply,
		Multiplier: mult,
	}
}

func TestBaseRate_ManualOverride(t *testing.T) {
	p := flatProfile(10)
	assert.Equal(t, 10.0, BaseRate(p))

	p.ManualOverride = fptr(25)
	assert.Equal(t, 25.0, BaseRate(p))
}

func TestTrendFactor_CompoundsMonthly(t *testing.T) {
	p := flatProfile(10)
	p.TrendRate = 0.05

	// 1.05^3, not 1 + 0.05*3.
	assert.InDelta(t, 1.157625, TrendFactor(p, 3), 1e-9)
	assert.Equal(t, 1.0, TrendFactor(p, 0))
}

func TestRateForDay_MultiplicativeComposition(t *testing.T) {
	p := flatProfile(10)
	date := day(2026, time.June, 15)

	a := multiplyAdj("a", 1.2, day(2026, time.June, 1), day(2026, time.June, 30))
	b := multiplyAdj("b", 0.9, day(2026, time.June, 10), day(2026, time.June, 20))

	want := 10 * 1.2 * 0.9

	assert.InDelta(t, want, RateForDay(p, []EffectiveAdjustment{a, b}, date, 0), 1e-9)
	// Order independent.
	assert.InDelta(t, want, RateForDay(p, []EffectiveAdjustment{b, a}, date, 0), 1e-9)
}

func TestRateForDay_ExclusionShortCircuits(t *testing.T) {
	p := flatProfile(10)
	date := day(2026, time.June, 15)

	exclude := EffectiveAdjustment{
		ID:        "x",
		StartDate: day(2026, time.June, 14),
		EndDate:   day(2026, time.June, 16),
		Effect:    EffectExclude,
	}
	boost := multiplyAdj("b", 3.0, day(2026, time.June, 1), day(2026, time.June, 30))

	assert.Equal(t, 0.0, RateForDay(p, []EffectiveAdjustment{boost, exclude}, date, 0))

	// The day after the exclusion window the multiplier applies again.
	assert.InDelta(t, 30.0, RateForDay(p, []EffectiveAdjustment{boost, exclude}, day(2026, time.June, 17), 0), 1e-9)
}

func TestRateForDay_AdjustmentRangeInclusive(t *testing.T) {
	p := flatProfile(10)
	adj := multiplyAdj("a", 2.0, day(2026, time.June, 10), day(2026, time.June, 20))
	adjs := []EffectiveAdjustment{adj}

	assert.InDelta(t, 20.0, RateForDay(p, adjs, day(2026, time.June, 10), 0), 1e-9)
	assert.InDelta(t, 20.0, RateForDay(p, adjs, day(2026, time.June, 20), 0), 1e-9)
	assert.InDelta(t, 10.0, RateForDay(p, adjs, day(2026, time.June, 9), 0), 1e-9)
	assert.InDelta(t, 10.0, RateForDay(p, adjs, day(2026, time.June, 21), 0), 1e-9)
}

func TestRateForDay_RecurringIgnoresYear(t *testing.T) {
	p := flatProfile(10)
	adj := multiplyAdj("holiday", 1.5, day(2024, time.December, 15), day(2024, time.December, 31))
	adj.IsRecurring = true
	adjs := []EffectiveAdjustment{adj}

	assert.InDelta(t, 15.0, RateForDay(p, adjs, day(2027, time.December, 20), 0), 1e-9)
	assert.InDelta(t, 10.0, RateForDay(p, adjs, day(2027, time.December, 10), 0), 1e-9)
}

func TestRateForDay_RecurringWrapsYearBoundary(t *testing.T) {
	p := flatProfile(10)
	adj := multiplyAdj("newyear", 1.5, day(2024, time.December, 15), day(2024, time.January, 10))
	adj.IsRecurring = true
	adjs := []EffectiveAdjustment{adj}

	assert.InDelta(t, 15.0, RateForDay(p, adjs, day(2026, time.December, 20), 0), 1e-9)
	assert.InDelta(t, 15.0, RateForDay(p, adjs, day(2027, time.January, 5), 0), 1e-9)
	assert.InDelta(t, 10.0, RateForDay(p, adjs, day(2027, time.February, 1), 0), 1e-9)
}

func TestUnitsForMonth_DecemberSeasonality(t *testing.T) {
	p := flatProfile(10)
	p.SeasonalMultipliers[11] = 1.5

	// round(10 × 1.5 × 31) = 465
	assert.Equal(t, 465, UnitsForMonth(p, nil, 2026, time.December, 0))
}

func TestUnitsForMonth_RoundsOnceAtMonthLevel(t *testing.T) {
	p := flatProfile(3.33)

	// round(3.33 × 30) = round(99.9) = 100, not 30 × round-per-day.
	assert.Equal(t, 100, UnitsForMonth(p, nil, 2026, time.June, 0))
}

func TestUnitsForMonth_TrendAppliesPerTargetMonth(t *testing.T) {
	p := flatProfile(10)
	p.TrendRate = 0.05

	// June 2026 has 30 days; three months out the trend factor is 1.05^3.
	raw := float64(10 * 1.157625 * 30)
	want := int(0.5 + raw)
	assert.Equal(t, want, UnitsForMonth(p, nil, 2026, time.June, 3))
}

func TestUnitsForMonth_ExcludedMonthIsZero(t *testing.T) {
	p := flatProfile(10)
	exclude := EffectiveAdjustment{
		ID:        "x",
		StartDate: day(2026, time.June, 1),
		EndDate:   day(2026, time.June, 30),
		Effect:    EffectExclude,
	}

	assert.Equal(t, 0, UnitsForMonth(p, []EffectiveAdjustment{exclude}, 2026, time.June, 0))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(2026, time.January))
	assert.Equal(t, 28, daysInMonth(2026, time.February))
	assert.Equal(t, 29, daysInMonth(2028, time.February))
	assert.Equal(t, 30, daysInMonth(2026, time.April))
}
