package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForecastProfile_Valid(t *testing.T) {
	p, err := NewForecastProfile("prod-1", "SKU-1", "Widget", "loc-1", 10, 0, FlatSeasonality(), 0.02, ConfidenceHigh, true)

	require.NoError(t, err)
	assert.Nil(t, p.ManualOverride, "zero override is the legacy unset sentinel")
	assert.Equal(t, 10.0, BaseRate(p))
}

func TestNewForecastProfile_OverrideSet(t *testing.T) {
	p, err := NewForecastProfile("prod-1", "SKU-1", "Widget", "loc-1", 10, 25, FlatSeasonality(), 0, ConfidenceLow, true)

	require.NoError(t, err)
	require.NotNil(t, p.ManualOverride)
	assert.Equal(t, 25.0, BaseRate(p))
}

func TestNewForecastProfile_DefaultsSeasonality(t *testing.T) {
	p, err := NewForecastProfile("prod-1", "SKU-1", "Widget", "loc-1", 10, 0, nil, 0, ConfidenceMedium, true)

	require.NoError(t, err)
	assert.Equal(t, FlatSeasonality(), p.SeasonalMultipliers)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ForecastProfile)
	}{
		{"short multiplier table", func(p *ForecastProfile) { p.SeasonalMultipliers = p.SeasonalMultipliers[:11] }},
		{"multiplier below range", func(p *ForecastProfile) { p.SeasonalMultipliers[3] = 0.4 }},
		{"multiplier above range", func(p *ForecastProfile) { p.SeasonalMultipliers[3] = 2.5 }},
		{"trend out of range", func(p *ForecastProfile) { p.TrendRate = 0.5 }},
		{"negative daily rate", func(p *ForecastProfile) { p.DailyRate = -1 }},
		{"unknown confidence", func(p *ForecastProfile) { p.Confidence = "certain" }},
		{"negative override", func(p *ForecastProfile) { p.ManualOverride = fptr(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := flatProfile(10)
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.June, 1), got)

	// Unparseable dates fail fast, never fall back to "now".
	_, err = ParseDay("06/01/2026")
	assert.Error(t, err)
	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestValidateAdjustment(t *testing.T) {
	valid := Adjustment{ID: "a1", StartDate: day(2026, time.June, 1), EndDate: day(2026, time.June, 30), Effect: EffectMultiply, Multiplier: fptr(1.2)}
	assert.NoError(t, ValidateAdjustment(valid))

	missing := valid
	missing.Multiplier = nil
	assert.Error(t, ValidateAdjustment(missing))

	nonPositive := valid
	nonPositive.Multiplier = fptr(0)
	assert.Error(t, ValidateAdjustment(nonPositive))

	exclude := Adjustment{ID: "a2", StartDate: day(2026, time.June, 1), EndDate: day(2026, time.June, 30), Effect: EffectExclude}
	assert.NoError(t, ValidateAdjustment(exclude))

	excludeWithMult := exclude
	excludeWithMult.Multiplier = fptr(1.2)
	assert.Error(t, ValidateAdjustment(excludeWithMult))

	inverted := valid
	inverted.EndDate = day(2026, time.May, 1)
	assert.Error(t, ValidateAdjustment(inverted))

	recurringWrap := valid
	recurringWrap.IsRecurring = true
	recurringWrap.StartDate = day(2024, time.December, 15)
	recurringWrap.EndDate = day(2024, time.January, 10)
	assert.NoError(t, ValidateAdjustment(recurringWrap), "recurring ranges may wrap the year")
}
