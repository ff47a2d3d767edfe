package forecast

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DayFormat is the calendar-day format used on every engine boundary.
const DayFormat = "2006-01-02"

// Validate checks a profile against the engine's input domain: exactly 12
// seasonal multipliers, each in [0.5, 2.0], trend in [-0.2, 0.2], a
// non-negative daily rate and a known confidence level. Validation happens
// at the construction boundary so the calculators can assume valid input.
func (p ForecastProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid forecast profile for product %s: %w", p.ProductID, err)
	}
	if p.ManualOverride != nil && *p.ManualOverride < 0 {
		return fmt.Errorf("invalid forecast profile for product %s: manual override must not be negative", p.ProductID)
	}
	return nil
}

// NewForecastProfile builds a validated profile. manualOverride follows
// the legacy storage convention: zero means "no override", so it is mapped
// to nil here rather than treated as a zero-demand override.
func NewForecastProfile(productID, sku, name, locationID string, dailyRate, manualOverride float64, seasonal []float64, trendRate float64, confidence string, enabled bool) (ForecastProfile, error) {
	p := ForecastProfile{
		ProductID:           productID,
		SKU:                 sku,
		ProductName:         name,
		LocationID:          locationID,
		DailyRate:           dailyRate,
		SeasonalMultipliers: seasonal,
		TrendRate:           trendRate,
		Confidence:          confidence,
		IsEnabled:           enabled,
	}
	if manualOverride != 0 {
		p.ManualOverride = &manualOverride
	}
	if len(p.SeasonalMultipliers) == 0 {
		p.SeasonalMultipliers = FlatSeasonality()
	}
	if err := p.Validate(); err != nil {
		return ForecastProfile{}, err
	}
	return p, nil
}

// FlatSeasonality returns the 12-slot identity multiplier table.
func FlatSeasonality() []float64 {
	s := make([]float64, 12)
	for i := range s {
		s[i] = 1.0
	}
	return s
}

// ParseDay parses a calendar day on an engine boundary. Unparseable dates
// are a hard input error, never silently replaced with "now": a corrupted
// date would corrupt every downstream replenishment decision.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar day %q: %w", value, err)
	}
	return t, nil
}

// ValidateAdjustment checks an adjustment's base shape: a positive
// multiplier must be present exactly when the effect is multiply, and the
// range must not be inverted (non-recurring only; recurring ranges may
// wrap the year boundary).
func ValidateAdjustment(a Adjustment) error {
	switch a.Effect {
	case EffectMultiply:
		if a.Multiplier == nil || *a.Multiplier <= 0 {
			return fmt.Errorf("adjustment %s: multiply effect requires a positive multiplier", a.ID)
		}
	case EffectExclude:
		if a.Multiplier != nil {
			return fmt.Errorf("adjustment %s: exclude effect must not carry a multiplier", a.ID)
		}
	default:
		return fmt.Errorf("adjustment %s: unknown effect %q", a.ID, a.Effect)
	}

	if !a.IsRecurring && a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("adjustment %s: end date precedes start date", a.ID)
	}

	return nil
}
