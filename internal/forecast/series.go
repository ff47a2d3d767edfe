package forecast

import (
	"sort"
	"time"
)

// DefaultHorizonMonths is the rolling horizon used when the caller does
// not ask for a specific one.
const DefaultHorizonMonths = 12

// Generate projects every enabled profile forward over the horizon and
// returns one row per profile per calendar month, starting from now's
// month and wrapping year boundaries.
//
// adjustmentsByProduct carries each product's resolved effective
// adjustments; a missing entry means the product has none. The groupBy
// argument only affects row ordering: within a product group rows are
// chronological, within a month/week group rows sort by product name. The
// underlying row set is identical for every grouping, and identical
// inputs (including now) produce identical output.
func Generate(profiles []ForecastProfile, adjustmentsByProduct map[string][]EffectiveAdjustment, horizonMonths int, groupBy GroupBy, now time.Time) []ForecastRow {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	rows := make([]ForecastRow, 0, len(profiles)*horizonMonths)

	for _, p := range profiles {
		if !p.IsEnabled {
			continue
		}

		adjs := adjustmentsByProduct[p.ProductID]

		year, month := now.Year(), now.Month()
		for i := 0; i < horizonMonths; i++ {
			first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

			// Week is the ISO week of the 1st of the forecast month. This
			// labels the monthly total for the week-grouped view; it is not
			// a daily-to-weekly redistribution of the month's units.
			_, week := first.ISOWeek()

			rows = append(rows, ForecastRow{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				SKU:         p.SKU,
				Location:    p.LocationID,
				Month:       month,
				Year:        year,
				Week:        week,
				Units:       UnitsForMonth(p, adjs, year, month, i),
			})

			month++
			if month > time.December {
				month = time.January
				year++
			}
		}
	}

	sortRows(rows, groupBy)
	return rows
}

func sortRows(rows []ForecastRow, groupBy GroupBy) {
	switch groupBy {
	case GroupByMonth:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Year != rows[j].Year {
				return rows[i].Year < rows[j].Year
			}
			if rows[i].Month != rows[j].Month {
				return rows[i].Month < rows[j].Month
			}
			return rows[i].ProductName < rows[j].ProductName
		})
	case GroupByWeek:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Year != rows[j].Year {
				return rows[i].Year < rows[j].Year
			}
			if rows[i].Week != rows[j].Week {
				return rows[i].Week < rows[j].Week
			}
			return rows[i].ProductName < rows[j].ProductName
		})
	default: // GroupByProduct
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].ProductName != rows[j].ProductName {
				return rows[i].ProductName < rows[j].ProductName
			}
			if rows[i].Year != rows[j].Year {
				return rows[i].Year < rows[j].Year
			}
			return rows[i].Month < rows[j].Month
		})
	}
}
