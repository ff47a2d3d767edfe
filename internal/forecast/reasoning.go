package forecast

import "strings"

// DefaultMaxReasons caps how many reasoning items a detail view surfaces.
const DefaultMaxReasons = 3

// TopReasons selects the most decision-relevant reasoning items, highest
// priority first:
//
//  1. warnings mentioning a stockout, lead time or "must order"
//  2. remaining warnings mentioning safety stock
//  3. calculations mentioning lead time, coverage or day counts
//  4. any other warnings
//
// Order within a band follows the input order. Info items are never
// surfaced. The result is truncated to max (DefaultMaxReasons when max is
// not positive).
func TopReasons(items []ReasoningItem, max int) []ReasoningItem {
	if max <= 0 {
		max = DefaultMaxReasons
	}

	var bands [4][]ReasoningItem

	for _, item := range items {
		msg := strings.ToLower(item.Message)

		switch item.Type {
		case ReasonWarning:
			switch {
			case strings.Contains(msg, "stockout") ||
				strings.Contains(msg, "stock out") ||
				strings.Contains(msg, "lead time") ||
				strings.Contains(msg, "lead-time") ||
				strings.Contains(msg, "must order"):
				bands[0] = append(bands[0], item)
			case strings.Contains(msg, "safety"):
				bands[1] = append(bands[1], item)
			default:
				bands[3] = append(bands[3], item)
			}
		case ReasonCalculation:
			if strings.Contains(msg, "lead time") ||
				strings.Contains(msg, "lead-time") ||
				strings.Contains(msg, "coverage") ||
				strings.Contains(msg, "days") {
				bands[2] = append(bands[2], item)
			}
		}
	}

	ranked := make([]ReasoningItem, 0, max)
	for _, band := range bands {
		for _, item := range band {
			if len(ranked) == max {
				return ranked
			}
			ranked = append(ranked, item)
		}
	}

	return ranked
}
