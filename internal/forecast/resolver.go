package forecast

import "fmt"

// Resolve merges account-wide adjustments with a product's own adjustment
// records into the effective set for that product.
//
// For each account adjustment: an opt-out record drops it, an override
// record replaces its multiplier (date range and effect unchanged), and
// product adjustments with no account reference pass through as-is.
//
// Malformed data (both an opt-out and an override for the same account
// adjustment id) never fails resolution: the opt-out wins deterministically
// and an Inconsistency is returned so callers can log it. Output order is
// unspecified.
func Resolve(account []AccountAdjustment, product []ProductAdjustment) ([]EffectiveAdjustment, []Inconsistency) {
	optOuts := make(map[string]bool)
	overrides := make(map[string]ProductAdjustment)
	var inconsistencies []Inconsistency

	for _, pa := range product {
		if pa.AccountAdjustmentID == "" {
			continue
		}

		if pa.IsOptedOut {
			if pa.Multiplier != nil {
				// One record claiming to be both opt-out and override.
				inconsistencies = append(inconsistencies, Inconsistency{
					ProductID:           pa.ProductID,
					AccountAdjustmentID: pa.AccountAdjustmentID,
					Detail:              fmt.Sprintf("adjustment %s is flagged opted-out but also carries an override multiplier; opt-out wins", pa.ID),
				})
			}
			if _, exists := overrides[pa.AccountAdjustmentID]; exists {
				inconsistencies = append(inconsistencies, Inconsistency{
					ProductID:           pa.ProductID,
					AccountAdjustmentID: pa.AccountAdjustmentID,
					Detail:              "both an override and an opt-out record exist for the same account adjustment; opt-out wins",
				})
				delete(overrides, pa.AccountAdjustmentID)
			}
			optOuts[pa.AccountAdjustmentID] = true
			continue
		}

		if pa.Multiplier != nil {
			if optOuts[pa.AccountAdjustmentID] {
				inconsistencies = append(inconsistencies, Inconsistency{
					ProductID:           pa.ProductID,
					AccountAdjustmentID: pa.AccountAdjustmentID,
					Detail:              "both an override and an opt-out record exist for the same account adjustment; opt-out wins",
				})
				continue
			}
			overrides[pa.AccountAdjustmentID] = pa
		}
	}

	effective := make([]EffectiveAdjustment, 0, len(account)+len(product))

	for _, aa := range account {
		if optOuts[aa.ID] {
			continue
		}

		ea := EffectiveAdjustment{
			ID:          aa.ID,
			Name:        aa.Name,
			StartDate:   aa.StartDate,
			EndDate:     aa.EndDate,
			IsRecurring: aa.IsRecurring,
			Effect:      aa.Effect,
			Source:      "account",
		}
		if aa.Multiplier != nil {
			ea.Multiplier = *aa.Multiplier
		}
		if ov, ok := overrides[aa.ID]; ok {
			ea.Multiplier = *ov.Multiplier
			ea.Overridden = true
		}

		effective = append(effective, ea)
	}

	for _, pa := range product {
		if pa.AccountAdjustmentID != "" {
			continue
		}

		ea := EffectiveAdjustment{
			ID:          pa.ID,
			Name:        pa.Name,
			StartDate:   pa.StartDate,
			EndDate:     pa.EndDate,
			IsRecurring: pa.IsRecurring,
			Effect:      pa.Effect,
			Source:      "product",
		}
		if pa.Multiplier != nil {
			ea.Multiplier = *pa.Multiplier
		}

		effective = append(effective, ea)
	}

	return effective, inconsistencies
}
