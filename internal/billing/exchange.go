package billing

import (
	"fmt"

	"jewel-backend/internal/models"
)

// DefaultWastagePercent applies when a surrendered item does not specify a
// wastage deduction.
const DefaultWastagePercent = 2.0

// OldItemValuation holds the computed payout for one surrendered item
type OldItemValuation struct {
	RatePerUnit      float64
	WastageDeduction float64
	GrossValue       float64
	ExchangeValue    float64 // clamped >= 0
}

// ValueOldItem computes the payout credit for a surrendered old item.
//
// The deduction chain is: gross metal value, then the shop-policy deduction
// (shopDeductionPct, configured per shop), then the per-item wastage
// deduction, then the melting charge. The result is clamped at zero so a
// melting charge can never turn the credit into a debt.
//
// A stored rate on the item wins over the live rate so pre-agreed exchange
// valuations survive rate changes.
func ValueOldItem(req models.OldItemRequest, liveRate, shopDeductionPct float64) (OldItemValuation, error) {
	if req.Weight <= 0 {
		return OldItemValuation{}, fmt.Errorf("old item %q: weight must be positive", req.Description)
	}

	rate := liveRate
	if req.Rate > 0 {
		rate = req.Rate
	}

	wastage := DefaultWastagePercent
	if req.WastageDeduction != nil {
		wastage = *req.WastageDeduction
	}

	gross := req.Weight * rate

	value := gross
	if shopDeductionPct > 0 {
		value -= value * shopDeductionPct / 100
	}
	if wastage > 0 {
		value = value * (100 - wastage) / 100
	}
	value -= req.MeltingCharge

	if value < 0 {
		value = 0
	}

	return OldItemValuation{
		RatePerUnit:      rate,
		WastageDeduction: wastage,
		GrossValue:       gross,
		ExchangeValue:    value,
	}, nil
}
