package billing

import (
	"fmt"

	"jewel-backend/internal/models"
)

// ItemValuation holds the computed amounts for one new line item.
// Values are kept unrounded; rounding happens once at bill assembly.
type ItemValuation struct {
	NetWeight          float64
	RatePerUnit        float64
	MetalAmount        float64
	MakingChargeAmount float64
	GSTOnMetal         float64 // total levy before the intra/inter split
	GSTOnMaking        float64
	MetalCGST          float64
	MetalSGST          float64
	MetalIGST          float64
	MakingCGST         float64
	MakingSGST         float64
	MakingIGST         float64
	LineTotal          float64
}

// NetWeight resolves the billable weight of an item: grossWeight−lessWeight
// when both are supplied, else the explicit weight. The result must be
// positive for valuation.
func NetWeight(req models.BillItemRequest) (float64, error) {
	w := req.Weight
	if req.GrossWeight > 0 {
		w = req.GrossWeight - req.LessWeight
	}
	if w <= 0 {
		return 0, fmt.Errorf("item %q: net weight must be positive", req.Description)
	}
	return w, nil
}

// ValueItem computes metal amount, making charge, GST split and line total
// for one item at the given per-base-unit rate.
//
// Quantity is recorded on the item but deliberately does not scale the
// amount: pricing is by weight, quantity is informational.
func ValueItem(req models.BillItemRequest, perUnitRate, gstOnMetalPct, gstOnMakingPct float64, intraState bool) (ItemValuation, error) {
	netWeight, err := NetWeight(req)
	if err != nil {
		return ItemValuation{}, err
	}

	metalAmount := perUnitRate * netWeight

	var making float64
	switch req.MakingChargeType {
	case models.MakingPercentage:
		making = metalAmount * req.MakingChargeValue / 100
	case models.MakingPerGram:
		making = req.MakingChargeValue * netWeight
	default: // fixed
		making = req.MakingChargeValue
	}

	if req.MakingChargeDiscount > 0 {
		making -= making * req.MakingChargeDiscount / 100
	}

	gstOnMaking := making * gstOnMakingPct / 100
	gstOnMetal := metalAmount * gstOnMetalPct / 100

	v := ItemValuation{
		NetWeight:          netWeight,
		RatePerUnit:        perUnitRate,
		MetalAmount:        metalAmount,
		MakingChargeAmount: making,
		GSTOnMetal:         gstOnMetal,
		GSTOnMaking:        gstOnMaking,
		LineTotal:          metalAmount + making + gstOnMaking + gstOnMetal,
	}

	if intraState {
		v.MetalCGST = gstOnMetal / 2
		v.MetalSGST = gstOnMetal / 2
		v.MakingCGST = gstOnMaking / 2
		v.MakingSGST = gstOnMaking / 2
	} else {
		v.MetalIGST = gstOnMetal
		v.MakingIGST = gstOnMaking
	}

	return v, nil
}
