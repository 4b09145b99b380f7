package billing

import (
	"testing"

	"jewel-backend/internal/models"
)

func TestValueItemGold22KScenario(t *testing.T) {
	// Gold 22K, 10g at 6,000,000/kg: per-gram 6000 * 0.9167 = 5500.2
	book := testRateBook()
	perUnit, err := book.Resolve(models.MetalGold, "22K")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	req := models.BillItemRequest{
		Description:       "Gold Chain",
		MetalType:         models.MetalGold,
		Purity:            "22K",
		Weight:            10,
		MakingChargeType:  models.MakingPercentage,
		MakingChargeValue: 10,
	}

	v, err := ValueItem(req, perUnit, 3, 5, true)
	if err != nil {
		t.Fatalf("ValueItem() error = %v", err)
	}

	if !floatClose(v.MetalAmount, 55002) {
		t.Errorf("MetalAmount = %v, want 55002", v.MetalAmount)
	}
	if !floatClose(v.MakingChargeAmount, 5500.20) {
		t.Errorf("MakingChargeAmount = %v, want 5500.20", v.MakingChargeAmount)
	}
	if !floatClose(v.GSTOnMetal, 1650.06) {
		t.Errorf("GSTOnMetal = %v, want 1650.06", v.GSTOnMetal)
	}
	if !floatClose(v.MetalCGST, 825.03) || !floatClose(v.MetalSGST, 825.03) {
		t.Errorf("metal split = %v/%v, want 825.03 each", v.MetalCGST, v.MetalSGST)
	}
	if !floatClose(v.GSTOnMaking, 275.01) {
		t.Errorf("GSTOnMaking = %v, want 275.01", v.GSTOnMaking)
	}
	if !floatClose(v.MakingCGST, 137.505) || !floatClose(v.MakingSGST, 137.505) {
		t.Errorf("making split = %v/%v, want 137.505 each", v.MakingCGST, v.MakingSGST)
	}
	if !floatClose(v.LineTotal, 62427.27) {
		t.Errorf("LineTotal = %v, want 62427.27", v.LineTotal)
	}
}

func TestValueItemLineTotalIdentity(t *testing.T) {
	tests := []struct {
		name       string
		req        models.BillItemRequest
		rate       float64
		intraState bool
	}{
		{
			name: "percentage making intra-state",
			req: models.BillItemRequest{
				Weight: 12.5, MakingChargeType: models.MakingPercentage, MakingChargeValue: 8,
			},
			rate: 5500, intraState: true,
		},
		{
			name: "per-gram making inter-state",
			req: models.BillItemRequest{
				Weight: 7.2, MakingChargeType: models.MakingPerGram, MakingChargeValue: 450,
			},
			rate: 74.5, intraState: false,
		},
		{
			name: "fixed making with discount",
			req: models.BillItemRequest{
				Weight: 3, MakingChargeType: models.MakingFixed, MakingChargeValue: 2000,
				MakingChargeDiscount: 25,
			},
			rate: 6000, intraState: true,
		},
		{
			name: "gross minus less weight",
			req: models.BillItemRequest{
				GrossWeight: 15, LessWeight: 2.5,
				MakingChargeType: models.MakingPercentage, MakingChargeValue: 12,
			},
			rate: 5500, intraState: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueItem(tt.req, tt.rate, 3, 5, tt.intraState)
			if err != nil {
				t.Fatalf("ValueItem() error = %v", err)
			}

			sum := v.MetalAmount + v.MakingChargeAmount + v.GSTOnMaking + v.GSTOnMetal
			if !floatClose(v.LineTotal, sum) {
				t.Errorf("LineTotal = %v, want exact component sum %v", v.LineTotal, sum)
			}

			if tt.intraState {
				if !floatClose(v.MetalCGST, v.GSTOnMetal/2) || !floatClose(v.MetalSGST, v.GSTOnMetal/2) {
					t.Errorf("intra-state metal GST not halved: cgst=%v sgst=%v total=%v", v.MetalCGST, v.MetalSGST, v.GSTOnMetal)
				}
				if v.MetalIGST != 0 || v.MakingIGST != 0 {
					t.Errorf("intra-state bill must have zero IGST")
				}
			} else {
				if !floatClose(v.MetalIGST, v.GSTOnMetal) || !floatClose(v.MakingIGST, v.GSTOnMaking) {
					t.Errorf("inter-state GST must be full IGST")
				}
				if v.MetalCGST != 0 || v.MetalSGST != 0 {
					t.Errorf("inter-state bill must have zero CGST/SGST")
				}
			}
		})
	}
}

func TestValueItemMakingChargeTypes(t *testing.T) {
	base := models.BillItemRequest{Weight: 10}

	perc := base
	perc.MakingChargeType = models.MakingPercentage
	perc.MakingChargeValue = 10
	v, _ := ValueItem(perc, 100, 0, 0, true)
	if !floatClose(v.MakingChargeAmount, 100) { // 1000 * 10%
		t.Errorf("percentage making = %v, want 100", v.MakingChargeAmount)
	}

	grm := base
	grm.MakingChargeType = models.MakingPerGram
	grm.MakingChargeValue = 55
	v, _ = ValueItem(grm, 100, 0, 0, true)
	if !floatClose(v.MakingChargeAmount, 550) { // 55/g * 10g
		t.Errorf("per-gram making = %v, want 550", v.MakingChargeAmount)
	}

	fixed := base
	fixed.MakingChargeType = models.MakingFixed
	fixed.MakingChargeValue = 799
	v, _ = ValueItem(fixed, 100, 0, 0, true)
	if !floatClose(v.MakingChargeAmount, 799) {
		t.Errorf("fixed making = %v, want 799", v.MakingChargeAmount)
	}
}

func TestValueItemQuantityDoesNotScaleAmount(t *testing.T) {
	// Pricing is by weight; quantity is informational only
	one := models.BillItemRequest{Weight: 10, Quantity: 1, MakingChargeType: models.MakingPercentage, MakingChargeValue: 10}
	five := one
	five.Quantity = 5

	v1, _ := ValueItem(one, 6000, 3, 5, true)
	v5, _ := ValueItem(five, 6000, 3, 5, true)
	if !floatClose(v1.LineTotal, v5.LineTotal) {
		t.Errorf("quantity scaled the amount: %v vs %v", v1.LineTotal, v5.LineTotal)
	}
}

func TestNetWeight(t *testing.T) {
	tests := []struct {
		name    string
		req     models.BillItemRequest
		want    float64
		wantErr bool
	}{
		{"explicit weight", models.BillItemRequest{Weight: 8.5}, 8.5, false},
		{"gross minus less", models.BillItemRequest{GrossWeight: 10, LessWeight: 1.5}, 8.5, false},
		{"gross without less", models.BillItemRequest{GrossWeight: 10}, 10, false},
		{"zero weight rejected", models.BillItemRequest{}, 0, true},
		{"less exceeding gross rejected", models.BillItemRequest{GrossWeight: 2, LessWeight: 3}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetWeight(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NetWeight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !floatClose(got, tt.want) {
				t.Errorf("NetWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}
