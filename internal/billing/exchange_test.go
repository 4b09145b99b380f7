package billing

import (
	"testing"

	"jewel-backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestValueOldItemSilverScenario(t *testing.T) {
	// Silver 999, 20g at 75/g, wastage 2%, melting 50, shop deduction 3%:
	// 1500 -> 1455 -> 1425.90 -> 1375.90
	req := models.OldItemRequest{
		Description:      "Old Silver Anklet",
		MetalType:        models.MetalSilver,
		Purity:           "999",
		Weight:           20,
		WastageDeduction: fptr(2),
		MeltingCharge:    50,
	}

	v, err := ValueOldItem(req, 75, 3)
	if err != nil {
		t.Fatalf("ValueOldItem() error = %v", err)
	}

	if !floatClose(v.GrossValue, 1500) {
		t.Errorf("GrossValue = %v, want 1500", v.GrossValue)
	}
	if !floatClose(v.ExchangeValue, 1375.90) {
		t.Errorf("ExchangeValue = %v, want 1375.90", v.ExchangeValue)
	}
}

func TestValueOldItemStoredRateWins(t *testing.T) {
	req := models.OldItemRequest{Weight: 10, Rate: 80, WastageDeduction: fptr(0)}

	v, err := ValueOldItem(req, 75, 0)
	if err != nil {
		t.Fatalf("ValueOldItem() error = %v", err)
	}
	if !floatClose(v.ExchangeValue, 800) {
		t.Errorf("ExchangeValue = %v, want 800 (stored rate)", v.ExchangeValue)
	}
	if !floatClose(v.RatePerUnit, 80) {
		t.Errorf("RatePerUnit = %v, want 80", v.RatePerUnit)
	}
}

func TestValueOldItemDefaultWastage(t *testing.T) {
	req := models.OldItemRequest{Weight: 10}

	v, err := ValueOldItem(req, 100, 0)
	if err != nil {
		t.Fatalf("ValueOldItem() error = %v", err)
	}
	// 1000 with default 2% wastage
	if !floatClose(v.ExchangeValue, 980) {
		t.Errorf("ExchangeValue = %v, want 980 (default wastage)", v.ExchangeValue)
	}
	if !floatClose(v.WastageDeduction, DefaultWastagePercent) {
		t.Errorf("WastageDeduction = %v, want %v", v.WastageDeduction, DefaultWastagePercent)
	}
}

func TestValueOldItemMonotonicInDeductions(t *testing.T) {
	base := models.OldItemRequest{Weight: 15}

	prev := -1.0
	for _, wastage := range []float64{0, 1, 2, 5, 10, 50, 100} {
		req := base
		req.WastageDeduction = fptr(wastage)
		v, err := ValueOldItem(req, 75, 3)
		if err != nil {
			t.Fatalf("ValueOldItem() error = %v", err)
		}
		if prev >= 0 && v.ExchangeValue > prev {
			t.Errorf("exchange value increased with wastage %v: %v > %v", wastage, v.ExchangeValue, prev)
		}
		prev = v.ExchangeValue
	}

	prev = -1.0
	for _, melting := range []float64{0, 10, 100, 1000, 10000} {
		req := base
		req.WastageDeduction = fptr(2)
		req.MeltingCharge = melting
		v, err := ValueOldItem(req, 75, 3)
		if err != nil {
			t.Fatalf("ValueOldItem() error = %v", err)
		}
		if v.ExchangeValue < 0 {
			t.Errorf("exchange value went negative at melting %v: %v", melting, v.ExchangeValue)
		}
		if prev >= 0 && v.ExchangeValue > prev {
			t.Errorf("exchange value increased with melting %v", melting)
		}
		prev = v.ExchangeValue
	}
}

func TestValueOldItemClampedAtZero(t *testing.T) {
	// Melting charge larger than the metal value must not produce a debt
	req := models.OldItemRequest{Weight: 1, MeltingCharge: 500}

	v, err := ValueOldItem(req, 75, 3)
	if err != nil {
		t.Fatalf("ValueOldItem() error = %v", err)
	}
	if v.ExchangeValue != 0 {
		t.Errorf("ExchangeValue = %v, want clamp to 0", v.ExchangeValue)
	}
}

func TestValueOldItemNoShopDeduction(t *testing.T) {
	// Shop deduction disabled: direct wastage chain
	req := models.OldItemRequest{Weight: 20, WastageDeduction: fptr(2), MeltingCharge: 50}

	v, err := ValueOldItem(req, 75, 0)
	if err != nil {
		t.Fatalf("ValueOldItem() error = %v", err)
	}
	// 1500 * 0.98 - 50 = 1420
	if !floatClose(v.ExchangeValue, 1420) {
		t.Errorf("ExchangeValue = %v, want 1420", v.ExchangeValue)
	}
}

func TestValueOldItemRejectsZeroWeight(t *testing.T) {
	if _, err := ValueOldItem(models.OldItemRequest{Weight: 0}, 75, 3); err == nil {
		t.Fatal("ValueOldItem() accepted zero weight")
	}
}
