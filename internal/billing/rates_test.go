package billing

import (
	"errors"
	"math"
	"testing"

	"jewel-backend/internal/models"
)

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func testRateBook() *RateBook {
	return NewRateBook([]models.MetalRate{
		{
			MetalType:    models.MetalGold,
			RateValue:    6000000, // per kg
			Unit:         models.UnitKg,
			PurityLevels: []string{"24K", "22K", "18K", "14K"},
			GSTRate:      3,
			Active:       true,
		},
		{
			MetalType:    models.MetalSilver,
			RateValue:    75000, // per kg -> 75/g
			Unit:         models.UnitKg,
			PurityLevels: []string{"999", "925"},
			GSTRate:      3,
			Active:       true,
		},
		{
			MetalType: models.MetalDiamond,
			RateValue: 50000, // per carat
			Unit:      models.UnitCarat,
			GSTRate:   3,
			Active:    true,
		},
	})
}

func TestResolvePerBaseUnit(t *testing.T) {
	book := testRateBook()

	tests := []struct {
		name      string
		metalType string
		purity    string
		want      float64
	}{
		{"gold 24K per gram", models.MetalGold, "24K", 6000},
		{"gold 22K applies multiplier", models.MetalGold, "22K", 6000 * 0.9167},
		{"gold 18K applies multiplier", models.MetalGold, "18K", 6000 * 0.75},
		{"gold 14K applies multiplier", models.MetalGold, "14K", 6000 * 0.5833},
		{"silver kg to gram", models.MetalSilver, "999", 75},
		{"silver 925 no gold multiplier", models.MetalSilver, "925", 75},
		{"carat unit passes through", models.MetalDiamond, "", 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := book.Resolve(tt.metalType, tt.purity)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !floatClose(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveRateNotFound(t *testing.T) {
	book := testRateBook()

	_, err := book.Resolve(models.MetalPlatinum, "950")
	var rnf *RateNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("Resolve() error = %v, want RateNotFoundError", err)
	}
	if rnf.MetalType != models.MetalPlatinum {
		t.Errorf("RateNotFoundError.MetalType = %q, want %q", rnf.MetalType, models.MetalPlatinum)
	}
}

func TestResolveInvalidPurity(t *testing.T) {
	book := testRateBook()

	_, err := book.Resolve(models.MetalGold, "20K")
	var ip *InvalidPurityError
	if !errors.As(err, &ip) {
		t.Fatalf("Resolve() error = %v, want InvalidPurityError", err)
	}
	if !IsRateError(err) {
		t.Errorf("IsRateError() = false, want true")
	}
}

func TestResolveEmptyPurityAllowed(t *testing.T) {
	book := testRateBook()

	// Rate record without a purity list accepts any purity string
	if _, err := book.Resolve(models.MetalDiamond, "VVS1"); err != nil {
		t.Errorf("Resolve() error = %v, want nil", err)
	}
	// Empty purity never fails the list check
	if _, err := book.Resolve(models.MetalGold, ""); err != nil {
		t.Errorf("Resolve() error = %v, want nil", err)
	}
}
