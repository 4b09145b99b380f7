package billing

import (
	"jewel-backend/internal/models"
)

// gramsPerKg converts kg-quoted rates to the per-gram base unit
const gramsPerKg = 1000.0

// goldPurityMultiplier maps gold karat grades to the fraction of the 24K
// rate they are priced at. Unlisted grades (24K, tunch-priced) pass through.
var goldPurityMultiplier = map[string]float64{
	"22K": 0.9167,
	"18K": 0.75,
	"14K": 0.5833,
}

// RateBook is a request-scoped snapshot of active metal rates, built once
// from the rate store so the whole calculation prices off a single moment.
type RateBook struct {
	rates map[string]models.MetalRate
}

// NewRateBook builds a rate book from the active rate records. When the
// store holds multiple records per metal the caller passes the latest one.
func NewRateBook(rates []models.MetalRate) *RateBook {
	book := &RateBook{rates: make(map[string]models.MetalRate, len(rates))}
	for _, r := range rates {
		book.rates[r.MetalType] = r
	}
	return book
}

// Rate returns the raw rate record for a metal type
func (b *RateBook) Rate(metalType string) (models.MetalRate, bool) {
	r, ok := b.rates[metalType]
	return r, ok
}

// Resolve normalizes the active rate for metalType to a per-base-unit price
// (per gram for kg-quoted metals, per carat or per piece otherwise) and
// applies the gold purity multiplier. A missing metal aborts the whole
// calculation with RateNotFoundError; a purity absent from the rate record's
// purity list aborts with InvalidPurityError.
func (b *RateBook) Resolve(metalType, purity string) (float64, error) {
	rate, ok := b.rates[metalType]
	if !ok {
		return 0, &RateNotFoundError{MetalType: metalType}
	}

	if purity != "" && len(rate.PurityLevels) > 0 && !containsPurity(rate.PurityLevels, purity) {
		return 0, &InvalidPurityError{MetalType: metalType, Purity: purity}
	}

	perUnit := rate.RateValue
	if rate.Unit == models.UnitKg {
		perUnit = rate.RateValue / gramsPerKg
	}

	if metalType == models.MetalGold {
		if mult, ok := goldPurityMultiplier[purity]; ok {
			perUnit *= mult
		}
	}

	return perUnit, nil
}

func containsPurity(levels []string, purity string) bool {
	for _, l := range levels {
		if l == purity {
			return true
		}
	}
	return false
}
