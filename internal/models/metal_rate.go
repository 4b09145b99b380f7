package models

import "time"

// Metal types supported for pricing
const (
	MetalGold     = "Gold"
	MetalSilver   = "Silver"
	MetalDiamond  = "Diamond"
	MetalPlatinum = "Platinum"
	MetalAntique  = "Antique/Polki"
	MetalOthers   = "Others"
)

// Rate units as stored on a rate record
const (
	UnitKg    = "kg"
	UnitCarat = "carat"
	UnitPiece = "piece"
)

// MetalRate represents a daily rate record for one metal type.
// Historical records are kept; the latest active record per metal wins.
type MetalRate struct {
	ID                   int       `json:"id"`
	MetalType            string    `json:"metal_type"`
	RateValue            float64   `json:"rate_value"` // currency per Unit
	Unit                 string    `json:"unit"`       // kg, carat or piece
	PurityLevels         []string  `json:"purity_levels"`
	MakingChargesDefault float64   `json:"making_charges_default"`
	MakingChargesType    string    `json:"making_charges_type"` // percentage or fixed
	GSTRate              float64   `json:"gst_rate"`            // percent
	Active               bool      `json:"active"`
	UpdatedBy            *int      `json:"updated_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpdateRateRequest represents the request body for publishing a new rate
type UpdateRateRequest struct {
	MetalType            string   `json:"metal_type"`
	RateValue            float64  `json:"rate_value"`
	Unit                 string   `json:"unit"`
	PurityLevels         []string `json:"purity_levels"`
	MakingChargesDefault float64  `json:"making_charges_default"`
	MakingChargesType    string   `json:"making_charges_type"`
	GSTRate              float64  `json:"gst_rate"`
}

// ValidMetalType reports whether s is one of the supported metal types
func ValidMetalType(s string) bool {
	switch s {
	case MetalGold, MetalSilver, MetalDiamond, MetalPlatinum, MetalAntique, MetalOthers:
		return true
	}
	return false
}

// ValidRateUnit reports whether s is a supported rate unit
func ValidRateUnit(s string) bool {
	switch s {
	case UnitKg, UnitCarat, UnitPiece:
		return true
	}
	return false
}
