package models

import "time"

// Exchange lifecycle states
const (
	ExchangeCalculated      = "calculated"
	ExchangeConvertedToBill = "converted_to_bill"
	ExchangeCancelled       = "cancelled"
)

// ExchangeOldItem is a surrendered item valued on a standalone exchange
type ExchangeOldItem struct {
	ID               int     `json:"id"`
	ExchangeID       int     `json:"exchange_id"`
	Description      string  `json:"description"`
	MetalType        string  `json:"metal_type"`
	Purity           string  `json:"purity"`
	Weight           float64 `json:"weight"`
	RatePerUnit      float64 `json:"rate_per_unit"`
	WastageDeduction float64 `json:"wastage_deduction"`
	MeltingCharge    float64 `json:"melting_charge"`
	ExchangeValue    float64 `json:"exchange_value"`
}

// ExchangeNewItem is a prospective purchase valued on a standalone exchange.
// Rates are snapshotted; the record is never revalued after creation.
type ExchangeNewItem struct {
	ID                   int     `json:"id"`
	ExchangeID           int     `json:"exchange_id"`
	Description          string  `json:"description"`
	MetalType            string  `json:"metal_type"`
	Purity               string  `json:"purity"`
	Unit                 string  `json:"unit"`
	Quantity             int     `json:"quantity"`
	GrossWeight          float64 `json:"gross_weight"`
	LessWeight           float64 `json:"less_weight"`
	NetWeight            float64 `json:"net_weight"`
	RatePerUnit          float64 `json:"rate_per_unit"`
	MakingChargeType     string  `json:"making_charge_type"`
	MakingChargeValue    float64 `json:"making_charge_value"`
	MakingChargeDiscount float64 `json:"making_charge_discount"`
	HUID                 string  `json:"huid,omitempty"`
	Tunch                string  `json:"tunch,omitempty"`
	ItemValue            float64 `json:"item_value"`
}

// ExchangeTotals summarizes an exchange calculation
type ExchangeTotals struct {
	OldItemsTotal     float64 `json:"old_items_total"`
	NewItemsTotal     float64 `json:"new_items_total"`
	BalancePayable    float64 `json:"balance_payable"`
	BalanceRefundable float64 `json:"balance_refundable"`
}

// Exchange is a standalone pre-bill exchange calculation. Once a bill
// references it, only Status and LinkedBillNumber may change.
type Exchange struct {
	ID               int               `json:"id"`
	ExchangeNumber   string            `json:"exchange_number"`
	FallbackNumber   bool              `json:"fallback_number"` // numbered via timestamp fallback
	ExchangeDate     time.Time         `json:"exchange_date"`
	Customer         CustomerInfo      `json:"customer"`
	CustomerID       *int              `json:"customer_id"`
	OldItems         []ExchangeOldItem `json:"old_items"`
	NewItems         []ExchangeNewItem `json:"new_items"`
	Totals           ExchangeTotals    `json:"totals"`
	ExchangeStatus   string            `json:"status"` // calculated, converted_to_bill, cancelled
	LinkedBillNumber string            `json:"linked_bill_number,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Status           string            `json:"lifecycle_status"` // active or archived
	CreatedBy        *int              `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewItemRequest is one prospective purchase on a create-exchange request
type NewItemRequest struct {
	Description          string  `json:"description"`
	MetalType            string  `json:"metal_type"`
	Purity               string  `json:"purity"`
	Unit                 string  `json:"unit"`
	Quantity             int     `json:"quantity"`
	Weight               float64 `json:"weight"`
	GrossWeight          float64 `json:"gross_weight"`
	LessWeight           float64 `json:"less_weight"`
	MakingChargeType     string  `json:"making_charge_type"`
	MakingChargeValue    float64 `json:"making_charge_value"`
	MakingChargeDiscount float64 `json:"making_charge_discount"`
	HUID                 string  `json:"huid"`
	Tunch                string  `json:"tunch"`
}

// CreateExchangeRequest represents the request body for an exchange calculation
type CreateExchangeRequest struct {
	Customer CustomerInfo     `json:"customer"`
	OldItems []OldItemRequest `json:"old_items"`
	NewItems []NewItemRequest `json:"new_items"`
	Notes    string           `json:"notes"`
}

// ExchangeStats holds aggregate counters for the exchange dashboard
type ExchangeStats struct {
	TotalExchanges int     `json:"total_exchanges"`
	MonthExchanges int     `json:"month_exchanges"`
	TotalValue     float64 `json:"total_value"`
	MonthlyValue   float64 `json:"monthly_value"`
}
