package models

import "time"

// Record lifecycle states. Archived records are excluded from listings and
// reports; the filter is applied centrally in the repositories.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Payment statuses for a bill
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentPartial = "partial"
)

// Making charge types on a line item
const (
	MakingPercentage = "percentage"
	MakingFixed      = "fixed"
	MakingPerGram    = "GRM"
)

// BillItem is a valued line item embedded in a bill. Derived amounts are
// computed by the billing engine at creation time and never recomputed.
type BillItem struct {
	ID                   int     `json:"id"`
	BillID               int     `json:"bill_id"`
	Description          string  `json:"description"`
	MetalType            string  `json:"metal_type"`
	Purity               string  `json:"purity"`
	Unit                 string  `json:"unit"` // GM or PCS
	Quantity             int     `json:"quantity"`
	GrossWeight          float64 `json:"gross_weight"`
	LessWeight           float64 `json:"less_weight"`
	NetWeight            float64 `json:"net_weight"`
	RatePerUnit          float64 `json:"rate_per_unit"` // per gram/carat/piece, purity applied
	MakingChargeType     string  `json:"making_charge_type"`
	MakingChargeValue    float64 `json:"making_charge_value"`
	MakingChargeDiscount float64 `json:"making_charge_discount"` // percent
	MakingChargeAmount   float64 `json:"making_charge_amount"`
	MetalAmount          float64 `json:"metal_amount"`
	HUIDCharge           float64 `json:"huid_charge"`
	HUID                 string  `json:"huid,omitempty"`
	Tunch                string  `json:"tunch,omitempty"`
	GSTOnMetalCGST       float64 `json:"gst_on_metal_cgst"`
	GSTOnMetalSGST       float64 `json:"gst_on_metal_sgst"`
	GSTOnMetalIGST       float64 `json:"gst_on_metal_igst"`
	GSTOnMakingCGST      float64 `json:"gst_on_making_cgst"`
	GSTOnMakingSGST      float64 `json:"gst_on_making_sgst"`
	GSTOnMakingIGST      float64 `json:"gst_on_making_igst"`
	LineTotal            float64 `json:"line_total"`
}

// BillOldItem is an exchange-surrendered item credited against a bill.
// Rates are snapshotted at calculation time.
type BillOldItem struct {
	ID               int     `json:"id"`
	BillID           int     `json:"bill_id"`
	Description      string  `json:"description"`
	MetalType        string  `json:"metal_type"`
	Purity           string  `json:"purity"`
	Weight           float64 `json:"weight"`
	RatePerUnit      float64 `json:"rate_per_unit"`
	WastageDeduction float64 `json:"wastage_deduction"` // percent
	MeltingCharge    float64 `json:"melting_charge"`
	ExchangeValue    float64 `json:"exchange_value"` // clamped >= 0
}

// GSTBreakdown holds bill-level GST totals split by levy
type GSTBreakdown struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// ExchangeDetails summarizes the old-item credit applied to a bill
type ExchangeDetails struct {
	HasExchange       bool    `json:"has_exchange"`
	OldItemsTotal     float64 `json:"old_items_total"`
	NewItemsTotal     float64 `json:"new_items_total"`
	BalancePayable    float64 `json:"balance_payable"`
	BalanceRefundable float64 `json:"balance_refundable"`
}

// Bill is a finalized invoice. Core fields are immutable after creation;
// only payment status and lifecycle status may change.
type Bill struct {
	ID              int             `json:"id"`
	BillNumber      string          `json:"bill_number"`
	BillDate        time.Time       `json:"bill_date"`
	Customer        CustomerInfo    `json:"customer"`
	CustomerID      *int            `json:"customer_id"`
	Items           []BillItem      `json:"items"`
	OldItems        []BillOldItem   `json:"old_items,omitempty"`
	SubTotal        float64         `json:"sub_total"` // metal + making
	DiscountAmount  float64         `json:"discount_amount"`
	DiscountType    string          `json:"discount_type"` // amount or percentage
	GSTBreakdown    GSTBreakdown    `json:"gst_breakdown"`
	GSTTotal        float64         `json:"gst_total"`
	HUIDCharges     float64         `json:"huid_charges"`
	Exchange        ExchangeDetails `json:"exchange_details"`
	GrandTotal      float64         `json:"grand_total"`
	AmountInWords   string          `json:"amount_in_words"`
	IsIntraState    bool            `json:"is_intra_state"`
	PaymentMode     string          `json:"payment_mode"`
	PaymentStatus   string          `json:"payment_status"`
	PaidAmount      float64         `json:"paid_amount"`
	DueAmount       float64         `json:"due_amount"`
	Status          string          `json:"status"` // active or archived
	CreatedBy       *int            `json:"created_by"`
	CreatedByName   string          `json:"created_by_name,omitempty"`
	FallbackNumber  bool            `json:"fallback_number"` // numbered via timestamp fallback
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BillPaymentLog is one audit trail entry for a payment status change
type BillPaymentLog struct {
	ID             int       `json:"id"`
	BillID         int       `json:"bill_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	PaymentMode    string    `json:"payment_mode"`
	Amount         float64   `json:"amount"`
	Remarks        string    `json:"remarks"`
	UpdatedBy      *int      `json:"updated_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// BillItemRequest is one line item of a create-bill request
type BillItemRequest struct {
	Description          string   `json:"description"`
	MetalType            string   `json:"metal_type"`
	Purity               string   `json:"purity"`
	Unit                 string   `json:"unit"`
	Quantity             int      `json:"quantity"`
	Weight               float64  `json:"weight"`
	GrossWeight          float64  `json:"gross_weight"`
	LessWeight           float64  `json:"less_weight"`
	MakingChargeType     string   `json:"making_charge_type"`
	MakingChargeValue    float64  `json:"making_charge_value"`
	MakingChargeDiscount float64  `json:"making_charge_discount"`
	HUIDCharge           float64  `json:"huid_charge"`
	HUID                 string   `json:"huid"`
	Tunch                string   `json:"tunch"`
}

// OldItemRequest is one surrendered item of a create-bill or exchange request
type OldItemRequest struct {
	Description      string   `json:"description"`
	MetalType        string   `json:"metal_type"`
	Purity           string   `json:"purity"`
	Weight           float64  `json:"weight"`
	Rate             float64  `json:"rate"` // optional stored rate, wins over live
	WastageDeduction *float64 `json:"wastage_deduction"`
	MeltingCharge    float64  `json:"melting_charge"`
}

// CreateBillRequest represents the request body for creating a bill
type CreateBillRequest struct {
	Customer      CustomerInfo      `json:"customer"`
	Items         []BillItemRequest `json:"items"`
	ExchangeItems []OldItemRequest  `json:"exchange_items"`
	Discount      float64           `json:"discount"`
	DiscountType  string            `json:"discount_type"`
	IsIntraState  *bool             `json:"is_intra_state"`
	GSTOnMetal    *float64          `json:"gst_on_metal"`
	GSTOnMaking   *float64          `json:"gst_on_making"`
	HUIDCharges   float64           `json:"huid_charges"`
	PaymentMode   string            `json:"payment_mode"`
	PaymentStatus string            `json:"payment_status"`
	PaidAmount    float64           `json:"paid_amount"`
	ExchangeID    *int              `json:"exchange_id"` // link a pre-calculated exchange
}

// UpdatePaymentRequest represents a payment status transition on a bill
type UpdatePaymentRequest struct {
	PaymentStatus string  `json:"payment_status"`
	PaymentMode   string  `json:"payment_mode"`
	Amount        float64 `json:"amount"`
	Remarks       string  `json:"remarks"`
}

// QRPayload is the machine-readable summary embedded in the bill QR code.
// Rendering the image is a thin wrapper over this payload.
type QRPayload struct {
	Shop         string  `json:"shop"`
	BillNumber   string  `json:"billNumber"`
	CustomerName string  `json:"customerName"`
	TotalAmount  float64 `json:"totalAmount"`
	Date         string  `json:"date"`
	GSTType      string  `json:"gstType"` // CGST+SGST or IGST
	GSTNumber    string  `json:"gstNumber"`
}
