package models

import "time"

// Customer represents a billing customer. Customers are found or created
// by mobile number at bill creation time.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"` // 10 digits
	Address   string    `json:"address"`
	DOB       *string   `json:"dob,omitempty"` // YYYY-MM-DD
	PAN       string    `json:"pan,omitempty"`
	Aadhaar   string    `json:"aadhaar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerInfo is the customer snapshot embedded on bills and exchanges.
// It is denormalized so historical records survive customer edits.
type CustomerInfo struct {
	Name    string  `json:"name"`
	Mobile  string  `json:"mobile"`
	Address string  `json:"address,omitempty"`
	DOB     *string `json:"dob,omitempty"`
	PAN     string  `json:"pan,omitempty"`
	Aadhaar string  `json:"aadhaar,omitempty"`
}
