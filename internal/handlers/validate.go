package handlers

import (
	"fmt"
	"regexp"

	"jewel-backend/internal/models"
)

var (
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
	panRe     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarRe = regexp.MustCompile(`^[0-9]{12}$`)
)

// validateCustomerInfo enforces ID formats at the API boundary. The billing
// engine itself never sees malformed customer data.
func validateCustomerInfo(c models.CustomerInfo) error {
	if c.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if !mobileRe.MatchString(c.Mobile) {
		return fmt.Errorf("customer mobile must be 10 digits")
	}
	if c.PAN != "" && !panRe.MatchString(c.PAN) {
		return fmt.Errorf("invalid PAN format")
	}
	if c.Aadhaar != "" && !aadhaarRe.MatchString(c.Aadhaar) {
		return fmt.Errorf("aadhaar must be 12 digits")
	}
	return nil
}
