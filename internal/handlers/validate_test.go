package handlers

import (
	"testing"

	"jewel-backend/internal/models"
)

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name     string
		customer models.CustomerInfo
		wantErr  bool
	}{
		{
			name:     "valid minimal",
			customer: models.CustomerInfo{Name: "Ramesh Kumar", Mobile: "9876543210"},
			wantErr:  false,
		},
		{
			name: "valid with PAN and aadhaar",
			customer: models.CustomerInfo{
				Name: "Ramesh Kumar", Mobile: "9876543210",
				PAN: "ABCDE1234F", Aadhaar: "123456789012",
			},
			wantErr: false,
		},
		{
			name:     "missing name",
			customer: models.CustomerInfo{Mobile: "9876543210"},
			wantErr:  true,
		},
		{
			name:     "mobile too short",
			customer: models.CustomerInfo{Name: "Ramesh", Mobile: "98765"},
			wantErr:  true,
		},
		{
			name:     "mobile with letters",
			customer: models.CustomerInfo{Name: "Ramesh", Mobile: "98765abcde"},
			wantErr:  true,
		},
		{
			name:     "bad PAN format",
			customer: models.CustomerInfo{Name: "Ramesh", Mobile: "9876543210", PAN: "1234ABCDE5"},
			wantErr:  true,
		},
		{
			name:     "lowercase PAN rejected",
			customer: models.CustomerInfo{Name: "Ramesh", Mobile: "9876543210", PAN: "abcde1234f"},
			wantErr:  true,
		},
		{
			name:     "aadhaar wrong length",
			customer: models.CustomerInfo{Name: "Ramesh", Mobile: "9876543210", Aadhaar: "12345"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCustomerInfo(tt.customer)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCustomerInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
