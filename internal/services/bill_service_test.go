package services

import (
	"testing"

	"jewel-backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func validBillRequest() models.CreateBillRequest {
	return models.CreateBillRequest{
		Customer: models.CustomerInfo{Name: "Ravi Kumar", Mobile: "9876543210"},
		Items: []models.BillItemRequest{
			{
				MetalType:         models.MetalGold,
				Purity:            "22K",
				Weight:            10,
				MakingChargeType:  models.MakingPercentage,
				MakingChargeValue: 10,
			},
		},
	}
}

func TestValidateBillRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CreateBillRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(r *models.CreateBillRequest) {},
			wantErr: false,
		},
		{
			name: "making charge discount over 100",
			mutate: func(r *models.CreateBillRequest) {
				r.Items[0].MakingChargeDiscount = 150
			},
			wantErr: true,
		},
		{
			name: "negative making charge discount",
			mutate: func(r *models.CreateBillRequest) {
				r.Items[0].MakingChargeDiscount = -5
			},
			wantErr: true,
		},
		{
			name: "making charge discount at 100 allowed",
			mutate: func(r *models.CreateBillRequest) {
				r.Items[0].MakingChargeDiscount = 100
			},
			wantErr: false,
		},
		{
			name: "wastage deduction over 100",
			mutate: func(r *models.CreateBillRequest) {
				r.ExchangeItems = []models.OldItemRequest{
					{MetalType: models.MetalGold, Purity: "22K", Weight: 5, WastageDeduction: fptr(150)},
				}
			},
			wantErr: true,
		},
		{
			name: "negative wastage deduction",
			mutate: func(r *models.CreateBillRequest) {
				r.ExchangeItems = []models.OldItemRequest{
					{MetalType: models.MetalGold, Purity: "22K", Weight: 5, WastageDeduction: fptr(-2)},
				}
			},
			wantErr: true,
		},
		{
			name: "old item with unknown metal type",
			mutate: func(r *models.CreateBillRequest) {
				r.ExchangeItems = []models.OldItemRequest{
					{MetalType: "copper", Purity: "999", Weight: 5},
				}
			},
			wantErr: true,
		},
		{
			name: "valid exchange item",
			mutate: func(r *models.CreateBillRequest) {
				r.ExchangeItems = []models.OldItemRequest{
					{MetalType: models.MetalSilver, Purity: "999", Weight: 20, WastageDeduction: fptr(2)},
				}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBillRequest()
			tt.mutate(&req)
			err := validateBillRequest(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBillRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExchangeRequest(t *testing.T) {
	valid := func() models.CreateExchangeRequest {
		return models.CreateExchangeRequest{
			Customer: models.CustomerInfo{Name: "Meena Devi", Mobile: "9876501234"},
			OldItems: []models.OldItemRequest{
				{MetalType: models.MetalSilver, Purity: "999", Weight: 20},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.CreateExchangeRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(r *models.CreateExchangeRequest) {},
			wantErr: false,
		},
		{
			name: "old item wastage over 100",
			mutate: func(r *models.CreateExchangeRequest) {
				r.OldItems[0].WastageDeduction = fptr(101)
			},
			wantErr: true,
		},
		{
			name: "new item making charge discount over 100",
			mutate: func(r *models.CreateExchangeRequest) {
				r.NewItems = []models.NewItemRequest{
					{
						MetalType: models.MetalGold, Purity: "22K", Weight: 2,
						MakingChargeType: models.MakingPercentage, MakingChargeValue: 10,
						MakingChargeDiscount: 150,
					},
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := validateExchangeRequest(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateExchangeRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
