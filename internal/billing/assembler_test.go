package billing

import (
	"errors"
	"testing"

	"jewel-backend/internal/models"
)

func bptr(v bool) *bool { return &v }

func goldChainRequest() models.CreateBillRequest {
	return models.CreateBillRequest{
		Customer: models.CustomerInfo{Name: "Ravi Kumar", Mobile: "9876543210"},
		Items: []models.BillItemRequest{
			{
				Description:       "Gold Chain",
				MetalType:         models.MetalGold,
				Purity:            "22K",
				Weight:            10,
				MakingChargeType:  models.MakingPercentage,
				MakingChargeValue: 10,
			},
		},
		IsIntraState: bptr(true),
	}
}

func TestAssembleBillSingleItem(t *testing.T) {
	engine := NewEngine(Config{})
	comp, err := engine.AssembleBill(testRateBook(), goldChainRequest())
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}

	if len(comp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(comp.Items))
	}
	item := comp.Items[0]
	if !floatClose(item.MetalAmount, 55002) {
		t.Errorf("MetalAmount = %v, want 55002", item.MetalAmount)
	}
	if !floatClose(item.LineTotal, 62427.27) {
		t.Errorf("LineTotal = %v, want 62427.27", item.LineTotal)
	}
	if !floatClose(comp.SubTotal, 60502.20) {
		t.Errorf("SubTotal = %v, want 60502.20", comp.SubTotal)
	}
	if !floatClose(comp.GSTTotal, 1925.07) {
		t.Errorf("GSTTotal = %v, want 1925.07", comp.GSTTotal)
	}
	if !floatClose(comp.GrandTotal, 62427.27) {
		t.Errorf("GrandTotal = %v, want 62427.27", comp.GrandTotal)
	}
	if comp.Exchange.HasExchange {
		t.Error("HasExchange = true for bill without exchange items")
	}
	if comp.AmountInWords != AmountInWords(comp.GrandTotal) {
		t.Errorf("AmountInWords = %q, not derived from grand total", comp.AmountInWords)
	}
}

func TestAssembleBillGrandTotalInvariant(t *testing.T) {
	engine := NewEngine(Config{})

	req := goldChainRequest()
	req.Items = append(req.Items, models.BillItemRequest{
		Description:       "Silver Bowl",
		MetalType:         models.MetalSilver,
		Purity:            "999",
		Weight:            150,
		MakingChargeType:  models.MakingPerGram,
		MakingChargeValue: 12,
		HUIDCharge:        45,
	})
	req.Discount = 500
	req.HUIDCharges = 100

	comp, err := engine.AssembleBill(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}

	want := comp.SubTotal + comp.HUIDCharges - comp.DiscountAmount + comp.GSTTotal
	if !floatClose(comp.GrandTotal, want) {
		t.Errorf("GrandTotal = %v, want subTotal+huid-discount+gst = %v", comp.GrandTotal, want)
	}
	if !floatClose(comp.HUIDCharges, 145) {
		t.Errorf("HUIDCharges = %v, want 145", comp.HUIDCharges)
	}
}

func TestAssembleBillPercentageDiscount(t *testing.T) {
	engine := NewEngine(Config{})

	req := goldChainRequest()
	req.Discount = 10
	req.DiscountType = "percentage"

	comp, err := engine.AssembleBill(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !floatClose(comp.DiscountAmount, 6050.22) { // 10% of 60502.20
		t.Errorf("DiscountAmount = %v, want 6050.22", comp.DiscountAmount)
	}
}

func TestAssembleBillRejectsOutOfRangeDiscount(t *testing.T) {
	engine := NewEngine(Config{})

	tests := []struct {
		name         string
		discount     float64
		discountType string
	}{
		{"flat discount larger than bill", 1000000, ""},
		{"percentage over 100", 150, "percentage"},
		{"negative flat discount", -50, ""},
		{"negative percentage", -10, "percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := goldChainRequest()
			req.Discount = tt.discount
			req.DiscountType = tt.discountType

			comp, err := engine.AssembleBill(testRateBook(), req)
			if err == nil {
				t.Fatalf("AssembleBill() = grand total %v, want error", comp.GrandTotal)
			}
			if comp != nil {
				t.Error("partial computation returned alongside discount error")
			}
		})
	}
}

func TestAssembleBillFullPercentageDiscount(t *testing.T) {
	engine := NewEngine(Config{})

	req := goldChainRequest()
	req.Discount = 100
	req.DiscountType = "percentage"

	comp, err := engine.AssembleBill(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	// The full pre-GST value is discounted; GST still applies
	if !floatClose(comp.GrandTotal, comp.GSTTotal) {
		t.Errorf("GrandTotal = %v, want GST only %v", comp.GrandTotal, comp.GSTTotal)
	}
	if comp.GrandTotal < 0 {
		t.Errorf("GrandTotal = %v, must never be negative", comp.GrandTotal)
	}
}

func TestAssembleBillGSTSplit(t *testing.T) {
	engine := NewEngine(Config{})

	intra := goldChainRequest()
	comp, err := engine.AssembleBill(testRateBook(), intra)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !floatClose(comp.GSTBreakdown.CGST, comp.GSTBreakdown.SGST) {
		t.Errorf("intra-state CGST %v != SGST %v", comp.GSTBreakdown.CGST, comp.GSTBreakdown.SGST)
	}
	if !floatClose(comp.GSTBreakdown.CGST+comp.GSTBreakdown.SGST, comp.GSTTotal) {
		t.Errorf("CGST+SGST != GSTTotal")
	}
	if comp.GSTBreakdown.IGST != 0 {
		t.Errorf("intra-state IGST = %v, want 0", comp.GSTBreakdown.IGST)
	}

	inter := goldChainRequest()
	inter.IsIntraState = bptr(false)
	comp, err = engine.AssembleBill(testRateBook(), inter)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !floatClose(comp.GSTBreakdown.IGST, comp.GSTTotal) {
		t.Errorf("inter-state IGST = %v, want full %v", comp.GSTBreakdown.IGST, comp.GSTTotal)
	}
	if comp.GSTBreakdown.CGST != 0 || comp.GSTBreakdown.SGST != 0 {
		t.Errorf("inter-state CGST/SGST must be zero")
	}
}

func TestAssembleBillExchangeBalance(t *testing.T) {
	engine := NewEngine(Config{ShopDeductionPercent: 3})

	// Old item worth far less than the new purchase: balance payable
	req := goldChainRequest()
	req.ExchangeItems = []models.OldItemRequest{
		{MetalType: models.MetalSilver, Purity: "999", Weight: 20, WastageDeduction: fptr(2), MeltingCharge: 50},
	}

	comp, err := engine.AssembleBill(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !comp.Exchange.HasExchange {
		t.Fatal("HasExchange = false")
	}
	if !floatClose(comp.Exchange.OldItemsTotal, 1375.90) {
		t.Errorf("OldItemsTotal = %v, want 1375.90", comp.Exchange.OldItemsTotal)
	}
	if !floatClose(comp.Exchange.BalancePayable, comp.GrandTotal-1375.90) {
		t.Errorf("BalancePayable = %v, want grand-old = %v", comp.Exchange.BalancePayable, comp.GrandTotal-1375.90)
	}
	if comp.Exchange.BalanceRefundable != 0 {
		t.Errorf("both balances nonzero: payable=%v refundable=%v", comp.Exchange.BalancePayable, comp.Exchange.BalanceRefundable)
	}

	// Old items worth more than the new purchase: balance refundable
	req.ExchangeItems = []models.OldItemRequest{
		{MetalType: models.MetalGold, Purity: "24K", Weight: 50, WastageDeduction: fptr(0)},
	}
	comp, err = engine.AssembleBill(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if comp.Exchange.BalanceRefundable <= 0 || comp.Exchange.BalancePayable != 0 {
		t.Errorf("want refundable only, got payable=%v refundable=%v", comp.Exchange.BalancePayable, comp.Exchange.BalanceRefundable)
	}
}

func TestAssembleBillMissingRateAborts(t *testing.T) {
	engine := NewEngine(Config{})

	req := goldChainRequest()
	req.Items = append(req.Items, models.BillItemRequest{
		MetalType: models.MetalPlatinum, Purity: "950", Weight: 5,
		MakingChargeType: models.MakingFixed, MakingChargeValue: 100,
	})

	comp, err := engine.AssembleBill(testRateBook(), req)
	var rnf *RateNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("AssembleBill() error = %v, want RateNotFoundError", err)
	}
	if comp != nil {
		t.Error("partial computation returned alongside rate error")
	}
}

func TestAssembleBillSettlement(t *testing.T) {
	engine := NewEngine(Config{})

	paid := goldChainRequest()
	paid.PaymentStatus = models.PaymentPaid
	comp, err := engine.AssembleBill(testRateBook(), paid)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !floatClose(comp.PaidAmount, comp.GrandTotal) || comp.DueAmount != 0 {
		t.Errorf("paid bill: paid=%v due=%v", comp.PaidAmount, comp.DueAmount)
	}

	partial := goldChainRequest()
	partial.PaymentStatus = models.PaymentPartial
	partial.PaidAmount = 20000
	comp, err = engine.AssembleBill(testRateBook(), partial)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if !floatClose(comp.DueAmount, comp.GrandTotal-20000) {
		t.Errorf("partial bill: due=%v, want %v", comp.DueAmount, comp.GrandTotal-20000)
	}

	pending := goldChainRequest()
	pending.PaymentStatus = models.PaymentPending
	comp, err = engine.AssembleBill(testRateBook(), pending)
	if err != nil {
		t.Fatalf("AssembleBill() error = %v", err)
	}
	if comp.PaidAmount != 0 || !floatClose(comp.DueAmount, comp.GrandTotal) {
		t.Errorf("pending bill: paid=%v due=%v", comp.PaidAmount, comp.DueAmount)
	}
}

func TestAssembleExchange(t *testing.T) {
	engine := NewEngine(Config{ShopDeductionPercent: 3})

	req := models.CreateExchangeRequest{
		Customer: models.CustomerInfo{Name: "Meena Devi", Mobile: "9876501234"},
		OldItems: []models.OldItemRequest{
			{MetalType: models.MetalSilver, Purity: "999", Weight: 20, WastageDeduction: fptr(2), MeltingCharge: 50},
		},
		NewItems: []models.NewItemRequest{
			{
				MetalType: models.MetalGold, Purity: "22K", Weight: 2,
				MakingChargeType: models.MakingPercentage, MakingChargeValue: 10,
			},
		},
	}

	oldItems, newItems, totals, err := engine.AssembleExchange(testRateBook(), req)
	if err != nil {
		t.Fatalf("AssembleExchange() error = %v", err)
	}
	if len(oldItems) != 1 || len(newItems) != 1 {
		t.Fatalf("items = %d/%d, want 1/1", len(oldItems), len(newItems))
	}
	if !floatClose(totals.OldItemsTotal, 1375.90) {
		t.Errorf("OldItemsTotal = %v, want 1375.90", totals.OldItemsTotal)
	}
	if totals.NewItemsTotal <= 0 {
		t.Errorf("NewItemsTotal = %v, want > 0", totals.NewItemsTotal)
	}
	if !floatClose(totals.BalancePayable, totals.NewItemsTotal-totals.OldItemsTotal) {
		t.Errorf("BalancePayable = %v, want new-old", totals.BalancePayable)
	}
	if totals.BalanceRefundable != 0 {
		t.Error("both balances nonzero")
	}
}
