package billing

import (
	"fmt"
	"math"

	"jewel-backend/internal/models"
)

// Default GST percentages for jewellery: 3% on metal value, 5% on making
// charges. Overridable per bill and, for metal, per rate record.
const (
	DefaultGSTOnMetalPercent  = 3.0
	DefaultGSTOnMakingPercent = 5.0
	DefaultShopDeductionPct   = 3.0
)

// Config carries the shop-level calculation policy
type Config struct {
	ShopDeductionPercent float64 // flat deduction on old-item value before wastage
	GSTOnMetalPercent    float64
	GSTOnMakingPercent   float64
	IntraStateDefault    bool
}

// Engine is the billing and exchange valuation engine. It is pure: all
// rates come in through the RateBook snapshot, nothing is read live.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine with zero config values replaced by defaults
func NewEngine(cfg Config) *Engine {
	if cfg.GSTOnMetalPercent == 0 {
		cfg.GSTOnMetalPercent = DefaultGSTOnMetalPercent
	}
	if cfg.GSTOnMakingPercent == 0 {
		cfg.GSTOnMakingPercent = DefaultGSTOnMakingPercent
	}
	return &Engine{cfg: cfg}
}

// Computation is the result of assembling a bill: valued line items ready
// for persistence plus all bill-level totals, rounded to 2 decimals.
type Computation struct {
	Items         []models.BillItem
	OldItems      []models.BillOldItem
	SubTotal      float64 // metal + making
	HUIDCharges   float64
	DiscountAmount float64
	GSTBreakdown  models.GSTBreakdown
	GSTTotal      float64
	TotalBeforeGST float64
	GrandTotal    float64
	Exchange      models.ExchangeDetails
	AmountInWords string
	PaidAmount    float64
	DueAmount     float64
	IsIntraState  bool
}

// Round2 rounds a currency amount to 2 decimals. Applied only at the
// output boundary; intermediate arithmetic stays unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// gstPercents resolves the effective GST rates for a bill request
func (e *Engine) gstPercents(req models.CreateBillRequest) (metalPct, makingPct float64) {
	metalPct = e.cfg.GSTOnMetalPercent
	makingPct = e.cfg.GSTOnMakingPercent
	if req.GSTOnMetal != nil {
		metalPct = *req.GSTOnMetal
	}
	if req.GSTOnMaking != nil {
		makingPct = *req.GSTOnMaking
	}
	return metalPct, makingPct
}

// intraState resolves the GST split mode for a bill request
func (e *Engine) intraState(req models.CreateBillRequest) bool {
	if req.IsIntraState != nil {
		return *req.IsIntraState
	}
	return e.cfg.IntraStateDefault
}

// metalGSTPercent picks the per-metal GST override from the rate record,
// falling back to the bill-level percent.
func metalGSTPercent(book *RateBook, metalType string, billPct float64) float64 {
	if rate, ok := book.Rate(metalType); ok && rate.GSTRate > 0 {
		return rate.GSTRate
	}
	return billPct
}

// AssembleBill turns a raw bill request into valued line items and
// bill-level totals using the supplied rate snapshot.
//
// Any rate or purity failure aborts the whole computation: no partial
// bills, and a missing rate is never silently priced at zero.
func (e *Engine) AssembleBill(book *RateBook, req models.CreateBillRequest) (*Computation, error) {
	metalPct, makingPct := e.gstPercents(req)
	intra := e.intraState(req)

	var (
		items       []models.BillItem
		totalMetal  float64
		totalMaking float64
		huidTotal   = req.HUIDCharges
		gstMetal    float64
		gstMaking   float64
	)

	for _, ir := range req.Items {
		perUnit, err := book.Resolve(ir.MetalType, ir.Purity)
		if err != nil {
			return nil, err
		}

		itemMetalPct := metalGSTPercent(book, ir.MetalType, metalPct)
		v, err := ValueItem(ir, perUnit, itemMetalPct, makingPct, intra)
		if err != nil {
			return nil, err
		}

		totalMetal += v.MetalAmount
		totalMaking += v.MakingChargeAmount
		huidTotal += ir.HUIDCharge
		gstMetal += v.GSTOnMetal
		gstMaking += v.GSTOnMaking

		qty := ir.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := ir.Unit
		if unit == "" {
			unit = "GM"
		}

		items = append(items, models.BillItem{
			Description:          ir.Description,
			MetalType:            ir.MetalType,
			Purity:               ir.Purity,
			Unit:                 unit,
			Quantity:             qty,
			GrossWeight:          ir.GrossWeight,
			LessWeight:           ir.LessWeight,
			NetWeight:            v.NetWeight,
			RatePerUnit:          Round2(v.RatePerUnit),
			MakingChargeType:     ir.MakingChargeType,
			MakingChargeValue:    ir.MakingChargeValue,
			MakingChargeDiscount: ir.MakingChargeDiscount,
			MakingChargeAmount:   Round2(v.MakingChargeAmount),
			MetalAmount:          Round2(v.MetalAmount),
			HUIDCharge:           ir.HUIDCharge,
			HUID:                 ir.HUID,
			Tunch:                ir.Tunch,
			GSTOnMetalCGST:       Round2(v.MetalCGST),
			GSTOnMetalSGST:       Round2(v.MetalSGST),
			GSTOnMetalIGST:       Round2(v.MetalIGST),
			GSTOnMakingCGST:      Round2(v.MakingCGST),
			GSTOnMakingSGST:      Round2(v.MakingSGST),
			GSTOnMakingIGST:      Round2(v.MakingIGST),
			LineTotal:            Round2(v.LineTotal),
		})
	}

	// HUID hallmarking charges are a service fee, taxed at the making rate
	gstHUID := huidTotal * makingPct / 100

	// A discount can never push the bill negative: percentage is capped at
	// 100, a flat discount at the pre-GST value.
	if req.Discount < 0 {
		return nil, fmt.Errorf("discount must not be negative")
	}
	preGST := totalMetal + totalMaking + huidTotal
	var discount float64
	switch req.DiscountType {
	case "percentage":
		if req.Discount > 100 {
			return nil, fmt.Errorf("percentage discount must not exceed 100, got %.2f", req.Discount)
		}
		discount = preGST * req.Discount / 100
	default:
		if req.Discount > preGST {
			return nil, fmt.Errorf("discount %.2f exceeds bill value %.2f", req.Discount, preGST)
		}
		discount = req.Discount
	}

	gstTotal := gstMetal + gstMaking + gstHUID

	var breakdown models.GSTBreakdown
	if intra {
		breakdown.CGST = gstTotal / 2
		breakdown.SGST = gstTotal / 2
	} else {
		breakdown.IGST = gstTotal
	}

	totalBeforeGST := totalMetal + totalMaking + huidTotal - discount
	grandTotal := totalBeforeGST + gstTotal

	comp := &Computation{
		Items:          items,
		SubTotal:       Round2(totalMetal + totalMaking),
		HUIDCharges:    Round2(huidTotal),
		DiscountAmount: Round2(discount),
		GSTBreakdown: models.GSTBreakdown{
			CGST: Round2(breakdown.CGST),
			SGST: Round2(breakdown.SGST),
			IGST: Round2(breakdown.IGST),
		},
		GSTTotal:       Round2(gstTotal),
		TotalBeforeGST: Round2(totalBeforeGST),
		GrandTotal:     Round2(grandTotal),
		IsIntraState:   intra,
	}

	if len(req.ExchangeItems) > 0 {
		var oldTotal float64
		for _, or := range req.ExchangeItems {
			liveRate, err := book.Resolve(or.MetalType, or.Purity)
			if err != nil {
				return nil, err
			}
			ov, err := ValueOldItem(or, liveRate, e.cfg.ShopDeductionPercent)
			if err != nil {
				return nil, err
			}
			oldTotal += ov.ExchangeValue

			comp.OldItems = append(comp.OldItems, models.BillOldItem{
				Description:      or.Description,
				MetalType:        or.MetalType,
				Purity:           or.Purity,
				Weight:           or.Weight,
				RatePerUnit:      Round2(ov.RatePerUnit),
				WastageDeduction: ov.WastageDeduction,
				MeltingCharge:    or.MeltingCharge,
				ExchangeValue:    Round2(ov.ExchangeValue),
			})
		}

		balance := oldTotal - grandTotal
		comp.Exchange = models.ExchangeDetails{
			HasExchange:   true,
			OldItemsTotal: Round2(oldTotal),
			NewItemsTotal: Round2(grandTotal),
		}
		if balance >= 0 {
			comp.Exchange.BalanceRefundable = Round2(balance)
		} else {
			comp.Exchange.BalancePayable = Round2(-balance)
		}
	}

	comp.AmountInWords = AmountInWords(comp.GrandTotal)
	comp.PaidAmount, comp.DueAmount = settle(req, comp)

	return comp, nil
}

// settle resolves paid and due amounts from the requested payment status.
// With an exchange the customer owes only the payable balance.
func settle(req models.CreateBillRequest, comp *Computation) (paid, due float64) {
	netPayable := comp.GrandTotal
	if comp.Exchange.HasExchange {
		netPayable = comp.Exchange.BalancePayable
	}

	switch req.PaymentStatus {
	case models.PaymentPaid:
		paid = netPayable
		if req.PaidAmount > 0 {
			paid = Round2(req.PaidAmount)
		}
		due = 0
	case models.PaymentPartial:
		paid = Round2(req.PaidAmount)
		due = Round2(netPayable - paid)
	default: // pending
		paid = 0
		due = netPayable
	}
	return paid, due
}

// AssembleExchange values a standalone exchange calculation: old items are
// credited through the deduction chain, new items are valued exactly like
// bill line items (GST included, intra-state by shop default).
func (e *Engine) AssembleExchange(book *RateBook, req models.CreateExchangeRequest) ([]models.ExchangeOldItem, []models.ExchangeNewItem, models.ExchangeTotals, error) {
	var (
		oldItems []models.ExchangeOldItem
		newItems []models.ExchangeNewItem
		totals   models.ExchangeTotals
	)

	for _, or := range req.OldItems {
		liveRate, err := book.Resolve(or.MetalType, or.Purity)
		if err != nil {
			return nil, nil, totals, err
		}
		ov, err := ValueOldItem(or, liveRate, e.cfg.ShopDeductionPercent)
		if err != nil {
			return nil, nil, totals, err
		}
		totals.OldItemsTotal += ov.ExchangeValue

		oldItems = append(oldItems, models.ExchangeOldItem{
			Description:      or.Description,
			MetalType:        or.MetalType,
			Purity:           or.Purity,
			Weight:           or.Weight,
			RatePerUnit:      Round2(ov.RatePerUnit),
			WastageDeduction: ov.WastageDeduction,
			MeltingCharge:    or.MeltingCharge,
			ExchangeValue:    Round2(ov.ExchangeValue),
		})
	}

	for _, nr := range req.NewItems {
		perUnit, err := book.Resolve(nr.MetalType, nr.Purity)
		if err != nil {
			return nil, nil, totals, err
		}
		itemMetalPct := metalGSTPercent(book, nr.MetalType, e.cfg.GSTOnMetalPercent)

		ir := models.BillItemRequest{
			Description:          nr.Description,
			MetalType:            nr.MetalType,
			Purity:               nr.Purity,
			Unit:                 nr.Unit,
			Quantity:             nr.Quantity,
			Weight:               nr.Weight,
			GrossWeight:          nr.GrossWeight,
			LessWeight:           nr.LessWeight,
			MakingChargeType:     nr.MakingChargeType,
			MakingChargeValue:    nr.MakingChargeValue,
			MakingChargeDiscount: nr.MakingChargeDiscount,
		}
		v, err := ValueItem(ir, perUnit, itemMetalPct, e.cfg.GSTOnMakingPercent, e.cfg.IntraStateDefault)
		if err != nil {
			return nil, nil, totals, err
		}
		totals.NewItemsTotal += v.LineTotal

		qty := nr.Quantity
		if qty < 1 {
			qty = 1
		}
		newItems = append(newItems, models.ExchangeNewItem{
			Description:          nr.Description,
			MetalType:            nr.MetalType,
			Purity:               nr.Purity,
			Unit:                 nr.Unit,
			Quantity:             qty,
			GrossWeight:          nr.GrossWeight,
			LessWeight:           nr.LessWeight,
			NetWeight:            v.NetWeight,
			RatePerUnit:          Round2(v.RatePerUnit),
			MakingChargeType:     nr.MakingChargeType,
			MakingChargeValue:    nr.MakingChargeValue,
			MakingChargeDiscount: nr.MakingChargeDiscount,
			HUID:                 nr.HUID,
			Tunch:                nr.Tunch,
			ItemValue:            Round2(v.LineTotal),
		})
	}

	balance := totals.OldItemsTotal - totals.NewItemsTotal
	totals.OldItemsTotal = Round2(totals.OldItemsTotal)
	totals.NewItemsTotal = Round2(totals.NewItemsTotal)
	if balance >= 0 {
		totals.BalanceRefundable = Round2(balance)
	} else {
		totals.BalancePayable = Round2(-balance)
	}

	return oldItems, newItems, totals, nil
}
