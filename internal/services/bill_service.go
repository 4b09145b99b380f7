package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	qrcode "github.com/skip2/go-qrcode"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/metrics"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/timeutil"
)

// ShopIdentity is printed on bills and embedded in QR payloads
type ShopIdentity struct {
	Name    string
	Prefix  string
	GSTIN   string
	Address string
	Phone   string
}

type BillService struct {
	Bills     *repositories.BillRepository
	Customers *repositories.CustomerRepository
	Exchanges *repositories.ExchangeRepository
	Rates     *RateService
	Engine    *billing.Engine
	Numbers   *billing.NumberGenerator
	Shop      ShopIdentity
}

func NewBillService(
	bills *repositories.BillRepository,
	customers *repositories.CustomerRepository,
	exchanges *repositories.ExchangeRepository,
	rates *RateService,
	engine *billing.Engine,
	shop ShopIdentity,
) *BillService {
	return &BillService{
		Bills:     bills,
		Customers: customers,
		Exchanges: exchanges,
		Rates:     rates,
		Engine:    engine,
		Numbers:   billing.NewNumberGenerator(shop.Prefix),
		Shop:      shop,
	}
}

func validateBillRequest(req *models.CreateBillRequest) error {
	if req.Customer.Name == "" || req.Customer.Mobile == "" {
		return errors.New("customer name and mobile are required")
	}
	if len(req.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, item := range req.Items {
		if !models.ValidMetalType(item.MetalType) {
			return fmt.Errorf("item %d: unknown metal type %q", i+1, item.MetalType)
		}
		if item.MakingChargeDiscount < 0 || item.MakingChargeDiscount > 100 {
			return fmt.Errorf("item %d: making charge discount must be between 0 and 100", i+1)
		}
	}
	for i, item := range req.ExchangeItems {
		if !models.ValidMetalType(item.MetalType) {
			return fmt.Errorf("old item %d: unknown metal type %q", i+1, item.MetalType)
		}
		if w := item.WastageDeduction; w != nil && (*w < 0 || *w > 100) {
			return fmt.Errorf("old item %d: wastage deduction must be between 0 and 100", i+1)
		}
	}
	switch req.PaymentStatus {
	case "":
		req.PaymentStatus = models.PaymentPaid
	case models.PaymentPaid, models.PaymentPending, models.PaymentPartial:
	default:
		return fmt.Errorf("invalid payment status %q", req.PaymentStatus)
	}
	if req.PaymentMode == "" {
		req.PaymentMode = "cash"
	}
	return nil
}

// Calculate runs the full bill computation without persisting anything.
// The preview and the final bill go through the identical code path, so a
// request that previews cleanly cannot fail validation at creation time.
func (s *BillService) Calculate(ctx context.Context, req models.CreateBillRequest) (*billing.Computation, error) {
	if err := validateBillRequest(&req); err != nil {
		return nil, err
	}
	book, err := s.Rates.RateBook(ctx)
	if err != nil {
		return nil, err
	}
	return s.Engine.AssembleBill(book, req)
}

// CreateBill computes and persists a bill. Numbering is retried once on a
// unique-index collision, then falls back to a timestamp-suffixed number so
// the counter never blocks a sale.
func (s *BillService) CreateBill(ctx context.Context, req models.CreateBillRequest, createdBy *int) (*models.Bill, error) {
	if err := validateBillRequest(&req); err != nil {
		return nil, err
	}

	// Linked exchange: pull its old items into the bill if the request
	// does not carry its own
	var linkedExchange *models.Exchange
	if req.ExchangeID != nil {
		ex, err := s.Exchanges.Get(ctx, *req.ExchangeID)
		if err != nil {
			return nil, fmt.Errorf("linked exchange: %w", err)
		}
		if ex.ExchangeStatus != models.ExchangeCalculated {
			return nil, fmt.Errorf("exchange %s is %s, cannot convert", ex.ExchangeNumber, ex.ExchangeStatus)
		}
		linkedExchange = ex
		if len(req.ExchangeItems) == 0 {
			for _, oi := range ex.OldItems {
				wastage := oi.WastageDeduction
				req.ExchangeItems = append(req.ExchangeItems, models.OldItemRequest{
					Description:      oi.Description,
					MetalType:        oi.MetalType,
					Purity:           oi.Purity,
					Weight:           oi.Weight,
					Rate:             oi.RatePerUnit,
					WastageDeduction: &wastage,
					MeltingCharge:    oi.MeltingCharge,
				})
			}
		}
	}

	book, err := s.Rates.RateBook(ctx)
	if err != nil {
		return nil, err
	}
	comp, err := s.Engine.AssembleBill(book, req)
	if err != nil {
		return nil, err
	}

	customer, err := s.Customers.FindOrCreate(ctx, req.Customer)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}

	bill := &models.Bill{
		Customer:      req.Customer,
		CustomerID:    &customer.ID,
		Items:         comp.Items,
		OldItems:      comp.OldItems,
		SubTotal:      comp.SubTotal,
		HUIDCharges:   comp.HUIDCharges,
		DiscountAmount: comp.DiscountAmount,
		DiscountType:  req.DiscountType,
		GSTBreakdown:  comp.GSTBreakdown,
		GSTTotal:      comp.GSTTotal,
		Exchange:      comp.Exchange,
		GrandTotal:    comp.GrandTotal,
		AmountInWords: comp.AmountInWords,
		IsIntraState:  comp.IsIntraState,
		PaymentMode:   req.PaymentMode,
		PaymentStatus: req.PaymentStatus,
		PaidAmount:    comp.PaidAmount,
		DueAmount:     comp.DueAmount,
		CreatedBy:     createdBy,
	}
	if bill.DiscountType == "" {
		bill.DiscountType = "amount"
	}

	if err := s.persistWithNumbering(ctx, bill); err != nil {
		return nil, err
	}
	metrics.BillsCreatedTotal.Inc()

	if linkedExchange != nil {
		if err := s.Exchanges.MarkConverted(ctx, linkedExchange.ID, bill.BillNumber); err != nil {
			// The bill exists; the dangling link is logged, not fatal
			log.Printf("[Bills] WARNING: bill %s created but exchange %s not marked converted: %v",
				bill.BillNumber, linkedExchange.ExchangeNumber, err)
		}
	}

	log.Printf("[Bills] Created %s for %s, grand total %.2f", bill.BillNumber, bill.Customer.Name, bill.GrandTotal)
	return bill, nil
}

// persistWithNumbering generates a bill number and inserts, retrying once
// on collision and finally accepting the timestamp fallback form.
func (s *BillService) persistWithNumbering(ctx context.Context, bill *models.Bill) error {
	number, fallback := s.Numbers.NextBillNumber(ctx, s.Bills)
	bill.BillNumber = number
	bill.FallbackNumber = fallback

	err := s.Bills.Create(ctx, bill)
	if !errors.Is(err, billing.ErrDuplicateNumber) {
		if err == nil && fallback {
			metrics.BillNumberFallbacksTotal.Inc()
		}
		return err
	}

	// Concurrent bill grabbed the sequence slot; recount and retry once
	metrics.BillNumberRetriesTotal.Inc()
	number, fallback = s.Numbers.NextBillNumber(ctx, s.Bills)
	bill.BillNumber = number
	bill.FallbackNumber = fallback
	err = s.Bills.Create(ctx, bill)
	if !errors.Is(err, billing.ErrDuplicateNumber) {
		if err == nil && fallback {
			metrics.BillNumberFallbacksTotal.Inc()
		}
		return err
	}

	bill.BillNumber = s.Numbers.FallbackBillNumber()
	bill.FallbackNumber = true
	if err := s.Bills.Create(ctx, bill); err != nil {
		return err
	}
	metrics.BillNumberFallbacksTotal.Inc()
	return nil
}

func (s *BillService) GetBill(ctx context.Context, id int) (*models.Bill, error) {
	return s.Bills.Get(ctx, id)
}

func (s *BillService) GetBillByNumber(ctx context.Context, number string) (*models.Bill, error) {
	return s.Bills.GetByNumber(ctx, number)
}

func (s *BillService) ListBills(ctx context.Context, f repositories.BillFilter) ([]*models.Bill, error) {
	return s.Bills.List(ctx, f)
}

// UpdatePayment transitions a bill's payment status with an audit entry
func (s *BillService) UpdatePayment(ctx context.Context, id int, req models.UpdatePaymentRequest, updatedBy *int) (*models.Bill, error) {
	return s.Bills.UpdatePayment(ctx, id, req, updatedBy)
}

func (s *BillService) PaymentLogs(ctx context.Context, billID int) ([]models.BillPaymentLog, error) {
	return s.Bills.PaymentLogs(ctx, billID)
}

// ArchiveBill soft-deletes a bill; its number stays reserved
func (s *BillService) ArchiveBill(ctx context.Context, id int) error {
	return s.Bills.Archive(ctx, id)
}

// QRPayload builds the machine-readable summary embedded in the bill QR
func (s *BillService) QRPayload(bill *models.Bill) models.QRPayload {
	gstType := "CGST+SGST"
	if !bill.IsIntraState {
		gstType = "IGST"
	}
	return models.QRPayload{
		Shop:         s.Shop.Name,
		BillNumber:   bill.BillNumber,
		CustomerName: bill.Customer.Name,
		TotalAmount:  bill.GrandTotal,
		Date:         timeutil.ToIST(bill.CreatedAt).Format(timeutil.DateLayout),
		GSTType:      gstType,
		GSTNumber:    s.Shop.GSTIN,
	}
}

// QRDataURL renders the bill QR code as a PNG data URL for embedding in
// the printed bill.
func (s *BillService) QRDataURL(bill *models.Bill) (string, error) {
	payload, err := json.Marshal(s.QRPayload(bill))
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
