package services

import (
	"bytes"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/jung-kurt/gofpdf/v2"

	"jewel-backend/internal/models"
	"jewel-backend/internal/timeutil"
)

// PDFService renders printable bills
type PDFService struct {
	Shop ShopIdentity
}

func NewPDFService(shop ShopIdentity) *PDFService {
	return &PDFService{Shop: shop}
}

// GenerateBillPDF renders a tax invoice for printing. The QR payload is the
// same JSON the API returns from the QR endpoint.
func (s *PDFService) GenerateBillPDF(bill *models.Bill, qrPayload []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.Shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if s.Shop.Address != "" {
		pdf.CellFormat(190, 5, s.Shop.Address, "", 1, "C", false, 0, "")
	}
	if s.Shop.GSTIN != "" {
		pdf.CellFormat(190, 5, "GSTIN: "+s.Shop.GSTIN, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "TAX INVOICE", "1", 1, "C", true, 0, "")

	// Bill meta
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, "Bill No: "+bill.BillNumber, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Date: "+timeutil.ToIST(bill.BillDate).Format(timeutil.DisplayLayout), "RB", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Customer: "+bill.Customer.Name, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Mobile: "+bill.Customer.Mobile, "RB", 1, "R", false, 0, "")
	pdf.Ln(3)

	// Item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(52, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Purity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Net Wt", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Making", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "GST", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range bill.Items {
		desc := item.Description
		if desc == "" {
			desc = item.MetalType
		}
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}
		gst := item.GSTOnMetalCGST + item.GSTOnMetalSGST + item.GSTOnMetalIGST +
			item.GSTOnMakingCGST + item.GSTOnMakingSGST + item.GSTOnMakingIGST
		pdf.CellFormat(52, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.Purity, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.3f %s", item.NetWeight, item.Unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, fmt.Sprintf("%.2f", item.RatePerUnit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, fmt.Sprintf("%.2f", item.MakingChargeAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", gst), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, fmt.Sprintf("%.2f", item.LineTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Exchange section
	if bill.Exchange.HasExchange {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 7, "Exchange (Old Items)", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, oi := range bill.OldItems {
			desc := oi.Description
			if desc == "" {
				desc = oi.MetalType
			}
			pdf.CellFormat(70, 6, desc, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.3f g", oi.Weight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 6, fmt.Sprintf("Wastage %.1f%%", oi.WastageDeduction), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", oi.ExchangeValue), "1", 1, "R", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(145, 6, "Old Items Credit", "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("- %.2f", bill.Exchange.OldItemsTotal), "1", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	// Totals block
	writeTotal := func(label string, amount float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(140, 6, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	writeTotal("Sub Total", bill.SubTotal, false)
	if bill.HUIDCharges > 0 {
		writeTotal("HUID / Hallmarking", bill.HUIDCharges, false)
	}
	if bill.DiscountAmount > 0 {
		writeTotal("Discount", -bill.DiscountAmount, false)
	}
	if bill.IsIntraState {
		writeTotal("CGST", bill.GSTBreakdown.CGST, false)
		writeTotal("SGST", bill.GSTBreakdown.SGST, false)
	} else {
		writeTotal("IGST", bill.GSTBreakdown.IGST, false)
	}
	writeTotal("Grand Total", bill.GrandTotal, true)
	if bill.Exchange.HasExchange {
		if bill.Exchange.BalanceRefundable > 0 {
			writeTotal("Balance Refundable", bill.Exchange.BalanceRefundable, true)
		} else {
			writeTotal("Balance Payable", bill.Exchange.BalancePayable, true)
		}
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(190, 5, "Amount in words: "+bill.AmountInWords, "", "L", false)

	// QR code bottom-left
	if len(qrPayload) > 0 {
		png, err := qrcode.Encode(string(qrPayload), qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("bill-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("bill-qr", 10, pdf.GetY()+4, 30, 30, false, opts, 0, "")
		}
	}

	pdf.SetY(pdf.GetY() + 38)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(190, 5, "This is a computer generated invoice.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
