package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"jewel-backend/internal/timeutil"
)

// SalesSummary aggregates billing activity over a period
type SalesSummary struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	BillCount     int       `json:"bill_count"`
	GrossSales    float64   `json:"gross_sales"`
	GSTCollected  float64   `json:"gst_collected"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	IGST          float64   `json:"igst"`
	AmountPaid    float64   `json:"amount_paid"`
	AmountDue     float64   `json:"amount_due"`
	ExchangeCount int       `json:"exchange_count"`
	ExchangeValue float64   `json:"exchange_value"`
}

// GSTRow is one bill's tax line in the GST register
type GSTRow struct {
	BillNumber     string    `json:"bill_number"`
	BillDate       time.Time `json:"bill_date"`
	CustomerName   string    `json:"customer_name"`
	TaxableValue   float64   `json:"taxable_value"`
	CGST           float64   `json:"cgst"`
	SGST           float64   `json:"sgst"`
	IGST           float64   `json:"igst"`
	InvoiceTotal   float64   `json:"invoice_total"`
}

// CustomerSummary aggregates one customer's purchase history
type CustomerSummary struct {
	CustomerName string  `json:"customer_name"`
	Mobile       string  `json:"mobile"`
	BillCount    int     `json:"bill_count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalDue     float64 `json:"total_due"`
}

// ReportService builds period reports straight off the bills table
type ReportService struct {
	DB *pgxpool.Pool
}

func NewReportService(db *pgxpool.Pool) *ReportService {
	return &ReportService{DB: db}
}

// Sales summarizes active bills in [from, to)
func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	summary := &SalesSummary{From: from, To: to}

	err := s.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(grand_total), 0), COALESCE(SUM(gst_total), 0),
                COALESCE(SUM(cgst), 0), COALESCE(SUM(sgst), 0), COALESCE(SUM(igst), 0),
                COALESCE(SUM(paid_amount), 0), COALESCE(SUM(due_amount), 0),
                COUNT(*) FILTER (WHERE has_exchange), COALESCE(SUM(old_items_total), 0)
         FROM bills
         WHERE status='active' AND created_at >= $1 AND created_at < $2`,
		from, to).
		Scan(&summary.BillCount, &summary.GrossSales, &summary.GSTCollected,
			&summary.CGST, &summary.SGST, &summary.IGST,
			&summary.AmountPaid, &summary.AmountDue,
			&summary.ExchangeCount, &summary.ExchangeValue)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// GSTRegister lists per-bill tax lines in [from, to), oldest first
func (s *ReportService) GSTRegister(ctx context.Context, from, to time.Time) ([]GSTRow, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT bill_number, created_at, customer_name, total_before_gst, cgst, sgst, igst, grand_total
         FROM bills
         WHERE status='active' AND created_at >= $1 AND created_at < $2
         ORDER BY created_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var register []GSTRow
	for rows.Next() {
		var row GSTRow
		if err := rows.Scan(&row.BillNumber, &row.BillDate, &row.CustomerName,
			&row.TaxableValue, &row.CGST, &row.SGST, &row.IGST, &row.InvoiceTotal); err != nil {
			return nil, err
		}
		register = append(register, row)
	}
	return register, rows.Err()
}

// TopCustomers ranks customers by purchase value in [from, to)
func (s *ReportService) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]CustomerSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.DB.Query(ctx,
		`SELECT customer_name, customer_mobile, COUNT(*), COALESCE(SUM(grand_total), 0), COALESCE(SUM(due_amount), 0)
         FROM bills
         WHERE status='active' AND created_at >= $1 AND created_at < $2
         GROUP BY customer_name, customer_mobile
         ORDER BY SUM(grand_total) DESC LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []CustomerSummary
	for rows.Next() {
		var c CustomerSummary
		if err := rows.Scan(&c.CustomerName, &c.Mobile, &c.BillCount, &c.TotalAmount, &c.TotalDue); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// GSTRegisterCSV renders the GST register as CSV for the accountant
func (s *ReportService) GSTRegisterCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	register, err := s.GSTRegister(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"#", "Bill Number", "Date", "Customer",
		"Taxable Value", "CGST", "SGST", "IGST", "Invoice Total",
	})

	for i, row := range register {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			row.BillNumber,
			timeutil.ToIST(row.BillDate).Format(timeutil.DateLayout),
			row.CustomerName,
			fmt.Sprintf("%.2f", row.TaxableValue),
			fmt.Sprintf("%.2f", row.CGST),
			fmt.Sprintf("%.2f", row.SGST),
			fmt.Sprintf("%.2f", row.IGST),
			fmt.Sprintf("%.2f", row.InvoiceTotal),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SalesCSV renders one summary line per day in [from, to)
func (s *ReportService) SalesCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT DATE(created_at AT TIME ZONE 'Asia/Kolkata') AS day,
                COUNT(*), COALESCE(SUM(grand_total), 0), COALESCE(SUM(gst_total), 0), COALESCE(SUM(due_amount), 0)
         FROM bills
         WHERE status='active' AND created_at >= $1 AND created_at < $2
         GROUP BY day ORDER BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Date", "Bills", "Gross Sales", "GST Collected", "Outstanding"})

	for rows.Next() {
		var day time.Time
		var count int
		var gross, gst, due float64
		if err := rows.Scan(&day, &count, &gross, &gst, &due); err != nil {
			return nil, err
		}
		w.Write([]string{
			day.Format(timeutil.DateLayout),
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.2f", gross),
			fmt.Sprintf("%.2f", gst),
			fmt.Sprintf("%.2f", due),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
