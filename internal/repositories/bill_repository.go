package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

// BillFilter narrows List results. Zero values mean "no filter".
type BillFilter struct {
	Mobile        string
	PaymentStatus string
	From          time.Time
	To            time.Time
	Limit         int
	Offset        int
}

const billColumns = `b.id, b.bill_number, b.fallback_number, b.customer_id,
	b.customer_name, b.customer_mobile, COALESCE(b.customer_address, ''),
	COALESCE(b.customer_pan, ''), COALESCE(b.customer_aadhaar, ''),
	b.items, b.old_items, b.sub_total, b.huid_charges, b.discount_type,
	b.discount_amount, b.cgst, b.sgst, b.igst, b.gst_total, b.is_intra_state,
	b.grand_total, b.amount_in_words, b.has_exchange, b.old_items_total,
	b.balance_payable, b.balance_refundable, b.payment_mode, b.payment_status,
	b.paid_amount, b.due_amount, b.status, b.created_by, COALESCE(u.name, ''),
	b.created_at, b.updated_at`

// Create persists a bill inside a transaction. A bill number collision on
// the unique index surfaces as billing.ErrDuplicateNumber so the service
// can regenerate and retry.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	itemsJSON, err := json.Marshal(bill.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	oldItemsJSON, err := json.Marshal(bill.OldItems)
	if err != nil {
		return fmt.Errorf("marshal old items: %w", err)
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO bills(bill_number, fallback_number, customer_id,
             customer_name, customer_mobile, customer_address, customer_pan, customer_aadhaar,
             items, old_items, sub_total, huid_charges, discount_type, discount_amount,
             cgst, sgst, igst, gst_total, is_intra_state, total_before_gst, grand_total,
             amount_in_words, has_exchange, old_items_total, balance_payable, balance_refundable,
             payment_mode, payment_status, paid_amount, due_amount, status, created_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
             $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
         RETURNING id, created_at, updated_at`,
		bill.BillNumber, bill.FallbackNumber, bill.CustomerID,
		bill.Customer.Name, bill.Customer.Mobile, bill.Customer.Address, bill.Customer.PAN, bill.Customer.Aadhaar,
		itemsJSON, oldItemsJSON, bill.SubTotal, bill.HUIDCharges, bill.DiscountType, bill.DiscountAmount,
		bill.GSTBreakdown.CGST, bill.GSTBreakdown.SGST, bill.GSTBreakdown.IGST, bill.GSTTotal,
		bill.IsIntraState, bill.SubTotal+bill.HUIDCharges-bill.DiscountAmount, bill.GrandTotal,
		bill.AmountInWords, bill.Exchange.HasExchange, bill.Exchange.OldItemsTotal,
		bill.Exchange.BalancePayable, bill.Exchange.BalanceRefundable,
		bill.PaymentMode, bill.PaymentStatus, bill.PaidAmount, bill.DueAmount, models.StatusActive, bill.CreatedBy,
	).Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return billing.ErrDuplicateNumber
		}
		return err
	}

	// Initial payment state is part of the audit trail
	if _, err := tx.Exec(ctx,
		`INSERT INTO bill_payment_logs(bill_id, previous_status, new_status, payment_mode, amount, remarks, updated_by)
         VALUES($1, '', $2, $3, $4, 'bill created', $5)`,
		bill.ID, bill.PaymentStatus, bill.PaymentMode, bill.PaidAmount, bill.CreatedBy); err != nil {
		return err
	}

	bill.Status = models.StatusActive
	bill.BillDate = bill.CreatedAt
	return tx.Commit(ctx)
}

func (r *BillRepository) Get(ctx context.Context, id int) (*models.Bill, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills b LEFT JOIN users u ON u.id = b.created_by
         WHERE b.id=$1`, id)
	return scanBill(row)
}

func (r *BillRepository) GetByNumber(ctx context.Context, billNumber string) (*models.Bill, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills b LEFT JOIN users u ON u.id = b.created_by
         WHERE b.bill_number=$1`, billNumber)
	return scanBill(row)
}

// List returns active bills newest first. Archived bills never appear.
func (r *BillRepository) List(ctx context.Context, f BillFilter) ([]*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills b LEFT JOIN users u ON u.id = b.created_by
        WHERE b.status = 'active'`
	args := []interface{}{}
	n := 0

	add := func(clause string, val interface{}) {
		n++
		query += fmt.Sprintf(" AND "+clause, n)
		args = append(args, val)
	}

	if f.Mobile != "" {
		add("b.customer_mobile = $%d", f.Mobile)
	}
	if f.PaymentStatus != "" {
		add("b.payment_status = $%d", f.PaymentStatus)
	}
	if !f.From.IsZero() {
		add("b.created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("b.created_at < $%d", f.To)
	}

	query += " ORDER BY b.created_at DESC"
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, f.Limit)
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, f.Offset)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// CountByDatePrefix counts bills whose number starts with the given date
// prefix. Drives sequential numbering; archived bills still count so a
// number is never reissued.
func (r *BillRepository) CountByDatePrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM bills WHERE bill_number LIKE $1`, prefix+"%").Scan(&count)
	return count, err
}

// UpdatePayment transitions payment status and appends an audit log entry
// in one transaction.
func (r *BillRepository) UpdatePayment(ctx context.Context, id int, req models.UpdatePaymentRequest, updatedBy *int) (*models.Bill, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var prevStatus string
	var grandTotal, paidAmount, balancePayable float64
	var hasExchange bool
	err = tx.QueryRow(ctx,
		`SELECT payment_status, grand_total, paid_amount, balance_payable, has_exchange
         FROM bills WHERE id=$1 FOR UPDATE`, id).
		Scan(&prevStatus, &grandTotal, &paidAmount, &balancePayable, &hasExchange)
	if err != nil {
		return nil, err
	}

	netPayable := grandTotal
	if hasExchange {
		netPayable = balancePayable
	}

	newPaid := paidAmount
	switch req.PaymentStatus {
	case models.PaymentPaid:
		newPaid = netPayable
	case models.PaymentPartial:
		newPaid = paidAmount + req.Amount
		if newPaid >= netPayable {
			newPaid = netPayable
			req.PaymentStatus = models.PaymentPaid
		}
	case models.PaymentPending:
		// status reset, paid amount untouched
	default:
		return nil, fmt.Errorf("invalid payment status %q", req.PaymentStatus)
	}
	newDue := netPayable - newPaid

	if _, err := tx.Exec(ctx,
		`UPDATE bills SET payment_status=$1, payment_mode=COALESCE(NULLIF($2, ''), payment_mode),
             paid_amount=$3, due_amount=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		req.PaymentStatus, req.PaymentMode, newPaid, newDue, id); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO bill_payment_logs(bill_id, previous_status, new_status, payment_mode, amount, remarks, updated_by)
         VALUES($1, $2, $3, $4, $5, $6, $7)`,
		id, prevStatus, req.PaymentStatus, req.PaymentMode, req.Amount, req.Remarks, updatedBy); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// PaymentLogs returns the audit trail for a bill, oldest first
func (r *BillRepository) PaymentLogs(ctx context.Context, billID int) ([]models.BillPaymentLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, bill_id, previous_status, new_status, COALESCE(payment_mode, ''), amount, COALESCE(remarks, ''), updated_by, created_at
         FROM bill_payment_logs WHERE bill_id=$1 ORDER BY created_at`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.BillPaymentLog
	for rows.Next() {
		var l models.BillPaymentLog
		if err := rows.Scan(&l.ID, &l.BillID, &l.PreviousStatus, &l.NewStatus, &l.PaymentMode, &l.Amount, &l.Remarks, &l.UpdatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Archive soft-deletes a bill. The bill number stays reserved.
func (r *BillRepository) Archive(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bills SET status='archived', updated_at=CURRENT_TIMESTAMP
         WHERE id=$1 AND status='active'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	var itemsJSON, oldItemsJSON []byte

	err := row.Scan(&b.ID, &b.BillNumber, &b.FallbackNumber, &b.CustomerID,
		&b.Customer.Name, &b.Customer.Mobile, &b.Customer.Address,
		&b.Customer.PAN, &b.Customer.Aadhaar,
		&itemsJSON, &oldItemsJSON, &b.SubTotal, &b.HUIDCharges, &b.DiscountType,
		&b.DiscountAmount, &b.GSTBreakdown.CGST, &b.GSTBreakdown.SGST, &b.GSTBreakdown.IGST,
		&b.GSTTotal, &b.IsIntraState, &b.GrandTotal, &b.AmountInWords,
		&b.Exchange.HasExchange, &b.Exchange.OldItemsTotal,
		&b.Exchange.BalancePayable, &b.Exchange.BalanceRefundable,
		&b.PaymentMode, &b.PaymentStatus, &b.PaidAmount, &b.DueAmount, &b.Status,
		&b.CreatedBy, &b.CreatedByName, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &b.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(oldItemsJSON, &b.OldItems); err != nil {
		return nil, fmt.Errorf("unmarshal old items: %w", err)
	}

	b.BillDate = b.CreatedAt
	if b.Exchange.HasExchange {
		b.Exchange.NewItemsTotal = b.GrandTotal
	}
	return &b, nil
}
