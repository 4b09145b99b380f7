package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/models"
	"jewel-backend/internal/timeutil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExchangeRepository struct {
	DB *pgxpool.Pool
}

func NewExchangeRepository(db *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{DB: db}
}

// ExchangeFilter narrows List results. Zero values mean "no filter".
type ExchangeFilter struct {
	Mobile string
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

const exchangeColumns = `id, exchange_number, fallback_number, customer_id,
	customer_name, customer_mobile, COALESCE(customer_address, ''),
	old_items, new_items, old_items_total, new_items_total,
	balance_payable, balance_refundable, status, COALESCE(linked_bill_number, ''),
	COALESCE(notes, ''), created_by, created_at, updated_at`

// Create persists an exchange calculation. A number collision surfaces as
// billing.ErrDuplicateNumber for the service retry.
func (r *ExchangeRepository) Create(ctx context.Context, ex *models.Exchange) error {
	oldItemsJSON, err := json.Marshal(ex.OldItems)
	if err != nil {
		return fmt.Errorf("marshal old items: %w", err)
	}
	newItemsJSON, err := json.Marshal(ex.NewItems)
	if err != nil {
		return fmt.Errorf("marshal new items: %w", err)
	}

	err = r.DB.QueryRow(ctx,
		`INSERT INTO exchanges(exchange_number, fallback_number, customer_id,
             customer_name, customer_mobile, customer_address,
             old_items, new_items, old_items_total, new_items_total,
             balance_payable, balance_refundable, status, notes, created_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
         RETURNING id, created_at, updated_at`,
		ex.ExchangeNumber, ex.FallbackNumber, ex.CustomerID,
		ex.Customer.Name, ex.Customer.Mobile, ex.Customer.Address,
		oldItemsJSON, newItemsJSON, ex.Totals.OldItemsTotal, ex.Totals.NewItemsTotal,
		ex.Totals.BalancePayable, ex.Totals.BalanceRefundable,
		models.ExchangeCalculated, ex.Notes, ex.CreatedBy,
	).Scan(&ex.ID, &ex.CreatedAt, &ex.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return billing.ErrDuplicateNumber
		}
		return err
	}

	ex.ExchangeStatus = models.ExchangeCalculated
	ex.Status = models.StatusActive
	ex.ExchangeDate = ex.CreatedAt
	return nil
}

func (r *ExchangeRepository) Get(ctx context.Context, id int) (*models.Exchange, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges WHERE id=$1`, id)
	return scanExchange(row)
}

func (r *ExchangeRepository) GetByNumber(ctx context.Context, number string) (*models.Exchange, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+exchangeColumns+` FROM exchanges WHERE exchange_number=$1`, number)
	return scanExchange(row)
}

// List returns non-cancelled exchanges newest first
func (r *ExchangeRepository) List(ctx context.Context, f ExchangeFilter) ([]*models.Exchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchanges WHERE status <> 'cancelled'`
	args := []interface{}{}
	n := 0

	add := func(clause string, val interface{}) {
		n++
		query += fmt.Sprintf(" AND "+clause, n)
		args = append(args, val)
	}

	if f.Mobile != "" {
		add("customer_mobile = $%d", f.Mobile)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if !f.From.IsZero() {
		add("created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("created_at < $%d", f.To)
	}

	query += " ORDER BY created_at DESC"
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

	var exchanges []*models.Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, rows.Err()
}

// CountByDatePrefix counts exchanges whose number starts with the prefix
func (r *ExchangeRepository) CountByDatePrefix(ctx context.Context, prefix string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM exchanges WHERE exchange_number LIKE $1`, prefix+"%").Scan(&count)
	return count, err
}

// MarkConverted links an exchange to the bill that consumed it. Only a
// calculated exchange can convert.
func (r *ExchangeRepository) MarkConverted(ctx context.Context, id int, billNumber string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE exchanges SET status=$1, linked_bill_number=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3 AND status=$4`,
		models.ExchangeConvertedToBill, billNumber, id, models.ExchangeCalculated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %d is not in calculated state", id)
	}
	return nil
}

// Cancel marks a calculated exchange as cancelled
func (r *ExchangeRepository) Cancel(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE exchanges SET status=$1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2 AND status=$3`,
		models.ExchangeCancelled, id, models.ExchangeCalculated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %d is not in calculated state", id)
	}
	return nil
}

// Stats aggregates exchange counters for the dashboard
func (r *ExchangeRepository) Stats(ctx context.Context) (*models.ExchangeStats, error) {
	monthStart := timeutil.StartOfMonth(timeutil.Now())

	var stats models.ExchangeStats
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*),
                COUNT(*) FILTER (WHERE created_at >= $1),
                COALESCE(SUM(old_items_total), 0),
                COALESCE(SUM(old_items_total) FILTER (WHERE created_at >= $1), 0)
         FROM exchanges WHERE status <> 'cancelled'`, monthStart).
		Scan(&stats.TotalExchanges, &stats.MonthExchanges, &stats.TotalValue, &stats.MonthlyValue)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanExchange(row pgx.Row) (*models.Exchange, error) {
	var ex models.Exchange
	var oldItemsJSON, newItemsJSON []byte

	err := row.Scan(&ex.ID, &ex.ExchangeNumber, &ex.FallbackNumber, &ex.CustomerID,
		&ex.Customer.Name, &ex.Customer.Mobile, &ex.Customer.Address,
		&oldItemsJSON, &newItemsJSON, &ex.Totals.OldItemsTotal, &ex.Totals.NewItemsTotal,
		&ex.Totals.BalancePayable, &ex.Totals.BalanceRefundable,
		&ex.ExchangeStatus, &ex.LinkedBillNumber, &ex.Notes,
		&ex.CreatedBy, &ex.CreatedAt, &ex.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(oldItemsJSON, &ex.OldItems); err != nil {
		return nil, fmt.Errorf("unmarshal old items: %w", err)
	}
	if err := json.Unmarshal(newItemsJSON, &ex.NewItems); err != nil {
		return nil, fmt.Errorf("unmarshal new items: %w", err)
	}

	ex.Status = models.StatusActive
	ex.ExchangeDate = ex.CreatedAt
	return &ex, nil
}
