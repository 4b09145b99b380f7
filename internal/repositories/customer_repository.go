package repositories

import (
	"context"
	"errors"

	"jewel-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, mobile, address, dob, pan, aadhaar)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Mobile, c.Address, c.DOB, c.PAN, c.Aadhaar,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, mobile, COALESCE(address, ''), dob, COALESCE(pan, ''), COALESCE(aadhaar, ''), created_at, updated_at
         FROM customers WHERE id=$1`, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) GetByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, mobile, COALESCE(address, ''), dob, COALESCE(pan, ''), COALESCE(aadhaar, ''), created_at, updated_at
         FROM customers WHERE mobile=$1`, mobile)
	return scanCustomer(row)
}

// FindOrCreate looks up a customer by mobile and creates one if absent.
// An existing customer gets its details refreshed from the snapshot when
// the snapshot carries more information.
func (r *CustomerRepository) FindOrCreate(ctx context.Context, info models.CustomerInfo) (*models.Customer, error) {
	existing, err := r.GetByMobile(ctx, info.Mobile)
	if err == nil {
		if updateCustomerFromInfo(existing, info) {
			if _, err := r.DB.Exec(ctx,
				`UPDATE customers SET name=$1, address=$2, dob=$3, pan=$4, aadhaar=$5, updated_at=CURRENT_TIMESTAMP
                 WHERE id=$6`,
				existing.Name, existing.Address, existing.DOB, existing.PAN, existing.Aadhaar, existing.ID); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	c := &models.Customer{
		Name:    info.Name,
		Mobile:  info.Mobile,
		Address: info.Address,
		DOB:     info.DOB,
		PAN:     info.PAN,
		Aadhaar: info.Aadhaar,
	}
	if err := r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Search finds customers by name prefix or mobile fragment
func (r *CustomerRepository) Search(ctx context.Context, q string, limit int) ([]*models.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, mobile, COALESCE(address, ''), dob, COALESCE(pan, ''), COALESCE(aadhaar, ''), created_at, updated_at
         FROM customers
         WHERE name ILIKE $1 OR mobile LIKE $2
         ORDER BY name LIMIT $3`,
		q+"%", "%"+q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Mobile, &c.Address, &c.DOB, &c.PAN, &c.Aadhaar, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Mobile, &c.Address, &c.DOB, &c.PAN, &c.Aadhaar, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// updateCustomerFromInfo merges non-empty snapshot fields into the stored
// customer. Returns true when anything changed.
func updateCustomerFromInfo(c *models.Customer, info models.CustomerInfo) bool {
	changed := false
	if info.Name != "" && info.Name != c.Name {
		c.Name = info.Name
		changed = true
	}
	if info.Address != "" && info.Address != c.Address {
		c.Address = info.Address
		changed = true
	}
	if info.DOB != nil {
		c.DOB = info.DOB
		changed = true
	}
	if info.PAN != "" && info.PAN != c.PAN {
		c.PAN = info.PAN
		changed = true
	}
	if info.Aadhaar != "" && info.Aadhaar != c.Aadhaar {
		c.Aadhaar = info.Aadhaar
		changed = true
	}
	return changed
}
