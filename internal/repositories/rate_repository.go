package repositories

import (
	"context"

	"jewel-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRepository struct {
	DB *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{DB: db}
}

const rateColumns = `id, metal_type, rate_value, unit, purity_levels,
	making_charges_default, making_charges_type, gst_rate, active, updated_by,
	created_at, updated_at`

// Create publishes a new rate record. Earlier records for the metal stay in
// place as history; CurrentRates picks the newest active row per metal.
func (r *RateRepository) Create(ctx context.Context, rate *models.MetalRate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO metal_rates(metal_type, rate_value, unit, purity_levels,
             making_charges_default, making_charges_type, gst_rate, active, updated_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
         RETURNING id, created_at, updated_at`,
		rate.MetalType, rate.RateValue, rate.Unit, rate.PurityLevels,
		rate.MakingChargesDefault, rate.MakingChargesType, rate.GSTRate, rate.UpdatedBy,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt)
}

// GetActive returns the latest active rate for one metal type
func (r *RateRepository) GetActive(ctx context.Context, metalType string) (*models.MetalRate, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+rateColumns+`
         FROM metal_rates
         WHERE metal_type=$1 AND active=TRUE
         ORDER BY created_at DESC LIMIT 1`, metalType)
	return scanRate(row)
}

// CurrentRates returns the latest active rate per metal type. This is the
// snapshot fed to the billing engine.
func (r *RateRepository) CurrentRates(ctx context.Context) ([]models.MetalRate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT ON (metal_type) `+rateColumns+`
         FROM metal_rates
         WHERE active=TRUE
         ORDER BY metal_type, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.MetalRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, *rate)
	}
	return rates, rows.Err()
}

// History returns past rate records for one metal type, newest first
func (r *RateRepository) History(ctx context.Context, metalType string, limit int) ([]models.MetalRate, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	rows, err := r.DB.Query(ctx,
		`SELECT `+rateColumns+`
         FROM metal_rates
         WHERE metal_type=$1
         ORDER BY created_at DESC LIMIT $2`, metalType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.MetalRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, *rate)
	}
	return rates, rows.Err()
}

// Deactivate retires all active rates for a metal type
func (r *RateRepository) Deactivate(ctx context.Context, metalType string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE metal_rates SET active=FALSE, updated_at=CURRENT_TIMESTAMP
         WHERE metal_type=$1 AND active=TRUE`, metalType)
	return err
}

func scanRate(row pgx.Row) (*models.MetalRate, error) {
	var rate models.MetalRate
	err := row.Scan(&rate.ID, &rate.MetalType, &rate.RateValue, &rate.Unit, &rate.PurityLevels,
		&rate.MakingChargesDefault, &rate.MakingChargesType, &rate.GSTRate, &rate.Active, &rate.UpdatedBy,
		&rate.CreatedAt, &rate.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
