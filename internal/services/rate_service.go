package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/cache"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
)

type RateService struct {
	Repo *repositories.RateRepository
}

func NewRateService(repo *repositories.RateRepository) *RateService {
	return &RateService{Repo: repo}
}

// PublishRate records a new rate for a metal type. The previous rate stays
// as history; billing always reads the newest active rate.
func (s *RateService) PublishRate(ctx context.Context, req *models.UpdateRateRequest, updatedBy *int) (*models.MetalRate, error) {
	if !models.ValidMetalType(req.MetalType) {
		return nil, errors.New("unknown metal type: " + req.MetalType)
	}
	if req.RateValue <= 0 {
		return nil, errors.New("rate value must be positive")
	}
	if req.Unit == "" {
		req.Unit = models.UnitKg
	}
	if !models.ValidRateUnit(req.Unit) {
		return nil, errors.New("unknown rate unit: " + req.Unit)
	}
	if req.MakingChargesType == "" {
		req.MakingChargesType = models.MakingPercentage
	}

	rate := &models.MetalRate{
		MetalType:            req.MetalType,
		RateValue:            req.RateValue,
		Unit:                 req.Unit,
		PurityLevels:         req.PurityLevels,
		MakingChargesDefault: req.MakingChargesDefault,
		MakingChargesType:    req.MakingChargesType,
		GSTRate:              req.GSTRate,
		Active:               true,
		UpdatedBy:            updatedBy,
	}
	// Retire the previous rate so exactly one record per metal is active;
	// history keeps the retired rows.
	if err := s.Repo.Deactivate(ctx, rate.MetalType); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, rate); err != nil {
		return nil, err
	}

	cache.InvalidateRates(ctx)
	log.Printf("[Rates] %s rate published: %.2f per %s", rate.MetalType, rate.RateValue, rate.Unit)
	return rate, nil
}

// CurrentRates returns the latest active rate per metal, via cache when warm
func (s *RateService) CurrentRates(ctx context.Context) ([]models.MetalRate, error) {
	if data, ok := cache.GetCachedRates(ctx); ok {
		var rates []models.MetalRate
		if err := json.Unmarshal(data, &rates); err == nil {
			return rates, nil
		}
		// corrupt cache entry, fall through to the database
		cache.InvalidateRates(ctx)
	}

	rates, err := s.Repo.CurrentRates(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rates); err == nil {
		cache.CacheRates(ctx, data)
	}
	return rates, nil
}

// RateBook snapshots the current rates for one bill or exchange
// calculation. Every amount on that document prices off this snapshot.
func (s *RateService) RateBook(ctx context.Context) (*billing.RateBook, error) {
	rates, err := s.CurrentRates(ctx)
	if err != nil {
		return nil, err
	}
	return billing.NewRateBook(rates), nil
}

// GetRate returns the current rate for one metal type
func (s *RateService) GetRate(ctx context.Context, metalType string) (*models.MetalRate, error) {
	if !models.ValidMetalType(metalType) {
		return nil, errors.New("unknown metal type: " + metalType)
	}
	return s.Repo.GetActive(ctx, metalType)
}

// History returns past rates for one metal type
func (s *RateService) History(ctx context.Context, metalType string, limit int) ([]models.MetalRate, error) {
	if !models.ValidMetalType(metalType) {
		return nil, errors.New("unknown metal type: " + metalType)
	}
	return s.Repo.History(ctx, metalType, limit)
}
