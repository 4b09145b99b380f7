package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/metrics"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
)

type ExchangeService struct {
	Exchanges *repositories.ExchangeRepository
	Customers *repositories.CustomerRepository
	Rates     *RateService
	Engine    *billing.Engine
	Numbers   *billing.NumberGenerator
}

func NewExchangeService(
	exchanges *repositories.ExchangeRepository,
	customers *repositories.CustomerRepository,
	rates *RateService,
	engine *billing.Engine,
	shopPrefix string,
) *ExchangeService {
	return &ExchangeService{
		Exchanges: exchanges,
		Customers: customers,
		Rates:     rates,
		Engine:    engine,
		Numbers:   billing.NewNumberGenerator(shopPrefix),
	}
}

func validateExchangeRequest(req *models.CreateExchangeRequest) error {
	if req.Customer.Name == "" || req.Customer.Mobile == "" {
		return errors.New("customer name and mobile are required")
	}
	if len(req.OldItems) == 0 {
		return errors.New("at least one old item is required")
	}
	for i, item := range req.OldItems {
		if !models.ValidMetalType(item.MetalType) {
			return fmt.Errorf("old item %d: unknown metal type %q", i+1, item.MetalType)
		}
		if w := item.WastageDeduction; w != nil && (*w < 0 || *w > 100) {
			return fmt.Errorf("old item %d: wastage deduction must be between 0 and 100", i+1)
		}
	}
	for i, item := range req.NewItems {
		if !models.ValidMetalType(item.MetalType) {
			return fmt.Errorf("new item %d: unknown metal type %q", i+1, item.MetalType)
		}
		if item.MakingChargeDiscount < 0 || item.MakingChargeDiscount > 100 {
			return fmt.Errorf("new item %d: making charge discount must be between 0 and 100", i+1)
		}
	}
	return nil
}

// Calculate values an exchange without persisting it
func (s *ExchangeService) Calculate(ctx context.Context, req models.CreateExchangeRequest) (*models.Exchange, error) {
	if err := validateExchangeRequest(&req); err != nil {
		return nil, err
	}
	book, err := s.Rates.RateBook(ctx)
	if err != nil {
		return nil, err
	}
	oldItems, newItems, totals, err := s.Engine.AssembleExchange(book, req)
	if err != nil {
		return nil, err
	}
	return &models.Exchange{
		Customer: req.Customer,
		OldItems: oldItems,
		NewItems: newItems,
		Totals:   totals,
		Notes:    req.Notes,
	}, nil
}

// CreateExchange values and persists a standalone exchange calculation
func (s *ExchangeService) CreateExchange(ctx context.Context, req models.CreateExchangeRequest, createdBy *int) (*models.Exchange, error) {
	ex, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}
	ex.CreatedBy = createdBy

	customer, err := s.Customers.FindOrCreate(ctx, req.Customer)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	ex.CustomerID = &customer.ID

	if err := s.persistWithNumbering(ctx, ex); err != nil {
		return nil, err
	}
	metrics.ExchangesCreatedTotal.Inc()

	log.Printf("[Exchanges] Created %s for %s, old items total %.2f",
		ex.ExchangeNumber, ex.Customer.Name, ex.Totals.OldItemsTotal)
	return ex, nil
}

func (s *ExchangeService) persistWithNumbering(ctx context.Context, ex *models.Exchange) error {
	number, fallback := s.Numbers.NextExchangeNumber(ctx, s.Exchanges)
	ex.ExchangeNumber = number
	ex.FallbackNumber = fallback

	err := s.Exchanges.Create(ctx, ex)
	if !errors.Is(err, billing.ErrDuplicateNumber) {
		if err == nil && fallback {
			metrics.ExchangeNumberFallbacksTotal.Inc()
		}
		return err
	}

	// Concurrent exchange grabbed the sequence slot; recount and retry once
	metrics.ExchangeNumberRetriesTotal.Inc()
	number, fallback = s.Numbers.NextExchangeNumber(ctx, s.Exchanges)
	ex.ExchangeNumber = number
	ex.FallbackNumber = fallback
	err = s.Exchanges.Create(ctx, ex)
	if !errors.Is(err, billing.ErrDuplicateNumber) {
		if err == nil && fallback {
			metrics.ExchangeNumberFallbacksTotal.Inc()
		}
		return err
	}

	ex.ExchangeNumber = s.Numbers.FallbackExchangeNumber()
	ex.FallbackNumber = true
	if err := s.Exchanges.Create(ctx, ex); err != nil {
		return err
	}
	metrics.ExchangeNumberFallbacksTotal.Inc()
	return nil
}

func (s *ExchangeService) GetExchange(ctx context.Context, id int) (*models.Exchange, error) {
	return s.Exchanges.Get(ctx, id)
}

func (s *ExchangeService) GetByNumber(ctx context.Context, number string) (*models.Exchange, error) {
	return s.Exchanges.GetByNumber(ctx, number)
}

func (s *ExchangeService) ListExchanges(ctx context.Context, f repositories.ExchangeFilter) ([]*models.Exchange, error) {
	return s.Exchanges.List(ctx, f)
}

// CancelExchange voids a calculated exchange
func (s *ExchangeService) CancelExchange(ctx context.Context, id int) error {
	return s.Exchanges.Cancel(ctx, id)
}

// Stats aggregates exchange counters for the dashboard
func (s *ExchangeService) Stats(ctx context.Context) (*models.ExchangeStats, error) {
	return s.Exchanges.Stats(ctx)
}
