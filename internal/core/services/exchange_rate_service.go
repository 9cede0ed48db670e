package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portsprov "github.com/selimgur/kiraci/internal/core/ports/providers"
	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for monthly exchange rates.
type ExchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	provider portsprov.RateProvider
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider portsprov.RateProvider) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo, provider: provider}
}

// UpsertRate validates and persists a manually entered monthly rate,
// overwriting any prior value for the same (month, year).
func (s *ExchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	period := domain.MonthYear{Month: req.Month, Year: req.Year}
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		RateID:      uuid.NewString(),
		Period:      period,
		Rate:        req.Rate,
		Source:      source,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate in service: %w", err)
	}
	return &rate, nil
}

// GetRate retrieves the stored rate for a calendar month.
func (s *ExchangeRateService) GetRate(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	rate, err := s.rateRepo.FindRateByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all stored rates in chronological order.
func (s *ExchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// FetchRate pulls the monthly average from the upstream provider and stores
// it. Provider absence (the month has no published data yet) surfaces as
// ErrNotFound; transport failures as ErrProviderUnavailable.
func (s *ExchangeRateService) FetchRate(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	value, err := s.provider.FetchMonthlyAverage(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate for %s: %w", period, err)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		RateID:      uuid.NewString(),
		Period:      period,
		Rate:        value,
		Source:      "tcmb",
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to store fetched rate: %w", err)
	}
	return &rate, nil
}
