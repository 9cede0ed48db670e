package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portsprov "github.com/selimgur/kiraci/internal/core/ports/providers"
	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/utils/rentcalc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InflationService provides business logic for inflation data and the legal
// maximum rent increase derived from it.
type InflationService struct {
	inflationRepo portsrepo.InflationRepositoryFacade
	provider      portsprov.InflationProvider
}

// NewInflationService creates a new InflationService.
func NewInflationService(inflationRepo portsrepo.InflationRepositoryFacade, provider portsprov.InflationProvider) *InflationService {
	return &InflationService{inflationRepo: inflationRepo, provider: provider}
}

// UpsertInflation validates and persists a manually entered monthly figure.
func (s *InflationService) UpsertInflation(ctx context.Context, req dto.UpsertInflationRequest) (*domain.InflationData, error) {
	period := domain.MonthYear{Month: req.Month, Year: req.Year}
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.RatePercent.IsNegative() {
		return nil, fmt.Errorf("%w: inflation rate cannot be negative", apperrors.ErrValidation)
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	now := time.Now().UTC()
	data := domain.InflationData{
		InflationID: uuid.NewString(),
		Period:      period,
		RatePercent: req.RatePercent,
		Source:      source,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.inflationRepo.UpsertInflation(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save inflation data in service: %w", err)
	}
	return &data, nil
}

// GetInflation retrieves the stored figure for a calendar month.
func (s *InflationService) GetInflation(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	data, err := s.inflationRepo.FindInflationByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to get inflation data in service: %w", err)
	}
	return data, nil
}

// ListInflation retrieves all stored figures in chronological order.
func (s *InflationService) ListInflation(ctx context.Context) ([]domain.InflationData, error) {
	figures, err := s.inflationRepo.ListInflation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inflation data in service: %w", err)
	}
	if figures == nil {
		return []domain.InflationData{}, nil
	}
	return figures, nil
}

// FetchInflation pulls the figure from the upstream provider and stores it.
func (s *InflationService) FetchInflation(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	value, err := s.provider.FetchMonthlyRate(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inflation for %s: %w", period, err)
	}

	now := time.Now().UTC()
	data := domain.InflationData{
		InflationID: uuid.NewString(),
		Period:      period,
		RatePercent: value,
		Source:      "oecd",
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.inflationRepo.UpsertInflation(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to store fetched inflation: %w", err)
	}
	return &data, nil
}

// LegalMax applies the stored inflation percentage for the period to the
// base amount. With no data for the period the base amount comes back
// unchanged: no increase without data is the conservative default, and it is
// not an error.
func (s *InflationService) LegalMax(ctx context.Context, baseAmount decimal.Decimal, period domain.MonthYear) (decimal.Decimal, *domain.InflationData, error) {
	if baseAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil, fmt.Errorf("%w: base amount must be positive", apperrors.ErrValidation)
	}
	if err := period.Validate(); err != nil {
		return decimal.Zero, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	data, err := s.inflationRepo.FindInflationByPeriod(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return baseAmount, nil, nil
		}
		return decimal.Zero, nil, fmt.Errorf("failed to look up inflation for legal max: %w", err)
	}
	return rentcalc.LegalMax(baseAmount, data.RatePercent), data, nil
}
