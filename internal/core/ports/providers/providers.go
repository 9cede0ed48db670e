package providers

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider fetches monthly average exchange rates from an upstream
// source (TCMB). A month the source has no data for yet is reported as
// apperrors.ErrNotFound; transport or parse failures after retries are
// wrapped in apperrors.ErrProviderUnavailable.
type RateProvider interface {
	FetchMonthlyAverage(ctx context.Context, period domain.MonthYear) (decimal.Decimal, error)
}

// InflationProvider fetches monthly annual-change inflation percentages from
// an upstream source (OECD). Absence and failure are distinguished the same
// way as for RateProvider.
type InflationProvider interface {
	FetchMonthlyRate(ctx context.Context, period domain.MonthYear) (decimal.Decimal, error)
}
