package repositories

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
// This is the narrow lookup interface the payment series generator depends
// on: a month with no stored rate is reported as apperrors.ErrNotFound,
// which is distinct from both a zero rate and a storage failure.
type ExchangeRateReader interface {
	// FindRateByPeriod retrieves the rate for a calendar month.
	FindRateByPeriod(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error)

	// ListRates retrieves all stored rates in chronological order.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertRate persists a rate, overwriting any prior value for the same
	// (month, year).
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
