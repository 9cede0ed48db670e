package services

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate retrieves the stored rate for a calendar month.
	GetRate(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error)

	// ListRates retrieves all stored rates in chronological order.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpsertRate validates and persists a manually entered rate.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error)

	// FetchRate pulls the monthly average from the upstream provider and
	// stores it, overwriting any manual entry for the same month.
	FetchRate(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// InflationReaderSvc defines read operations for inflation data
type InflationReaderSvc interface {
	// GetInflation retrieves the stored inflation figure for a calendar month.
	GetInflation(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error)

	// ListInflation retrieves all stored inflation figures in chronological order.
	ListInflation(ctx context.Context) ([]domain.InflationData, error)
}

// InflationWriterSvc defines write operations for inflation data
type InflationWriterSvc interface {
	// UpsertInflation validates and persists a manually entered figure.
	UpsertInflation(ctx context.Context, req dto.UpsertInflationRequest) (*domain.InflationData, error)

	// FetchInflation pulls the figure from the upstream provider and stores it.
	FetchInflation(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error)
}

// LegalMaxSvc computes the legally allowed maximum rent increase.
type LegalMaxSvc interface {
	// LegalMax applies the stored inflation percentage for the period to the
	// base amount. When no inflation data exists for the period the base
	// amount is returned unchanged and the returned InflationData is nil.
	LegalMax(ctx context.Context, baseAmount decimal.Decimal, period domain.MonthYear) (decimal.Decimal, *domain.InflationData, error)
}

// InflationSvcFacade combines all inflation-related service interfaces
type InflationSvcFacade interface {
	InflationReaderSvc
	InflationWriterSvc
	LegalMaxSvc
}
