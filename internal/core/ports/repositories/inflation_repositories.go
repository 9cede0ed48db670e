package repositories

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
)

// InflationReader defines read operations for inflation data
type InflationReader interface {
	// FindInflationByPeriod retrieves the inflation figure for a calendar month.
	FindInflationByPeriod(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error)

	// ListInflation retrieves all stored inflation figures in chronological order.
	ListInflation(ctx context.Context) ([]domain.InflationData, error)
}

// InflationWriter defines write operations for inflation data
type InflationWriter interface {
	// UpsertInflation persists an inflation figure, overwriting any prior
	// value for the same (month, year).
	UpsertInflation(ctx context.Context, data domain.InflationData) error
}

// InflationRepositoryFacade combines all inflation-related repository interfaces
type InflationRepositoryFacade interface {
	InflationReader
	InflationWriter
}
