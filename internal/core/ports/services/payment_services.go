package services

import (
	"context"
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
)

// PaymentReaderSvc defines read operations for payment records
type PaymentReaderSvc interface {
	// ListPayments retrieves the stored payment series for an agreement in
	// chronological order.
	ListPayments(ctx context.Context, agreementID string) ([]domain.PaymentRecord, error)
}

// PaymentGeneratorSvc regenerates the derived payment series.
type PaymentGeneratorSvc interface {
	// RecalculateSeries rebuilds the payment series for an agreement: one
	// record per calendar month from the agreement start through
	// min(agreement end, asOf). Months without a stored exchange rate are
	// skipped and returned as gaps so the caller can surface a warning.
	// Records are upserted, so repeated calls with identical inputs are
	// idempotent. asOf is an explicit parameter rather than the wall clock
	// so the bound is testable and never drifts mid-generation.
	RecalculateSeries(ctx context.Context, agreementID string, asOf time.Time) ([]domain.PaymentRecord, []domain.MonthYear, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentGeneratorSvc
}
