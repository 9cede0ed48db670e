package repositories

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
)

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	// ListPaymentsByAgreement retrieves all payment records for an agreement
	// in chronological order.
	ListPaymentsByAgreement(ctx context.Context, agreementID string) ([]domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	// UpsertPayments persists a batch of payment records; records with the
	// same (agreement, month, year) overwrite the existing row, so
	// regeneration is idempotent.
	UpsertPayments(ctx context.Context, records []domain.PaymentRecord) error

	// DeletePaymentsByAgreement removes all payment records for an agreement.
	DeletePaymentsByAgreement(ctx context.Context, agreementID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
