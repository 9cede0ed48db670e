package repositories

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
)

// AgreementReader defines read operations for rental agreement data
type AgreementReader interface {
	// FindAgreementByID retrieves a single agreement by its ID.
	FindAgreementByID(ctx context.Context, agreementID string) (*domain.RentalAgreement, error)

	// ListAgreements retrieves all agreements ordered by start date.
	ListAgreements(ctx context.Context) ([]domain.RentalAgreement, error)
}

// AgreementWriter defines write operations for rental agreement data
type AgreementWriter interface {
	// SaveAgreement persists a new agreement.
	SaveAgreement(ctx context.Context, agreement domain.RentalAgreement) error

	// UpdateAgreement overwrites an existing agreement.
	UpdateAgreement(ctx context.Context, agreement domain.RentalAgreement) error

	// DeleteAgreement removes an agreement and its derived payment records.
	DeleteAgreement(ctx context.Context, agreementID string) error
}

// AgreementRepositoryFacade combines all agreement-related repository interfaces
type AgreementRepositoryFacade interface {
	AgreementReader
	AgreementWriter
}
