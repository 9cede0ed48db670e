package services

import (
	"context"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/selimgur/kiraci/internal/dto"
)

// AgreementReaderSvc defines read operations for rental agreements
type AgreementReaderSvc interface {
	// GetAgreementByID retrieves a single agreement.
	GetAgreementByID(ctx context.Context, agreementID string) (*domain.RentalAgreement, error)

	// ListAgreements retrieves all agreements ordered by start date.
	ListAgreements(ctx context.Context) ([]domain.RentalAgreement, error)
}

// AgreementWriterSvc defines write operations for rental agreements
type AgreementWriterSvc interface {
	// CreateAgreement validates and persists a new agreement.
	CreateAgreement(ctx context.Context, req dto.CreateAgreementRequest) (*domain.RentalAgreement, error)

	// UpdateAgreement validates and overwrites an existing agreement.
	UpdateAgreement(ctx context.Context, agreementID string, req dto.UpdateAgreementRequest) (*domain.RentalAgreement, error)

	// DeleteAgreement removes an agreement and its derived payment records.
	DeleteAgreement(ctx context.Context, agreementID string) error
}

// AgreementSvcFacade combines all agreement-related service interfaces
type AgreementSvcFacade interface {
	AgreementReaderSvc
	AgreementWriterSvc
}
