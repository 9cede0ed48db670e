package dto

import (
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConditionalRuleRequest carries one conditional rule in agreement
// create/update requests. Kind decides which of the remaining fields must be
// set; cross-field checks happen in the service layer.
type ConditionalRuleRequest struct {
	Kind string `json:"kind" binding:"required,oneof=comparison date_range"`

	// comparison
	Condition string          `json:"condition,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`

	// date_range
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	Threshold decimal.Decimal `json:"threshold,omitempty"`
	RentLow   decimal.Decimal `json:"rentLow,omitempty"`
	RentHigh  decimal.Decimal `json:"rentHigh,omitempty"`
}

// CreateAgreementRequest defines the structure for creating a rental agreement.
type CreateAgreementRequest struct {
	StartDate  time.Time                `json:"startDate" binding:"required"`
	EndDate    *time.Time               `json:"endDate,omitempty"`
	BaseAmount decimal.Decimal          `json:"baseAmount" binding:"required"`
	Rules      []ConditionalRuleRequest `json:"rules,omitempty" binding:"omitempty,dive"`
	Notes      string                   `json:"notes,omitempty"`
}

// UpdateAgreementRequest defines the structure for updating a rental
// agreement. All fields are replaced; payment records hold snapshot amounts,
// so no other entity keeps a stale reference.
type UpdateAgreementRequest struct {
	StartDate  time.Time                `json:"startDate" binding:"required"`
	EndDate    *time.Time               `json:"endDate,omitempty"`
	BaseAmount decimal.Decimal          `json:"baseAmount" binding:"required"`
	Rules      []ConditionalRuleRequest `json:"rules,omitempty" binding:"omitempty,dive"`
	Notes      string                   `json:"notes,omitempty"`
}

// AgreementResponse defines the structure for API responses containing
// agreement details.
type AgreementResponse struct {
	AgreementID   string                   `json:"agreementID"`
	StartDate     time.Time                `json:"startDate"`
	EndDate       *time.Time               `json:"endDate,omitempty"`
	BaseAmount    decimal.Decimal          `json:"baseAmount"`
	Rules         []domain.ConditionalRule `json:"rules,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// ToAgreementResponse converts a domain.RentalAgreement to AgreementResponse.
func ToAgreementResponse(a *domain.RentalAgreement) AgreementResponse {
	return AgreementResponse{
		AgreementID:   a.AgreementID,
		StartDate:     a.StartDate,
		EndDate:       a.EndDate,
		BaseAmount:    a.BaseAmount,
		Rules:         a.Rules,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ToListAgreementResponse converts a slice of agreements to response DTOs.
func ToListAgreementResponse(agreements []domain.RentalAgreement) []AgreementResponse {
	responses := make([]AgreementResponse, len(agreements))
	for i := range agreements {
		responses[i] = ToAgreementResponse(&agreements[i])
	}
	return responses
}
