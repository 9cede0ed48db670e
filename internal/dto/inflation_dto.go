package dto

import (
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertInflationRequest defines the structure for manually entering a
// monthly inflation figure.
type UpsertInflationRequest struct {
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=1900,max=2200"`
	RatePercent decimal.Decimal `json:"ratePercent" binding:"required"`
	Source      string          `json:"source,omitempty"`
}

// InflationResponse defines the structure for API responses containing
// inflation details.
type InflationResponse struct {
	InflationID   string          `json:"inflationID"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	RatePercent   decimal.Decimal `json:"ratePercent"`
	Source        string          `json:"source"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToInflationResponse converts a domain.InflationData to InflationResponse.
func ToInflationResponse(data *domain.InflationData) InflationResponse {
	return InflationResponse{
		InflationID:   data.InflationID,
		Month:         data.Period.Month,
		Year:          data.Period.Year,
		RatePercent:   data.RatePercent,
		Source:        data.Source,
		CreatedAt:     data.CreatedAt,
		LastUpdatedAt: data.LastUpdatedAt,
	}
}

// ToListInflationResponse converts a slice of inflation figures to response DTOs.
func ToListInflationResponse(figures []domain.InflationData) []InflationResponse {
	responses := make([]InflationResponse, len(figures))
	for i := range figures {
		responses[i] = ToInflationResponse(&figures[i])
	}
	return responses
}

// LegalMaxRequest asks for the maximum legal rent increase for a period.
type LegalMaxRequest struct {
	BaseAmount decimal.Decimal `json:"baseAmount" binding:"required"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Year       int             `json:"year" binding:"required,min=1900,max=2200"`
}

// LegalMaxResponse carries the computed legal maximum. RatePercent is nil
// when no inflation data exists for the period, in which case MaxAmount
// equals BaseAmount (no increase without data).
type LegalMaxResponse struct {
	BaseAmount  decimal.Decimal  `json:"baseAmount"`
	MaxAmount   decimal.Decimal  `json:"maxAmount"`
	RatePercent *decimal.Decimal `json:"ratePercent,omitempty"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
}
