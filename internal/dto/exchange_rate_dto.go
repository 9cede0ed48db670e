package dto

import (
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for manually entering a
// monthly exchange rate. Re-submitting the same (month, year) overwrites the
// stored value.
type UpsertExchangeRateRequest struct {
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Year   int             `json:"year" binding:"required,min=1900,max=2200"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
	Source string          `json:"source,omitempty"`
}

// ExchangeRateResponse defines the structure for API responses containing
// exchange rate details.
type ExchangeRateResponse struct {
	RateID        string          `json:"rateID"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Rate          decimal.Decimal `json:"rate"`
	Source        string          `json:"source"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:        rate.RateID,
		Month:         rate.Period.Month,
		Year:          rate.Period.Year,
		Rate:          rate.Rate,
		Source:        rate.Source,
		CreatedAt:     rate.CreatedAt,
		LastUpdatedAt: rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
