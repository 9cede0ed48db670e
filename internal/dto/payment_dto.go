package dto

import (
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentResponse defines the structure for API responses containing one
// computed monthly payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	AgreementID     string          `json:"agreementID"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	LocalAmount     decimal.Decimal `json:"localAmount"`
	ReferenceAmount decimal.Decimal `json:"referenceAmount"`
	Rate            decimal.Decimal `json:"rate"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// PaymentSeriesResponse is the result of regenerating an agreement's payment
// series. MissingPeriods lists the months skipped because no exchange rate
// was stored for them, so the UI can warn instead of silently showing a
// shorter series.
type PaymentSeriesResponse struct {
	Payments       []PaymentResponse  `json:"payments"`
	MissingPeriods []domain.MonthYear `json:"missingPeriods,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentRecord to PaymentResponse.
func ToPaymentResponse(p *domain.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		AgreementID:     p.AgreementID,
		Month:           p.Period.Month,
		Year:            p.Period.Year,
		LocalAmount:     p.LocalAmount,
		ReferenceAmount: p.ReferenceAmount,
		Rate:            p.Rate,
		LastUpdatedAt:   p.LastUpdatedAt,
	}
}

// ToPaymentSeriesResponse builds the series response from generated records
// and the skipped months.
func ToPaymentSeriesResponse(records []domain.PaymentRecord, gaps []domain.MonthYear) PaymentSeriesResponse {
	payments := make([]PaymentResponse, len(records))
	for i := range records {
		payments[i] = ToPaymentResponse(&records[i])
	}
	return PaymentSeriesResponse{Payments: payments, MissingPeriods: gaps}
}
