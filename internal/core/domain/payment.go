package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentRecord is a derived entity: the computed rent for one agreement and
// one calendar month, with the exchange rate it was computed from. Unique
// per (agreement, month, year); regeneration overwrites the prior value.
// It can always be rebuilt from the agreement plus the stored rates, so it
// is never a source of truth.
type PaymentRecord struct {
	PaymentID       string          `json:"paymentID"`
	AgreementID     string          `json:"agreementID"`
	Period          MonthYear       `json:"period"`
	LocalAmount     decimal.Decimal `json:"localAmount"`
	ReferenceAmount decimal.Decimal `json:"referenceAmount"`
	Rate            decimal.Decimal `json:"rate"`
	AuditFields
}
