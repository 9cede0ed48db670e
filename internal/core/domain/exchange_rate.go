package domain

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the monthly average rate in local-currency units per
// one reference-currency unit (e.g. 34.5 TRY per USD). Unique per
// (month, year); treated as authoritative, append-only reference data.
type ExchangeRate struct {
	RateID string          `json:"rateID"`
	Period MonthYear       `json:"period"`
	Rate   decimal.Decimal `json:"rate"`
	Source string          `json:"source"`
	AuditFields
}
