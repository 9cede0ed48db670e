package domain

import (
	"github.com/shopspring/decimal"
)

// InflationData stores the annual inflation percentage for one calendar
// month. Consumed only by the legal maximum calculation.
type InflationData struct {
	InflationID string          `json:"inflationID"`
	Period      MonthYear       `json:"period"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	Source      string          `json:"source"`
	AuditFields
}
