package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleKind discriminates the two conditional rule shapes observed in the data.
type RuleKind string

const (
	// RuleKindComparison is the legacy shape: a textual comparison against
	// the exchange rate (e.g. "< 40") paired with a flat amount.
	RuleKindComparison RuleKind = "comparison"
	// RuleKindDateRange carries an effective window plus a threshold and two
	// candidate amounts selected by which side of the threshold the rate
	// falls on.
	RuleKindDateRange RuleKind = "date_range"
)

// ConditionalRule is a tagged variant; Kind decides which fields are
// meaningful. Each shape carries exactly the fields its evaluation needs.
type ConditionalRule struct {
	Kind RuleKind `json:"kind"`

	// Comparison shape.
	Condition string          `json:"condition,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`

	// Date-range shape.
	StartDate time.Time       `json:"startDate,omitempty"`
	EndDate   time.Time       `json:"endDate,omitempty"`
	Threshold decimal.Decimal `json:"threshold,omitempty"`
	RentLow   decimal.Decimal `json:"rentLow,omitempty"`
	RentHigh  decimal.Decimal `json:"rentHigh,omitempty"`
}

// InWindow reports whether a date-range rule's [StartDate, EndDate] window
// contains the given date. Comparison rules have no window and always apply.
func (r ConditionalRule) InWindow(date time.Time) bool {
	if r.Kind != RuleKindDateRange {
		return true
	}
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// RentalAgreement records one rental contract. EndDate is nil for an
// ongoing, open-ended agreement. Rules is a small ordered list; an empty
// list means the base amount always applies.
type RentalAgreement struct {
	AgreementID string            `json:"agreementID"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	BaseAmount  decimal.Decimal   `json:"baseAmount"`
	Rules       []ConditionalRule `json:"rules,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	AuditFields
}

// ActiveThrough returns the last month the agreement produces a payment for,
// given the caller-supplied current date: the agreement's end month, capped
// at asOf's month.
func (a RentalAgreement) ActiveThrough(asOf time.Time) MonthYear {
	bound := MonthYearOf(asOf)
	if a.EndDate != nil {
		end := MonthYearOf(*a.EndDate)
		if bound.After(end) {
			return end
		}
	}
	return bound
}

// Overlaps reports whether two agreement periods share any day. A nil
// EndDate is treated as extending indefinitely.
func (a RentalAgreement) Overlaps(other RentalAgreement) bool {
	if a.EndDate != nil && a.EndDate.Before(other.StartDate) {
		return false
	}
	if other.EndDate != nil && other.EndDate.Before(a.StartDate) {
		return false
	}
	return true
}
