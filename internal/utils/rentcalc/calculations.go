// Package rentcalc holds the pure rent calculation logic: conditional rule
// evaluation and the legal maximum increase. Both are side-effect free and
// used by services as well as tests.
package rentcalc

import (
	"strings"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Evaluate returns the monthly rent in local currency for the given
// agreement, exchange rate and calendar date. The date is the month being
// computed, never "today": conditional rules are matched against the month
// the payment belongs to, so a rule whose window starts in a future month
// cannot leak into earlier months of the series.
//
// Resolution order: the first rule that applies to evaluationDate wins. A
// date-range rule applies when its window contains the date; a comparison
// rule applies when its condition matches the rate. When nothing applies the
// base amount is returned.
func Evaluate(agreement domain.RentalAgreement, exchangeRate decimal.Decimal, evaluationDate time.Time) (decimal.Decimal, error) {
	for _, rule := range agreement.Rules {
		switch rule.Kind {
		case domain.RuleKindDateRange:
			if !rule.InWindow(evaluationDate) {
				continue
			}
			// The threshold itself resolves to the high branch.
			if exchangeRate.LessThan(rule.Threshold) {
				return rule.RentLow, nil
			}
			return rule.RentHigh, nil
		case domain.RuleKindComparison:
			matched, err := EvalCondition(rule.Condition, exchangeRate)
			if err != nil {
				return decimal.Zero, err
			}
			if matched {
				return rule.Amount, nil
			}
		default:
			return decimal.Zero, apperrors.NewRuleFormatError(string(rule.Kind), "unknown rule kind")
		}
	}
	return agreement.BaseAmount, nil
}

// EvalCondition evaluates a legacy comparison condition such as "< 40" or
// ">= 40" against the exchange rate.
func EvalCondition(condition string, rate decimal.Decimal) (bool, error) {
	op, comparand, err := ParseCondition(condition)
	if err != nil {
		return false, err
	}
	cmp := rate.Cmp(comparand)
	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	case "==", "=":
		return cmp == 0, nil
	}
	// Unreachable: ParseCondition only returns the operators above.
	return false, apperrors.NewRuleFormatError(condition, "unsupported operator "+op)
}

// ParseCondition splits a condition string into its comparison operator and
// numeric comparand. Malformed input yields a RuleFormatError naming the
// condition so data-entry mistakes surface instead of being defaulted away.
func ParseCondition(condition string) (string, decimal.Decimal, error) {
	trimmed := strings.TrimSpace(condition)
	if trimmed == "" {
		return "", decimal.Zero, apperrors.NewRuleFormatError(condition, "empty condition")
	}

	var op string
	// Two-character operators first so "<=" is not read as "<".
	for _, candidate := range []string{"<=", ">=", "==", "<", ">", "="} {
		if strings.HasPrefix(trimmed, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return "", decimal.Zero, apperrors.NewRuleFormatError(condition, "missing comparison operator")
	}

	operand := strings.TrimSpace(trimmed[len(op):])
	if operand == "" {
		return "", decimal.Zero, apperrors.NewRuleFormatError(condition, "missing comparand")
	}
	comparand, err := decimal.NewFromString(operand)
	if err != nil {
		return "", decimal.Zero, apperrors.NewRuleFormatError(condition, "comparand is not a number")
	}
	return op, comparand, nil
}

// LegalMax computes the maximum legally allowed rent after applying an
// inflation percentage: base * (1 + pct/100), rounded to cents.
func LegalMax(base decimal.Decimal, inflationPercent decimal.Decimal) decimal.Decimal {
	return base.Mul(hundred.Add(inflationPercent)).Div(hundred).Round(2)
}

// ReferenceAmount converts a local amount to the reference currency at the
// given rate, rounded to cents. A zero rate yields zero rather than a
// division panic; callers validate rates are positive before storing them.
func ReferenceAmount(localAmount, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return localAmount.Div(rate).Round(2)
}
