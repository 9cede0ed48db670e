package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrOverlap indicates that a period conflicts with an existing one.
// It wraps ErrValidation so handlers can triage it as a 4xx.
var ErrOverlap = fmt.Errorf("%w: period overlaps an existing one", ErrValidation)

// ErrProviderUnavailable indicates that an upstream data provider could not be
// reached or returned an unusable response after retries were exhausted.
var ErrProviderUnavailable = errors.New("upstream provider unavailable")

// RuleFormatError reports a conditional rule whose condition string could not
// be parsed or evaluated. It is surfaced to the caller immediately; the
// evaluator never falls back to the base amount on a malformed rule, since
// that would mask data-entry mistakes.
type RuleFormatError struct {
	Condition string
	Reason    string
}

func (e *RuleFormatError) Error() string {
	return fmt.Sprintf("malformed rule condition %q: %s", e.Condition, e.Reason)
}

// NewRuleFormatError builds a RuleFormatError for the given condition string.
func NewRuleFormatError(condition, reason string) *RuleFormatError {
	return &RuleFormatError{Condition: condition, Reason: reason}
}
