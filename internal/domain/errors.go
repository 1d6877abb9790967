package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested catalog entry or booked trip does
// not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a wizard step's input fails a business rule
// (missing field, malformed date, inverted date range, unknown selection).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBudgetExceeded is returned when a trip's total cost is greater than the
// remaining wallet budget.
// Handlers should map this to HTTP 409 Conflict.
var ErrBudgetExceeded = errors.New("budget exceeded")

// ErrOutOfRange is returned by index-based repository operations when the
// index is outside [0, n). It wraps ErrNotFound so callers that only care
// about "nothing there" can match either.
var ErrOutOfRange = fmt.Errorf("index out of range: %w", ErrNotFound)

// ErrStorageUnavailable is returned when the persisted trip store cannot be
// read or written.
// Handlers should map this to HTTP 503.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Reason identifies why a wizard step was rejected.
// The presentation layer keys its user-facing messages on these values.
type Reason string

const (
	ReasonMissingField     Reason = "missing_field"
	ReasonMalformedDate    Reason = "malformed_date"
	ReasonDateOrder        Reason = "date_order"
	ReasonUnknownSelection Reason = "unknown_selection"
	ReasonInvalidChoice    Reason = "invalid_choice"
	ReasonNegativePrice    Reason = "negative_price"
	ReasonWrongStep        Reason = "wrong_step"
)

// ValidationError is a reason-coded step rejection.
// It unwraps to ErrValidation.
type ValidationError struct {
	Reason  Reason
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(reason Reason, field, message string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// BudgetExceededError carries the attempted amount and the remaining budget
// at the time of the rejected confirmation. It unwraps to ErrBudgetExceeded.
type BudgetExceededError struct {
	Attempted decimal.Decimal
	Remaining decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("%s: total %s exceeds remaining %s",
		ErrBudgetExceeded, e.Attempted.StringFixed(2), e.Remaining.StringFixed(2))
}

func (e *BudgetExceededError) Unwrap() error { return ErrBudgetExceeded }
