// Package ledger tracks the wallet budget shared by every booking in a session.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Ledger holds the remaining budget. TryDeduct is its only mutator.
//
// A Ledger is not safe for concurrent use; the booking flow drives it from a
// single goroutine.
type Ledger struct {
	remaining decimal.Decimal
}

// New returns a Ledger starting at initial. A negative initial budget is rejected.
func New(initial decimal.Decimal) (*Ledger, error) {
	if initial.IsNegative() {
		return nil, fmt.Errorf("ledger.New: %w: initial budget must not be negative", domain.ErrValidation)
	}
	return &Ledger{remaining: initial}, nil
}

// Remaining returns the budget still available.
func (l *Ledger) Remaining() decimal.Decimal {
	return l.remaining
}

// CanAfford reports whether amount fits in the remaining budget, returning a
// *domain.BudgetExceededError when it does not.
func (l *Ledger) CanAfford(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.NewValidationError(domain.ReasonNegativePrice, "amount", "amount must not be negative")
	}
	if amount.GreaterThan(l.remaining) {
		return &domain.BudgetExceededError{Attempted: amount, Remaining: l.remaining}
	}
	return nil
}

// TryDeduct subtracts amount from the remaining budget.
// On failure the ledger is unchanged.
func (l *Ledger) TryDeduct(amount decimal.Decimal) error {
	if err := l.CanAfford(amount); err != nil {
		return err
	}
	l.remaining = l.remaining.Sub(amount)
	return nil
}
