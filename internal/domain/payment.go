package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the way the user pays for a confirmed trip.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// PaymentMethods lists every valid payment method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentCash}
}

// ParsePaymentMethod converts user input into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCard, PaymentCash:
		return m, nil
	}
	return "", NewValidationError(ReasonInvalidChoice, "payment", "payment must be one of card, cash")
}

// PaymentStrategy produces the confirmation message for paying amount.
// No money moves: the message is a notification of the chosen method.
type PaymentStrategy interface {
	Pay(amount decimal.Decimal) string
}

// CreditCardPayment pays by credit card.
type CreditCardPayment struct{}

func (CreditCardPayment) Pay(amount decimal.Decimal) string {
	return fmt.Sprintf("Paying %s by credit card", amount.StringFixed(2))
}

// CashPayment pays in cash.
type CashPayment struct{}

func (CashPayment) Pay(amount decimal.Decimal) string {
	return fmt.Sprintf("Paying %s in cash", amount.StringFixed(2))
}

// PaymentFor returns the strategy for method. Unknown methods fall back to cash.
func PaymentFor(method PaymentMethod) PaymentStrategy {
	if method == PaymentCard {
		return CreditCardPayment{}
	}
	return CashPayment{}
}
