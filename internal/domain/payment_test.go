package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func TestPaymentFor(t *testing.T) {
	assert.IsType(t, domain.CreditCardPayment{}, domain.PaymentFor(domain.PaymentCard))
	assert.IsType(t, domain.CashPayment{}, domain.PaymentFor(domain.PaymentCash))
}

func TestPaymentStrategy_Messages(t *testing.T) {
	assert.Equal(t, "Paying 1400.00 by credit card", domain.CreditCardPayment{}.Pay(dec(1400)))
	assert.Equal(t, "Paying 1400.00 in cash", domain.CashPayment{}.Pay(dec(1400)))
}

func TestParsePaymentMethod(t *testing.T) {
	got, err := domain.ParsePaymentMethod("card")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, got)

	_, err = domain.ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
