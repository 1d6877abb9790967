package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/ledger"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newLedger(t *testing.T, initial int64) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(dec(initial))
	require.NoError(t, err)
	return l
}

func TestLedger_TryDeduct_WithinBudget(t *testing.T) {
	l := newLedger(t, 1500)

	require.NoError(t, l.TryDeduct(dec(1400)))

	assert.True(t, l.Remaining().Equal(dec(100)))
}

func TestLedger_TryDeduct_ExactBudget(t *testing.T) {
	l := newLedger(t, 1400)

	require.NoError(t, l.TryDeduct(dec(1400)))

	assert.True(t, l.Remaining().IsZero())
}

func TestLedger_TryDeduct_OverBudget(t *testing.T) {
	l := newLedger(t, 1000)

	err := l.TryDeduct(dec(1400))

	var be *domain.BudgetExceededError
	require.ErrorAs(t, err, &be)
	assert.True(t, be.Attempted.Equal(dec(1400)))
	assert.True(t, be.Remaining.Equal(dec(1000)))
	assert.True(t, l.Remaining().Equal(dec(1000)), "rejected deduction must not touch the ledger")
}

func TestLedger_TryDeduct_Negative(t *testing.T) {
	l := newLedger(t, 100)

	err := l.TryDeduct(dec(-50))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, l.Remaining().Equal(dec(100)))
}

func TestLedger_SuccessiveBookings(t *testing.T) {
	l := newLedger(t, 1500)

	require.NoError(t, l.TryDeduct(dec(600)))
	require.NoError(t, l.TryDeduct(dec(600)))
	assert.ErrorIs(t, l.TryDeduct(dec(600)), domain.ErrBudgetExceeded)

	assert.True(t, l.Remaining().Equal(dec(300)))
}

func TestNew_NegativeInitial(t *testing.T) {
	_, err := ledger.New(dec(-1))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
