package billing_test

import (
	"testing"
	"time"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Closing without a payment date always fails, and the caller's state
// is untouched on rejection.
func TestTransition_CloseRequiresPaymentDate(t *testing.T) {
	state := billing.InvoiceState{Status: billing.StatusPayable}

	next, err := state.Transition(billing.StatusClosed, nil)
	require.ErrorIs(t, err, billing.ErrPaymentDateRequired)
	assert.Equal(t, state, next)
}

// Closing with a payment date succeeds and restores the invariant:
// status == closed iff paymentDate != nil.
func TestTransition_CloseSetsPaymentDate(t *testing.T) {
	paid := date(2024, time.March, 10)
	state := billing.InvoiceState{Status: billing.StatusOpen}

	next, err := state.Transition(billing.StatusClosed, &paid)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusClosed, next.Status)
	require.NotNil(t, next.PaymentDate)
	assert.Equal(t, paid, *next.PaymentDate)
}

// Any state may move to any other; the machine is not strictly linear.
func TestTransition_AnyToAny(t *testing.T) {
	paid := date(2024, time.March, 10)
	states := []billing.Status{billing.StatusOpen, billing.StatusPayable, billing.StatusClosed}

	for _, from := range states {
		for _, to := range states {
			state := billing.InvoiceState{Status: from}
			if from == billing.StatusClosed {
				state.PaymentDate = &paid
			}
			_, err := state.Transition(to, &paid)
			assert.NoError(t, err, "%s -> %s", from, to)
		}
	}
}

// Reverting a closed invoice keeps the payment date as history; the
// aggregator filters on status, so the invoice still drops out of
// commission periods.
func TestTransition_RevertKeepsPaymentDate(t *testing.T) {
	paid := date(2024, time.March, 10)
	closed := billing.InvoiceState{Status: billing.StatusClosed, PaymentDate: &paid}

	reverted, err := closed.Transition(billing.StatusOpen, nil)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusOpen, reverted.Status)
	require.NotNil(t, reverted.PaymentDate)
	assert.Equal(t, paid, *reverted.PaymentDate)
}

func TestTransition_UnknownStatus(t *testing.T) {
	state := billing.InvoiceState{Status: billing.StatusOpen}
	_, err := state.Transition(billing.Status("archived"), nil)
	assert.ErrorIs(t, err, billing.ErrUnknownStatus)
}

// Overdue is a derived read-time flag: not closed and past due date.
func TestIsOverdue(t *testing.T) {
	due := date(2024, time.March, 31)

	assert.False(t, billing.IsOverdue(billing.StatusOpen, due, date(2024, time.March, 30)))
	assert.False(t, billing.IsOverdue(billing.StatusOpen, due, due))
	assert.True(t, billing.IsOverdue(billing.StatusOpen, due, date(2024, time.April, 1)))
	assert.True(t, billing.IsOverdue(billing.StatusPayable, due, date(2024, time.April, 1)))
	assert.False(t, billing.IsOverdue(billing.StatusClosed, due, date(2024, time.April, 1)))
}
