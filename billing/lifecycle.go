package billing

import (
	"errors"
	"time"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusOpen    Status = "open"
	StatusPayable Status = "payable"
	StatusClosed  Status = "closed"
)

var (
	// ErrPaymentDateRequired rejects closing an invoice without a
	// payment date. Validation happens before any mutation.
	ErrPaymentDateRequired = errors.New("closing an invoice requires a payment date")

	// ErrUnknownStatus rejects a transition to a status outside the
	// open/payable/closed machine.
	ErrUnknownStatus = errors.New("unknown invoice status")
)

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPayable, StatusClosed:
		return true
	}
	return false
}

// InvoiceState is the lifecycle-relevant slice of an invoice.
// Invariant: PaymentDate is non-nil iff Status is closed, except that a
// reverted invoice keeps its historical payment date (see Transition).
type InvoiceState struct {
	Status      Status
	PaymentDate *time.Time
}

// Transition moves the invoice to a new status. All transitions are
// user-triggered and any state may move to any other, with one rule:
// entering closed requires paymentDate in the same call. Leaving closed
// keeps the old payment date as history; the aggregator filters on
// status, so a reverted invoice drops out of commission periods anyway.
//
// The receiver is not mutated; on error the caller's state is untouched.
func (s InvoiceState) Transition(to Status, paymentDate *time.Time) (InvoiceState, error) {
	if !to.Valid() {
		return s, ErrUnknownStatus
	}
	if to == StatusClosed {
		if paymentDate == nil {
			return s, ErrPaymentDateRequired
		}
		d := *paymentDate
		return InvoiceState{Status: StatusClosed, PaymentDate: &d}, nil
	}
	return InvoiceState{Status: to, PaymentDate: s.PaymentDate}, nil
}

// IsOverdue reports whether an invoice is past due. Derived at read
// time, never persisted. Pure calendar comparison; weekends and
// holidays do not move the due date.
func IsOverdue(status Status, dueDate, now time.Time) bool {
	return status != StatusClosed && now.After(dueDate)
}
