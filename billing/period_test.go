package billing_test

import (
	"testing"
	"time"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedInvoice(id uint, number string, paid time.Time) billing.InvoiceRecord {
	return billing.InvoiceRecord{
		ID:            id,
		InvoiceNumber: number,
		Status:        billing.StatusClosed,
		InvoiceAmount: 1000,
		InvoiceDate:   paid.AddDate(0, 0, -10),
		PaymentDate:   &paid,
		TreatmentDate: paid.AddDate(0, 0, -20),
	}
}

func repAssignment(repID uint, name string, amount float64) billing.Assignment {
	return billing.Assignment{
		RepresentativeID:   repID,
		RepresentativeName: name,
		CommissionRate:     15,
		CommissionAmount:   amount,
	}
}

// Two payments in different halves of March land in two periods with
// the fixed payroll dates: the 15th and the last day of the month.
func TestAggregatePeriods_SplitsMonthHalves(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		closedInvoice(1, "INV-001", date(2024, time.March, 10)),
		closedInvoice(2, "INV-002", date(2024, time.March, 20)),
	}
	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 150)},
		2: {repAssignment(1, "Dana Reyes", 150)},
	}

	periods := billing.AggregatePeriods(invoices, assignments)
	require.Len(t, periods, 2)

	// Most recent payroll run first.
	assert.Equal(t, date(2024, time.March, 31), periods[0].PaymentDate)
	assert.Equal(t, date(2024, time.March, 16), periods[0].PeriodStart)
	assert.Equal(t, date(2024, time.March, 15), periods[1].PaymentDate)
	assert.Equal(t, date(2024, time.March, 1), periods[1].PeriodStart)

	for _, p := range periods {
		assert.Equal(t, uint(1), p.RepresentativeID)
		assert.Equal(t, 150.0, p.TotalCommission)
		assert.Equal(t, 1, p.InvoiceCount)
	}
}

// Boundary: the 15th buckets into the first half, the 16th into the
// second.
func TestAggregatePeriods_FifteenthBoundary(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		closedInvoice(1, "INV-015", date(2024, time.March, 15)),
		closedInvoice(2, "INV-016", date(2024, time.March, 16)),
	}
	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 100)},
		2: {repAssignment(1, "Dana Reyes", 100)},
	}

	periods := billing.AggregatePeriods(invoices, assignments)
	require.Len(t, periods, 2)

	assert.Equal(t, date(2024, time.March, 31), periods[0].PaymentDate)
	assert.Equal(t, "INV-016", periods[0].Entries[0].Invoice.InvoiceNumber)
	assert.Equal(t, date(2024, time.March, 15), periods[1].PaymentDate)
	assert.Equal(t, "INV-015", periods[1].Entries[0].Invoice.InvoiceNumber)
}

// Second-half payout lands on the month's actual last day, leap
// February included.
func TestAggregatePeriods_MonthEndPayout(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		closedInvoice(1, "INV-FEB", date(2024, time.February, 20)),
		closedInvoice(2, "INV-APR", date(2025, time.April, 29)),
	}
	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 100)},
		2: {repAssignment(1, "Dana Reyes", 100)},
	}

	periods := billing.AggregatePeriods(invoices, assignments)
	require.Len(t, periods, 2)
	assert.Equal(t, date(2025, time.April, 30), periods[0].PaymentDate)
	assert.Equal(t, date(2024, time.February, 29), periods[1].PaymentDate)
}

// Only closed invoices participate; open and payable ones are ignored
// even when assignments exist.
func TestAggregatePeriods_FiltersNonClosed(t *testing.T) {
	paid := date(2024, time.March, 10)
	open := closedInvoice(1, "INV-OPEN", paid)
	open.Status = billing.StatusOpen
	payable := closedInvoice(2, "INV-PAYABLE", paid)
	payable.Status = billing.StatusPayable

	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 100)},
		2: {repAssignment(1, "Dana Reyes", 100)},
	}

	periods := billing.AggregatePeriods([]billing.InvoiceRecord{open, payable}, assignments)
	assert.Empty(t, periods)
}

// Legacy rows without a payment date fall back to the invoice date,
// then the treatment date.
func TestAggregatePeriods_FallbackChain(t *testing.T) {
	byInvoiceDate := billing.InvoiceRecord{
		ID:            1,
		InvoiceNumber: "INV-LEGACY-1",
		Status:        billing.StatusClosed,
		InvoiceAmount: 1000,
		InvoiceDate:   date(2024, time.March, 5),
		TreatmentDate: date(2024, time.February, 1),
	}
	byTreatmentDate := billing.InvoiceRecord{
		ID:            2,
		InvoiceNumber: "INV-LEGACY-2",
		Status:        billing.StatusClosed,
		InvoiceAmount: 1000,
		TreatmentDate: date(2024, time.January, 20),
	}
	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 100)},
		2: {repAssignment(1, "Dana Reyes", 100)},
	}

	periods := billing.AggregatePeriods([]billing.InvoiceRecord{byInvoiceDate, byTreatmentDate}, assignments)
	require.Len(t, periods, 2)
	assert.Equal(t, date(2024, time.March, 15), periods[0].PaymentDate)
	assert.Equal(t, date(2024, time.January, 31), periods[1].PaymentDate)
}

// Reps are bucketed independently: one invoice with two assignments
// feeds two periods, and a rep's total sums only their own amounts.
func TestAggregatePeriods_PerRepresentative(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		closedInvoice(1, "INV-001", date(2024, time.March, 10)),
		closedInvoice(2, "INV-002", date(2024, time.March, 12)),
	}
	assignments := map[uint][]billing.Assignment{
		1: {
			repAssignment(1, "Dana Reyes", 150),
			repAssignment(2, "Kim Okafor", 100),
		},
		2: {repAssignment(1, "Dana Reyes", 150)},
	}

	periods := billing.AggregatePeriods(invoices, assignments)
	require.Len(t, periods, 2)

	// Same payout date; deterministic rep order.
	assert.Equal(t, uint(1), periods[0].RepresentativeID)
	assert.Equal(t, 300.0, periods[0].TotalCommission)
	assert.Equal(t, 2, periods[0].InvoiceCount)

	assert.Equal(t, uint(2), periods[1].RepresentativeID)
	assert.Equal(t, 100.0, periods[1].TotalCommission)
	assert.Equal(t, 1, periods[1].InvoiceCount)
}
