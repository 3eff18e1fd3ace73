package billing_test

import (
	"testing"
	"time"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The header is a compatibility contract with downstream spreadsheets;
// order and naming must not drift.
func TestExportHeader_ColumnContract(t *testing.T) {
	assert.Equal(t, []string{
		"invoice_number",
		"invoice_date",
		"invoice_total",
		"invoice_payment_date",
		"commission_payment_date",
		"commission_rate",
		"commission_amount",
		"representative_name",
		"house_payment_date",
	}, billing.ExportHeader)
}

func TestExportRows_FlattensPeriods(t *testing.T) {
	invoices := []billing.InvoiceRecord{
		closedInvoice(1, "INV-001", date(2024, time.March, 10)),
		closedInvoice(2, "INV-002", date(2024, time.March, 12)),
	}
	assignments := map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 150)},
		2: {repAssignment(1, "Dana Reyes", 150)},
	}
	periods := billing.AggregatePeriods(invoices, assignments)

	rows := billing.ExportRows(periods)
	require.Len(t, rows, 2)

	for _, r := range rows {
		assert.Equal(t, "Dana Reyes", r.RepresentativeName)
		assert.Equal(t, "2024-03-15", r.CommissionPaymentDate)
		// The house is paid on the same payroll run as the reps.
		assert.Equal(t, r.CommissionPaymentDate, r.HousePaymentDate)
		assert.Equal(t, 15.0, r.CommissionRate)
		assert.Equal(t, 150.0, r.CommissionAmount)
		assert.Equal(t, 1000.0, r.InvoiceTotal)
	}
	assert.Equal(t, "INV-001", rows[0].InvoiceNumber)
	assert.Equal(t, "2024-03-10", rows[0].InvoicePaymentDate)
	assert.Equal(t, "2024-02-29", rows[0].InvoiceDate)
}

// Legacy invoices without a payment date export an empty cell rather
// than a zero time.
func TestExportRows_MissingPaymentDate(t *testing.T) {
	inv := billing.InvoiceRecord{
		ID:            1,
		InvoiceNumber: "INV-LEGACY",
		Status:        billing.StatusClosed,
		InvoiceAmount: 500,
		InvoiceDate:   date(2024, time.March, 5),
		TreatmentDate: date(2024, time.February, 1),
	}
	periods := billing.AggregatePeriods([]billing.InvoiceRecord{inv}, map[uint][]billing.Assignment{
		1: {repAssignment(1, "Dana Reyes", 75)},
	})

	rows := billing.ExportRows(periods)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].InvoicePaymentDate)
	assert.Equal(t, "2024-03-15", rows[0].CommissionPaymentDate)
}

func TestExportRows_Empty(t *testing.T) {
	assert.Empty(t, billing.ExportRows(nil))
}
