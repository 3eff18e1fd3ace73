package billing_test

import (
	"math"
	"testing"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
)

// TestComputeFinancials_Derivation verifies the two derived amounts.
// Invariant: totalBillable = woundArea * price, invoiceAmount =
// totalBillable * rate, both rounded to cents.
func TestComputeFinancials_Derivation(t *testing.T) {
	tests := []struct {
		name         string
		woundArea    float64
		price        float64
		rate         float64
		wantBillable float64
		wantInvoice  float64
	}{
		{"ten units at 1190.44", 10, 1190.44, 0.6, 11904.40, 7142.64},
		{"zero wound area", 0, 1190.44, 0.6, 0, 0},
		{"zero price", 25, 0, 0.6, 0, 0},
		{"fractional area", 3.5, 100, 0.6, 350, 210},
		{"rounding to cents", 1.234, 9.99, 0.6, 12.33, 7.40},
		{"custom rate", 10, 100, 0.5, 1000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fin := billing.ComputeFinancials(tt.woundArea, tt.price, tt.rate)
			assert.Equal(t, tt.wantBillable, fin.TotalBillable)
			assert.Equal(t, tt.wantInvoice, fin.InvoiceAmount)
		})
	}
}

// Negative or non-finite inputs coerce to 0: a half-filled form must
// stay computable, never error.
func TestComputeFinancials_CoercesBadInput(t *testing.T) {
	assert.Equal(t, billing.Financials{}, billing.ComputeFinancials(-5, 100, 0.6))
	assert.Equal(t, billing.Financials{}, billing.ComputeFinancials(10, -1, 0.6))
	assert.Equal(t, billing.Financials{}, billing.ComputeFinancials(math.NaN(), 100, 0.6))
	assert.Equal(t, billing.Financials{}, billing.ComputeFinancials(10, math.Inf(1), 0.6))
}

func TestComputeFinancials_DefaultRate(t *testing.T) {
	// rate <= 0 falls back to the 60% invoice rate
	fin := billing.ComputeFinancials(10, 100, 0)
	assert.Equal(t, 600.0, fin.InvoiceAmount)

	fin = billing.ComputeFinancials(10, 100, -1)
	assert.Equal(t, 600.0, fin.InvoiceAmount)
}

// Pure function: identical inputs give identical outputs.
func TestComputeFinancials_Idempotent(t *testing.T) {
	a := billing.ComputeFinancials(12.5, 1190.44, 0.6)
	b := billing.ComputeFinancials(12.5, 1190.44, 0.6)
	assert.Equal(t, a, b)
}
