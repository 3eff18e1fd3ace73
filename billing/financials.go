package billing

import (
	"math"

	"grafttrack-backend/utils"
)

const (
	// DefaultInvoiceRate is the fraction of the total billable amount
	// that becomes the invoiced/payable amount.
	DefaultInvoiceRate = 0.6

	// DefaultPoolRate is the fraction of the invoice amount set aside
	// for commission distribution before any per-rep split.
	DefaultPoolRate = 0.4
)

// Financials are the derived money values persisted onto an invoice at
// save time. They are never recomputed lazily at read time.
type Financials struct {
	TotalBillable float64 `json:"total_billable"`
	InvoiceAmount float64 `json:"invoice_amount"`
}

// ComputeFinancials derives the billable and invoice amounts for a
// treatment. woundArea and pricePerUnitArea are coerced to 0 when
// negative or non-finite: blank numeric input is normal mid-edit form
// state, not an error. invoiceRate <= 0 falls back to DefaultInvoiceRate.
func ComputeFinancials(woundArea, pricePerUnitArea, invoiceRate float64) Financials {
	woundArea = sanitize(woundArea)
	pricePerUnitArea = sanitize(pricePerUnitArea)
	if invoiceRate <= 0 {
		invoiceRate = DefaultInvoiceRate
	}

	totalBillable := utils.Round2(woundArea * pricePerUnitArea)
	return Financials{
		TotalBillable: totalBillable,
		InvoiceAmount: utils.Round2(totalBillable * invoiceRate),
	}
}

func sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
