package billing

import "time"

const exportDateLayout = "2006-01-02"

// ExportHeader is the fixed column order of the commission export.
// Downstream spreadsheets key on these names; do not reorder.
var ExportHeader = []string{
	"invoice_number",
	"invoice_date",
	"invoice_total",
	"invoice_payment_date",
	"commission_payment_date",
	"commission_rate",
	"commission_amount",
	"representative_name",
	"house_payment_date",
}

// ExportRow is one flat line of the commission export: one invoice's
// contribution to one representative's payment period.
type ExportRow struct {
	InvoiceNumber         string  `json:"invoice_number"`
	InvoiceDate           string  `json:"invoice_date"`
	InvoiceTotal          float64 `json:"invoice_total"`
	InvoicePaymentDate    string  `json:"invoice_payment_date"`
	CommissionPaymentDate string  `json:"commission_payment_date"`
	CommissionRate        float64 `json:"commission_rate"`
	CommissionAmount      float64 `json:"commission_amount"`
	RepresentativeName    string  `json:"representative_name"`
	HousePaymentDate      string  `json:"house_payment_date"`
}

// ExportRows flattens payment periods into export rows. The house is
// paid on the same payroll run as the reps, so house_payment_date
// repeats the period payout date on every row.
func ExportRows(periods []PaymentPeriod) []ExportRow {
	var rows []ExportRow
	for _, p := range periods {
		payout := p.PaymentDate.Format(exportDateLayout)
		for _, e := range p.Entries {
			rows = append(rows, ExportRow{
				InvoiceNumber:         e.Invoice.InvoiceNumber,
				InvoiceDate:           e.Invoice.InvoiceDate.Format(exportDateLayout),
				InvoiceTotal:          e.Invoice.InvoiceAmount,
				InvoicePaymentDate:    formatDatePtr(e.Invoice.PaymentDate),
				CommissionPaymentDate: payout,
				CommissionRate:        e.CommissionRate,
				CommissionAmount:      e.CommissionAmount,
				RepresentativeName:    p.RepresentativeName,
				HousePaymentDate:      payout,
			})
		}
	}
	return rows
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}
