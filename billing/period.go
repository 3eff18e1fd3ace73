package billing

import (
	"sort"
	"time"

	"grafttrack-backend/utils"
)

// InvoiceRecord is the aggregator's read-only view of an invoice.
type InvoiceRecord struct {
	ID            uint       `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Status        Status     `json:"status"`
	InvoiceAmount float64    `json:"invoice_amount"`
	InvoiceDate   time.Time  `json:"invoice_date"`
	PaymentDate   *time.Time `json:"payment_date"`
	TreatmentDate time.Time  `json:"treatment_date"`
}

// Assignment is a representative's stake in one invoice, as stored.
type Assignment struct {
	RepresentativeID   uint    `json:"representative_id"`
	RepresentativeName string  `json:"representative_name"`
	CommissionRate     float64 `json:"commission_rate"`
	CommissionAmount   float64 `json:"commission_amount"`
}

// PeriodEntry is one invoice's contribution to a payment period.
type PeriodEntry struct {
	Invoice          InvoiceRecord `json:"invoice"`
	CommissionRate   float64       `json:"commission_rate"`
	CommissionAmount float64       `json:"commission_amount"`
}

// PaymentPeriod is one representative's payout for one semimonthly
// window. Commissions are paid on a fixed payroll schedule: the 15th
// for the first half of the month, the last calendar day for the
// second, regardless of when within the window the invoice was paid.
type PaymentPeriod struct {
	RepresentativeID   uint          `json:"representative_id"`
	RepresentativeName string        `json:"representative_name"`
	PeriodStart        time.Time     `json:"period_start"`
	PeriodEnd          time.Time     `json:"period_end"`
	PaymentDate        time.Time     `json:"payment_date"`
	Entries            []PeriodEntry `json:"entries"`
	InvoiceCount       int           `json:"invoice_count"`
	TotalCommission    float64       `json:"total_commission"`
}

// AggregatePeriods groups closed invoices into semimonthly commission
// payment periods per representative. Invoices not in status closed are
// ignored. One period is emitted per (representative, window) pair that
// has at least one invoice, sorted most recent payroll run first.
func AggregatePeriods(invoices []InvoiceRecord, assignmentsByInvoice map[uint][]Assignment) []PaymentPeriod {
	type bucketKey struct {
		repID uint
		start time.Time
	}

	buckets := make(map[bucketKey]*PaymentPeriod)

	for _, inv := range invoices {
		if inv.Status != StatusClosed {
			continue
		}
		ref := referenceDate(inv)
		start, end, payout := semimonthlyWindow(ref)

		for _, a := range assignmentsByInvoice[inv.ID] {
			key := bucketKey{repID: a.RepresentativeID, start: start}
			p, ok := buckets[key]
			if !ok {
				p = &PaymentPeriod{
					RepresentativeID:   a.RepresentativeID,
					RepresentativeName: a.RepresentativeName,
					PeriodStart:        start,
					PeriodEnd:          end,
					PaymentDate:        payout,
				}
				buckets[key] = p
			}
			p.Entries = append(p.Entries, PeriodEntry{
				Invoice:          inv,
				CommissionRate:   a.CommissionRate,
				CommissionAmount: a.CommissionAmount,
			})
			p.TotalCommission = utils.Round2(p.TotalCommission + a.CommissionAmount)
		}
	}

	periods := make([]PaymentPeriod, 0, len(buckets))
	for _, p := range buckets {
		p.InvoiceCount = distinctInvoices(p.Entries)
		periods = append(periods, *p)
	}

	sort.Slice(periods, func(i, j int) bool {
		if !periods[i].PaymentDate.Equal(periods[j].PaymentDate) {
			return periods[i].PaymentDate.After(periods[j].PaymentDate)
		}
		return periods[i].RepresentativeID < periods[j].RepresentativeID
	})
	return periods
}

// referenceDate picks the date that anchors period bucketing. The
// fallback chain is fixed: paymentDate, then invoiceDate, then
// treatmentDate. Closed invoices always carry a payment date; the
// fallbacks accommodate legacy rows imported without one.
func referenceDate(inv InvoiceRecord) time.Time {
	if inv.PaymentDate != nil {
		return *inv.PaymentDate
	}
	if !inv.InvoiceDate.IsZero() {
		return inv.InvoiceDate
	}
	return inv.TreatmentDate
}

// semimonthlyWindow returns the half-month window containing ref and
// its payout date. Day 1 through 15 inclusive is the first half, day 16
// through month end the second. The 15th itself buckets first-half.
func semimonthlyWindow(ref time.Time) (start, end, payout time.Time) {
	y, m, d := ref.Date()
	loc := ref.Location()
	if d <= 15 {
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, m, 15, 0, 0, 0, 0, loc)
		return start, end, end
	}
	start = time.Date(y, m, 16, 0, 0, 0, 0, loc)
	// day 0 of the next month is the last day of this one
	end = time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
	return start, end, end
}

func distinctInvoices(entries []PeriodEntry) int {
	seen := make(map[uint]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Invoice.ID] = struct{}{}
	}
	return len(seen)
}
