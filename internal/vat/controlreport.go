package vat

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiskal-sk/fiskal/internal/invoices"
)

// Control report routing thresholds.
var (
	largeVATThreshold      = decimal.NewFromInt(5000)
	simplifiedInvoiceLimit = decimal.NewFromInt(1000)
)

// Record is one per-rate disclosure row of the control report.
type Record struct {
	CounterpartyVATID string          `json:"counterparty_vat_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	InvoiceDate       time.Time       `json:"invoice_date"`
	Base              decimal.Decimal `json:"base"`
	Amount            decimal.Decimal `json:"amount"`
	Rate              int             `json:"rate"`
}

// ControlReport groups records into the nine regulatory sections. C2 is
// part of the submission contract but no routing rule feeds it yet.
type ControlReport struct {
	PeriodFrom time.Time `json:"period_from"`
	PeriodTo   time.Time `json:"period_to"`

	A1 []Record `json:"a1"`
	A2 []Record `json:"a2"`
	B1 []Record `json:"b1"`
	B2 []Record `json:"b2"`
	B3 []Record `json:"b3"`
	C1 []Record `json:"c1"`
	C2 []Record `json:"c2"`
	D1 []Record `json:"d1"`
	D2 []Record `json:"d2"`
}

// Section pairs a section name with its records for ordered emission.
type Section struct {
	Name    string
	Records []Record
}

// Sections returns the nine sections in submission order.
func (r ControlReport) Sections() []Section {
	return []Section{
		{"A1", r.A1}, {"A2", r.A2},
		{"B1", r.B1}, {"B2", r.B2}, {"B3", r.B3},
		{"C1", r.C1}, {"C2", r.C2},
		{"D1", r.D1}, {"D2", r.D2},
	}
}

// CalculateControlReport routes every non-cancelled in-period invoice
// into exactly one section, first matching rule wins, and splits it into
// one record per VAT rate present on the invoice.
func CalculateControlReport(list []invoices.Invoice, from, to time.Time) ControlReport {
	report := ControlReport{PeriodFrom: from, PeriodTo: to}

	for _, inv := range list {
		if inv.Cancelled || !inPeriod(inv.IssueDate, from, to) {
			continue
		}
		records := expandByRate(inv)
		switch {
		case inv.Kind == invoices.KindCreditNote:
			report.C1 = append(report.C1, records...)
		case inv.ReverseCharge && inv.Kind == invoices.KindIssued:
			report.D1 = append(report.D1, records...)
		case inv.ReverseCharge && inv.Kind == invoices.KindReceived:
			report.D2 = append(report.D2, records...)
		case inv.Kind == invoices.KindIssued:
			if inv.VATAmount.Abs().GreaterThanOrEqual(largeVATThreshold) {
				report.A1 = append(report.A1, records...)
			} else {
				report.A2 = append(report.A2, records...)
			}
		case inv.Kind == invoices.KindReceived:
			// The simplified-invoice total test runs before the VAT
			// threshold test.
			if inv.Total.Abs().LessThanOrEqual(simplifiedInvoiceLimit) {
				report.B3 = append(report.B3, records...)
			} else if inv.VATAmount.Abs().GreaterThanOrEqual(largeVATThreshold) {
				report.B1 = append(report.B1, records...)
			} else {
				report.B2 = append(report.B2, records...)
			}
		}
	}
	return report
}

// expandByRate emits one record per distinct VAT rate on the invoice,
// each carrying that rate's own base and amount subtotal.
func expandByRate(inv invoices.Invoice) []Record {
	rates := inv.Rates()
	records := make([]Record, 0, len(rates))
	for _, rate := range rates {
		base, amount := inv.RateSubtotal(rate)
		records = append(records, Record{
			CounterpartyVATID: inv.CounterpartyVATID,
			InvoiceNumber:     inv.Number,
			InvoiceDate:       inv.IssueDate,
			Base:              base,
			Amount:            amount,
			Rate:              rate,
		})
	}
	return records
}
