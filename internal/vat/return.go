// Package vat computes the periodic VAT return and the itemized control
// report from sales and purchase invoices.
package vat

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiskal-sk/fiskal/internal/invoices"
)

// VAT rates in force. The zero rate marks exempt supply and is tracked
// outside the return buckets.
const (
	RateStandard = 23
	RateReduced  = 19
	RateLow      = 5
)

// Return holds per-rate output and input buckets plus the derived
// liability or refund. Exactly one of Liability and Refund is non-zero.
type Return struct {
	PeriodFrom time.Time `json:"period_from"`
	PeriodTo   time.Time `json:"period_to"`

	OutputBase23 decimal.Decimal `json:"output_base_23"`
	OutputVAT23  decimal.Decimal `json:"output_vat_23"`
	OutputBase19 decimal.Decimal `json:"output_base_19"`
	OutputVAT19  decimal.Decimal `json:"output_vat_19"`
	OutputBase5  decimal.Decimal `json:"output_base_5"`
	OutputVAT5   decimal.Decimal `json:"output_vat_5"`

	InputBase23 decimal.Decimal `json:"input_base_23"`
	InputVAT23  decimal.Decimal `json:"input_vat_23"`
	InputBase19 decimal.Decimal `json:"input_base_19"`
	InputVAT19  decimal.Decimal `json:"input_vat_19"`
	InputBase5  decimal.Decimal `json:"input_base_5"`
	InputVAT5   decimal.Decimal `json:"input_vat_5"`

	OutputTotal decimal.Decimal `json:"output_total"`
	InputTotal  decimal.Decimal `json:"input_total"`
	Liability   decimal.Decimal `json:"liability"`
	Refund      decimal.Decimal `json:"refund"`

	IssuedCount     int `json:"issued_count"`
	ReceivedCount   int `json:"received_count"`
	CreditNoteCount int `json:"credit_note_count"`
}

// Line is one identified row of the regulatory return form.
type Line struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

type buckets struct {
	base23, vat23, base19, vat19, base5, vat5 decimal.Decimal
}

func (b *buckets) add(rate int, base, amount decimal.Decimal) {
	switch rate {
	case RateStandard:
		b.base23 = b.base23.Add(base)
		b.vat23 = b.vat23.Add(amount)
	case RateReduced:
		b.base19 = b.base19.Add(base)
		b.vat19 = b.vat19.Add(amount)
	case RateLow:
		b.base5 = b.base5.Add(base)
		b.vat5 = b.vat5.Add(amount)
	}
}

// CalculateReturn classifies every in-period invoice line item into the
// rate buckets, nets credit notes against output, and derives the
// liability or refund. Buckets are rounded to 2 decimals only after all
// items are summed.
func CalculateReturn(list []invoices.Invoice, from, to time.Time) Return {
	var output, input buckets
	ret := Return{PeriodFrom: from, PeriodTo: to}

	for _, inv := range list {
		if inv.Cancelled || !inPeriod(inv.IssueDate, from, to) {
			continue
		}
		switch inv.Kind {
		case invoices.KindIssued:
			ret.IssuedCount++
			for _, item := range inv.Items {
				output.add(item.VATRate, item.TaxableBase, item.VATAmount)
			}
		case invoices.KindReceived:
			ret.ReceivedCount++
			for _, item := range inv.Items {
				input.add(item.VATRate, item.TaxableBase, item.VATAmount)
			}
		case invoices.KindCreditNote:
			// Credit notes always net against output, regardless of the
			// direction of the document they correct.
			ret.CreditNoteCount++
			for _, item := range inv.Items {
				output.add(item.VATRate, item.TaxableBase.Abs().Neg(), item.VATAmount.Abs().Neg())
			}
		}
	}

	ret.OutputBase23 = output.base23.Round(2)
	ret.OutputVAT23 = output.vat23.Round(2)
	ret.OutputBase19 = output.base19.Round(2)
	ret.OutputVAT19 = output.vat19.Round(2)
	ret.OutputBase5 = output.base5.Round(2)
	ret.OutputVAT5 = output.vat5.Round(2)
	ret.InputBase23 = input.base23.Round(2)
	ret.InputVAT23 = input.vat23.Round(2)
	ret.InputBase19 = input.base19.Round(2)
	ret.InputVAT19 = input.vat19.Round(2)
	ret.InputBase5 = input.base5.Round(2)
	ret.InputVAT5 = input.vat5.Round(2)

	ret.OutputTotal = ret.OutputVAT23.Add(ret.OutputVAT19).Add(ret.OutputVAT5)
	ret.InputTotal = ret.InputVAT23.Add(ret.InputVAT19).Add(ret.InputVAT5)

	difference := ret.OutputTotal.Sub(ret.InputTotal)
	if difference.IsPositive() {
		ret.Liability = difference
		ret.Refund = decimal.Zero
	} else {
		ret.Liability = decimal.Zero
		ret.Refund = difference.Abs()
	}
	return ret
}

// Lines maps the return onto the fixed regulatory line identifiers
// r01 through r37, in form order. Rows for EU acquisitions, imports,
// reverse charge, and corrections have no data source yet and stay
// zero, but keep their place in the form.
func (r Return) Lines() []Line {
	zero := decimal.Zero
	lines := []Line{
		{ID: "r01", Amount: r.OutputBase23},
		{ID: "r02", Amount: r.OutputVAT23},
		{ID: "r03", Amount: r.OutputBase19},
		{ID: "r04", Amount: r.OutputVAT19},
		{ID: "r05", Amount: r.OutputBase5},
		{ID: "r06", Amount: r.OutputVAT5},
	}
	for i := 7; i <= 21; i++ {
		lines = append(lines, Line{ID: lineID(i), Amount: zero})
	}
	lines = append(lines, Line{ID: "r22", Amount: r.InputBase23.Add(r.InputBase19).Add(r.InputBase5)})
	for i := 23; i <= 26; i++ {
		lines = append(lines, Line{ID: lineID(i), Amount: zero})
	}
	lines = append(lines,
		Line{ID: "r27", Amount: r.InputTotal},
		Line{ID: "r28", Amount: r.OutputTotal},
		Line{ID: "r29", Amount: r.InputTotal},
		Line{ID: "r30", Amount: r.Liability},
		Line{ID: "r31", Amount: r.Refund},
	)
	for i := 32; i <= 36; i++ {
		lines = append(lines, Line{ID: lineID(i), Amount: zero})
	}
	final := r.Liability
	if r.Liability.IsZero() {
		final = r.Refund.Neg()
	}
	lines = append(lines, Line{ID: "r37", Amount: final})
	return lines
}

func lineID(n int) string {
	return fmt.Sprintf("r%02d", n)
}

func inPeriod(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
