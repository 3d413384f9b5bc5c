package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes invoice direction and correction documents.
type Kind string

const (
	KindIssued     Kind = "ISSUED"
	KindReceived   Kind = "RECEIVED"
	KindCreditNote Kind = "CREDIT_NOTE"
)

// LineItem is one VAT-rated line of an invoice.
type LineItem struct {
	VATRate     int
	TaxableBase decimal.Decimal
	VATAmount   decimal.Decimal
}

// Invoice is a sales or purchase document with its VAT line items. The
// counterparty VAT id is resolved from the contact at read time.
type Invoice struct {
	ID                uuid.UUID
	CompanyID         int64
	Kind              Kind
	Number            string
	IssueDate         time.Time
	Total             decimal.Decimal
	VATAmount         decimal.Decimal
	CounterpartyVATID string
	ReverseCharge     bool
	Cancelled         bool
	Items             []LineItem
}

// Rates returns the distinct VAT rates present on the invoice, in the
// order they first appear.
func (inv Invoice) Rates() []int {
	seen := make(map[int]bool, len(inv.Items))
	var rates []int
	for _, item := range inv.Items {
		if !seen[item.VATRate] {
			seen[item.VATRate] = true
			rates = append(rates, item.VATRate)
		}
	}
	return rates
}

// RateSubtotal sums base and VAT amount over items carrying the rate.
func (inv Invoice) RateSubtotal(rate int) (base, amount decimal.Decimal) {
	for _, item := range inv.Items {
		if item.VATRate == rate {
			base = base.Add(item.TaxableBase)
			amount = amount.Add(item.VATAmount)
		}
	}
	return base.Round(2), amount.Round(2)
}
