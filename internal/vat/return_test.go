package vat

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiskal-sk/fiskal/internal/invoices"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func item(rate int, base, amount string) invoices.LineItem {
	return invoices.LineItem{VATRate: rate, TaxableBase: dec(base), VATAmount: dec(amount)}
}

func periodJan() (time.Time, time.Time) {
	return date(2025, 1, 1), date(2025, 1, 31)
}

func TestCalculateReturnEmpty(t *testing.T) {
	from, to := periodJan()
	ret := CalculateReturn(nil, from, to)

	assert.True(t, ret.OutputTotal.IsZero())
	assert.True(t, ret.InputTotal.IsZero())
	assert.True(t, ret.Liability.IsZero())
	assert.True(t, ret.Refund.IsZero())
	assert.Zero(t, ret.IssuedCount)

	lines := ret.Lines()
	require.Len(t, lines, 37)
	for _, line := range lines {
		assert.True(t, line.Amount.IsZero(), "line %s", line.ID)
	}
}

func TestCalculateReturnMultiRateInvoice(t *testing.T) {
	from, to := periodJan()
	list := []invoices.Invoice{{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 15),
		Items: []invoices.LineItem{
			item(23, "1000", "230"),
			item(5, "50", "2.5"),
			item(19, "100", "19"),
		},
	}}

	ret := CalculateReturn(list, from, to)

	assert.True(t, ret.OutputTotal.Equal(dec("251.5")), "got %s", ret.OutputTotal)
	assert.True(t, ret.OutputBase23.Equal(dec("1000")))
	assert.True(t, ret.OutputVAT23.Equal(dec("230")))
	assert.True(t, ret.OutputBase19.Equal(dec("100")))
	assert.True(t, ret.OutputVAT19.Equal(dec("19")))
	assert.True(t, ret.OutputBase5.Equal(dec("50")))
	assert.True(t, ret.OutputVAT5.Equal(dec("2.5")))
	assert.True(t, ret.InputTotal.IsZero())
	assert.Equal(t, 1, ret.IssuedCount)
}

func TestCalculateReturnCreditNoteNetsOutput(t *testing.T) {
	from, to := periodJan()
	list := []invoices.Invoice{
		{
			Kind:      invoices.KindIssued,
			IssueDate: date(2025, 1, 10),
			Items:     []invoices.LineItem{item(23, "1000", "230")},
		},
		{
			Kind:      invoices.KindCreditNote,
			IssueDate: date(2025, 1, 20),
			Items:     []invoices.LineItem{item(23, "-200", "-46")},
		},
	}

	ret := CalculateReturn(list, from, to)

	assert.True(t, ret.OutputBase23.Equal(dec("800")), "base %s", ret.OutputBase23)
	assert.True(t, ret.OutputVAT23.Equal(dec("184")), "vat %s", ret.OutputVAT23)
	assert.Equal(t, 1, ret.CreditNoteCount)
}

func TestCalculateReturnLiabilityVsRefund(t *testing.T) {
	from, to := periodJan()
	issued := invoices.Invoice{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 5),
		Items:     []invoices.LineItem{item(23, "100", "23")},
	}
	received := invoices.Invoice{
		Kind:      invoices.KindReceived,
		IssueDate: date(2025, 1, 6),
		Items:     []invoices.LineItem{item(23, "400", "92")},
	}

	liability := CalculateReturn([]invoices.Invoice{issued}, from, to)
	assert.True(t, liability.Liability.Equal(dec("23")))
	assert.True(t, liability.Refund.IsZero())

	refund := CalculateReturn([]invoices.Invoice{issued, received}, from, to)
	assert.True(t, refund.Liability.IsZero())
	assert.True(t, refund.Refund.Equal(dec("69")), "refund %s", refund.Refund)

	// liability - refund == output - input, and never both non-zero
	for _, ret := range []Return{liability, refund} {
		diff := ret.OutputTotal.Sub(ret.InputTotal)
		assert.True(t, ret.Liability.Sub(ret.Refund).Equal(diff))
		assert.False(t, ret.Liability.IsPositive() && ret.Refund.IsPositive())
	}
}

func TestCalculateReturnZeroRateExcluded(t *testing.T) {
	from, to := periodJan()
	list := []invoices.Invoice{{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 5),
		Items:     []invoices.LineItem{item(0, "500", "0"), item(23, "100", "23")},
	}}

	ret := CalculateReturn(list, from, to)
	assert.True(t, ret.OutputBase23.Equal(dec("100")))
	assert.True(t, ret.OutputTotal.Equal(dec("23")))
}

func TestCalculateReturnPeriodFilter(t *testing.T) {
	from, to := periodJan()
	inside := invoices.Invoice{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 31),
		Items:     []invoices.LineItem{item(23, "100", "23")},
	}
	outside := inside
	outside.IssueDate = date(2025, 2, 1)

	ret := CalculateReturn([]invoices.Invoice{inside, outside}, from, to)
	assert.True(t, ret.OutputBase23.Equal(dec("100")))
	assert.Equal(t, 1, ret.IssuedCount)
}

func TestCalculateReturnSkipsCancelled(t *testing.T) {
	from, to := periodJan()
	inv := invoices.Invoice{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 10),
		Cancelled: true,
		Items:     []invoices.LineItem{item(23, "100", "23")},
	}

	ret := CalculateReturn([]invoices.Invoice{inv}, from, to)
	assert.True(t, ret.OutputTotal.IsZero())
}

func TestReturnLinesMapping(t *testing.T) {
	from, to := periodJan()
	list := []invoices.Invoice{
		{
			Kind:      invoices.KindIssued,
			IssueDate: date(2025, 1, 10),
			Items:     []invoices.LineItem{item(23, "1000", "230"), item(19, "100", "19")},
		},
		{
			Kind:      invoices.KindReceived,
			IssueDate: date(2025, 1, 12),
			Items:     []invoices.LineItem{item(23, "200", "46")},
		},
	}

	ret := CalculateReturn(list, from, to)
	lines := ret.Lines()
	require.Len(t, lines, 37)

	byID := make(map[string]decimal.Decimal, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		byID[line.ID] = line.Amount
		order = append(order, line.ID)
	}

	assert.Equal(t, "r01", order[0])
	assert.Equal(t, "r37", order[36])
	assert.True(t, byID["r01"].Equal(dec("1000")))
	assert.True(t, byID["r02"].Equal(dec("230")))
	assert.True(t, byID["r03"].Equal(dec("100")))
	assert.True(t, byID["r04"].Equal(dec("19")))
	assert.True(t, byID["r22"].Equal(dec("200")))
	assert.True(t, byID["r27"].Equal(dec("46")))
	assert.True(t, byID["r28"].Equal(dec("249")))
	assert.True(t, byID["r29"].Equal(dec("46")))
	assert.True(t, byID["r30"].Equal(dec("203")))
	assert.True(t, byID["r31"].IsZero())
	assert.True(t, byID["r37"].Equal(dec("203")))

	// Rows without a data source stay present and zero.
	for _, id := range []string{"r07", "r15", "r21", "r23", "r26", "r32", "r36"} {
		amount, ok := byID[id]
		require.True(t, ok, "missing %s", id)
		assert.True(t, amount.IsZero(), "line %s", id)
	}
}
