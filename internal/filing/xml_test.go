package filing

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiskal-sk/fiskal/internal/invoices"
	"github.com/fiskal-sk/fiskal/internal/statements"
	"github.com/fiskal-sk/fiskal/internal/vat"
)

var testCompany = Company{
	ID:         1,
	Name:       "Omega & Sons s.r.o.",
	TaxID:      "2020123456",
	VATID:      "SK2020123456",
	Street:     "Hlavná 1",
	City:       "Bratislava",
	PostalCode: "81101",
	Country:    "SK",
}

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

func sampleReturn(t *testing.T) vat.Return {
	t.Helper()
	list := []invoices.Invoice{
		{
			Kind:      invoices.KindIssued,
			IssueDate: date(2025, 1, 10),
			Items: []invoices.LineItem{
				{VATRate: 23, TaxableBase: dec("1000"), VATAmount: dec("230")},
				{VATRate: 5, TaxableBase: dec("50"), VATAmount: dec("2.5")},
			},
		},
		{
			Kind:      invoices.KindReceived,
			IssueDate: date(2025, 1, 12),
			Items: []invoices.LineItem{
				{VATRate: 19, TaxableBase: dec("200"), VATAmount: dec("38")},
			},
		},
	}
	return vat.CalculateReturn(list, date(2025, 1, 1), date(2025, 1, 31))
}

func TestVATReturnXMLRoundTrip(t *testing.T) {
	ret := sampleReturn(t)
	out, err := RenderVATReturn(testCompany, ret, date(2025, 2, 20), EncodingUTF8)
	require.NoError(t, err)

	var doc VATDocument
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))

	require.Len(t, doc.Rows, 37)
	byID := make(map[string]string, len(doc.Rows))
	for _, row := range doc.Rows {
		byID[row.ID] = row.Amount
	}
	for _, line := range ret.Lines() {
		assert.Equal(t, line.Amount.StringFixed(2), byID[line.ID], "row %s", line.ID)
	}
	assert.Equal(t, "r01", doc.Rows[0].ID)
	assert.Equal(t, "r37", doc.Rows[36].ID)
	assert.Equal(t, 1, doc.Transactions.Issued)
	assert.Equal(t, 1, doc.Transactions.Received)
	assert.Equal(t, "SK2020123456", doc.Header.VATID)
	assert.Equal(t, "R", doc.Header.FilingKind)
	assert.Equal(t, "2025-02-20", doc.Header.FiledDate)
}

func TestVATReturnXMLEscapesText(t *testing.T) {
	ret := sampleReturn(t)
	out, err := RenderVATReturn(testCompany, ret, date(2025, 2, 20), EncodingUTF8)
	require.NoError(t, err)

	assert.Contains(t, out, "Omega &amp; Sons s.r.o.")
	assert.NotContains(t, out, "Omega & Sons")
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, vatNamespace)
}

func TestControlReportXMLSectionOrder(t *testing.T) {
	list := []invoices.Invoice{
		{
			Kind:              invoices.KindIssued,
			Number:            "FA-1",
			IssueDate:         date(2025, 1, 5),
			Total:             dec("1230"),
			VATAmount:         dec("230"),
			CounterpartyVATID: "SK7777777777",
			Items:             []invoices.LineItem{{VATRate: 23, TaxableBase: dec("1000"), VATAmount: dec("230")}},
		},
	}
	report := vat.CalculateControlReport(list, date(2025, 1, 1), date(2025, 1, 31))
	out, err := RenderControlReport(testCompany, report, date(2025, 2, 20), EncodingUTF8)
	require.NoError(t, err)

	var doc KVDocument
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Sections, 9)

	names := make([]string, 0, 9)
	for _, s := range doc.Sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"A1", "A2", "B1", "B2", "B3", "C1", "C2", "D1", "D2"}, names)

	a2 := doc.Sections[1]
	require.Equal(t, 1, a2.Count)
	require.Len(t, a2.Records, 1)
	assert.Equal(t, "SK7777777777", a2.Records[0].CounterpartyVATID)
	assert.Equal(t, "FA-1", a2.Records[0].InvoiceNumber)
	assert.Equal(t, "2025-01-05", a2.Records[0].InvoiceDate)
	assert.Equal(t, "1000.00", a2.Records[0].Base)
	assert.Equal(t, "230.00", a2.Records[0].Amount)
	assert.Equal(t, 23, a2.Records[0].Rate)

	// Empty sections stay present with a zero count.
	c2 := doc.Sections[6]
	assert.Equal(t, "C2", c2.Name)
	assert.Equal(t, 0, c2.Count)
	assert.Empty(t, c2.Records)
}

func TestRUZDocumentStructure(t *testing.T) {
	bs := statements.BalanceSheetData{
		CompanyID:    1,
		FiscalYearID: 10,
		AsOf:         date(2025, 12, 31),
		Assets: []statements.ComputedLine{{
			Label: "A.", Name: "Neobežný majetok", Row: 2,
			Gross: dec("1500"), Correction: dec("500"), Net: dec("1000"), PriorNet: dec("900"),
			Children: []statements.ComputedLine{{
				Label: "A.I.", Name: "Dlhodobý nehmotný majetok", Row: 3,
				Gross: dec("1500"), Correction: dec("500"), Net: dec("1000"), PriorNet: dec("900"),
			}},
		}},
		Liabilities: []statements.ComputedLine{{
			Label: "A.", Name: "Vlastné imanie", Row: 27,
			Net: dec("1000"), PriorNet: dec("900"),
		}},
		TotalAssets:               statements.RowValue{Current: dec("1000"), Prior: dec("900")},
		TotalEquityAndLiabilities: statements.RowValue{Current: dec("1000"), Prior: dec("900")},
		Balanced:                  true,
	}
	pl := statements.ProfitLossData{
		CompanyID:    1,
		FiscalYearID: 10,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 12, 31),
		Rows: []statements.PLLine{
			{Label: "I.", Name: "Tržby z predaja tovaru", Row: 1, Current: dec("800"), Prior: dec("700")},
			{Label: "+", Name: "Obchodná marža", Row: 3, Current: dec("300"), Prior: dec("250"), Composite: true},
		},
	}

	out, err := RenderRUZ(testCompany, bs, pl, date(2026, 3, 31), EncodingUTF8)
	require.NoError(t, err)

	var doc RUZDocument
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2025-01-01", doc.Header.PeriodFrom)
	assert.Equal(t, "2025-12-31", doc.Header.PeriodTo)
	assert.Equal(t, "2026-03-31", doc.Header.FiledDate)

	require.Len(t, doc.BalanceSheet.Assets, 1)
	root := doc.BalanceSheet.Assets[0]
	assert.Equal(t, "1500.00", root.Gross)
	assert.Equal(t, "500.00", root.Correction)
	assert.Equal(t, "1000.00", root.Net)
	assert.Equal(t, "900.00", root.PriorNet)
	require.Len(t, root.Children, 1)
	assert.Equal(t, 3, root.Children[0].Row)

	assert.Equal(t, "1000.00", doc.BalanceSheet.AssetTotal.Current)
	assert.Equal(t, "1000.00", doc.BalanceSheet.LiabilitiesTotal.Current)

	require.Len(t, doc.ProfitLoss.Rows, 2)
	assert.Equal(t, 1, doc.ProfitLoss.Rows[0].Row)
	assert.False(t, doc.ProfitLoss.Rows[0].Composite)
	assert.True(t, doc.ProfitLoss.Rows[1].Composite)
	assert.Equal(t, "300.00", doc.ProfitLoss.Rows[1].Current)
}

func TestRenderDeterministic(t *testing.T) {
	ret := sampleReturn(t)
	first, err := RenderVATReturn(testCompany, ret, date(2025, 2, 20), EncodingUTF8)
	require.NoError(t, err)
	second, err := RenderVATReturn(testCompany, ret, date(2025, 2, 20), EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderISO88592(t *testing.T) {
	ret := sampleReturn(t)
	out, err := RenderVATReturn(testCompany, ret, date(2025, 2, 20), EncodingISO2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="ISO-8859-2"?>`))
	assert.NotContains(t, out, "encoding=\"UTF-8\"")
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)

	enc, err = ParseEncoding("iso-8859-2")
	require.NoError(t, err)
	assert.Equal(t, EncodingISO2, enc)

	_, err = ParseEncoding("utf-16")
	assert.Error(t, err)
}
