package filing

import (
	"encoding/xml"
	"time"

	"github.com/fiskal-sk/fiskal/internal/statements"
)

// Namespace of the financial-statement registry schema.
const ruzNamespace = "http://www.registeruz.sk/schema/uctovna-zavierka/1.1"

const dateLayout = "2006-01-02"

// RUZDocument is the annual financial-statement submission: header,
// identification, balance sheet and profit and loss.
type RUZDocument struct {
	XMLName      xml.Name      `xml:"UctovnaZavierka"`
	Namespace    string        `xml:"xmlns,attr"`
	Header       RUZHeader     `xml:"Hlavicka"`
	BalanceSheet RUZSuvaha     `xml:"Suvaha"`
	ProfitLoss   RUZVykazZisku `xml:"VykazZiskovAStrat"`
}

type RUZHeader struct {
	Name       string `xml:"NazovUctovnejJednotky"`
	TaxID      string `xml:"Dic"`
	VATID      string `xml:"IcDph,omitempty"`
	Street     string `xml:"Ulica"`
	City       string `xml:"Obec"`
	PostalCode string `xml:"Psc"`
	Country    string `xml:"Stat"`
	PeriodFrom string `xml:"ObdobieOd"`
	PeriodTo   string `xml:"ObdobieDo"`
	FiledDate  string `xml:"DatumZostavenia"`
}

type RUZSuvaha struct {
	Assets           []RUZLine `xml:"Aktiva>Polozka"`
	AssetTotal       RUZTotal  `xml:"SpoluMajetok"`
	Liabilities      []RUZLine `xml:"Pasiva>Polozka"`
	LiabilitiesTotal RUZTotal  `xml:"SpoluVlastneImanieAZavazky"`
}

// RUZLine is one balance-sheet row. Children nest under Polozky to keep
// the template tree shape in the document.
type RUZLine struct {
	Row        int       `xml:"Riadok"`
	Label      string    `xml:"Oznacenie"`
	Name       string    `xml:"Nazov"`
	Gross      string    `xml:"Brutto"`
	Correction string    `xml:"Korekcia"`
	Net        string    `xml:"Netto"`
	PriorNet   string    `xml:"NettoPredchadzajuce"`
	Children   []RUZLine `xml:"Polozky>Polozka"`
}

type RUZTotal struct {
	Current string `xml:"BezneObdobie"`
	Prior   string `xml:"PredchadzajuceObdobie"`
}

type RUZVykazZisku struct {
	Rows []RUZPLRow `xml:"Riadky>Riadok"`
}

type RUZPLRow struct {
	Row       int    `xml:"Cislo"`
	Label     string `xml:"Oznacenie"`
	Name      string `xml:"Nazov"`
	Current   string `xml:"BezneObdobie"`
	Prior     string `xml:"PredchadzajuceObdobie"`
	Composite bool   `xml:"Sucet,attr,omitempty"`
}

// BuildRUZDocument assembles the registry submission from computed
// statements. It formats, it does not validate.
func BuildRUZDocument(company Company, bs statements.BalanceSheetData, pl statements.ProfitLossData, filedAt time.Time) RUZDocument {
	return RUZDocument{
		Namespace: ruzNamespace,
		Header: RUZHeader{
			Name:       company.Name,
			TaxID:      company.TaxID,
			VATID:      company.VATID,
			Street:     company.Street,
			City:       company.City,
			PostalCode: company.PostalCode,
			Country:    company.Country,
			PeriodFrom: pl.PeriodFrom.Format(dateLayout),
			PeriodTo:   pl.PeriodTo.Format(dateLayout),
			FiledDate:  filedAt.Format(dateLayout),
		},
		BalanceSheet: RUZSuvaha{
			Assets:           ruzLines(bs.Assets),
			AssetTotal:       ruzTotal(bs.TotalAssets),
			Liabilities:      ruzLines(bs.Liabilities),
			LiabilitiesTotal: ruzTotal(bs.TotalEquityAndLiabilities),
		},
		ProfitLoss: RUZVykazZisku{Rows: ruzPLRows(pl.Rows)},
	}
}

func ruzLines(lines []statements.ComputedLine) []RUZLine {
	out := make([]RUZLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, RUZLine{
			Row:        line.Row,
			Label:      line.Label,
			Name:       line.Name,
			Gross:      line.Gross.StringFixed(2),
			Correction: line.Correction.StringFixed(2),
			Net:        line.Net.StringFixed(2),
			PriorNet:   line.PriorNet.StringFixed(2),
			Children:   ruzLines(line.Children),
		})
	}
	return out
}

func ruzPLRows(rows []statements.PLLine) []RUZPLRow {
	out := make([]RUZPLRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RUZPLRow{
			Row:       row.Row,
			Label:     row.Label,
			Name:      row.Name,
			Current:   row.Current.StringFixed(2),
			Prior:     row.Prior.StringFixed(2),
			Composite: row.Composite,
		})
		// Display nesting flattens into the row list in document order.
		out = append(out, ruzPLRows(row.Children)...)
	}
	return out
}

func ruzTotal(v statements.RowValue) RUZTotal {
	return RUZTotal{Current: v.Current.StringFixed(2), Prior: v.Prior.StringFixed(2)}
}

// RenderRUZ emits the registry document as an XML string.
func RenderRUZ(company Company, bs statements.BalanceSheetData, pl statements.ProfitLossData, filedAt time.Time, enc Encoding) (string, error) {
	return render(BuildRUZDocument(company, bs, pl, filedAt), enc)
}
