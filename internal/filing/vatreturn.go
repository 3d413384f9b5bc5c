package filing

import (
	"encoding/xml"
	"time"

	"github.com/fiskal-sk/fiskal/internal/vat"
)

// Namespace of the periodic VAT-return schema.
const vatNamespace = "http://www.drsr.sk/schema/dph/2025/v1"

// Filing-kind codes accepted by the tax authority. Only the regular
// filing is produced today.
const FilingKindRegular = "R"

// VATDocument is the periodic VAT-return submission: identification
// header, the fixed r01..r37 rows, then invoice counts.
type VATDocument struct {
	XMLName      xml.Name  `xml:"DanovePriznanieDPH"`
	Namespace    string    `xml:"xmlns,attr"`
	Header       VATHeader `xml:"Hlavicka"`
	Rows         []VATRow  `xml:"Telo>Riadok"`
	Transactions VATCounts `xml:"Transakcie"`
}

type VATHeader struct {
	TaxID      string `xml:"Dic"`
	VATID      string `xml:"IcDph"`
	Name       string `xml:"Nazov"`
	Street     string `xml:"Ulica"`
	City       string `xml:"Obec"`
	PostalCode string `xml:"Psc"`
	Country    string `xml:"Stat"`
	PeriodFrom string `xml:"ObdobieOd"`
	PeriodTo   string `xml:"ObdobieDo"`
	FilingKind string `xml:"DruhPriznania"`
	FiledDate  string `xml:"DatumPodania"`
}

// VATRow carries one identified amount. The id attribute keeps the row
// addressable on re-parse.
type VATRow struct {
	ID     string `xml:"id,attr"`
	Amount string `xml:",chardata"`
}

type VATCounts struct {
	Issued      int `xml:"VydaneFaktury"`
	Received    int `xml:"PrijateFaktury"`
	CreditNotes int `xml:"Dobropisy"`
}

// BuildVATDocument assembles the VAT-return submission from a computed
// return.
func BuildVATDocument(company Company, ret vat.Return, filedAt time.Time) VATDocument {
	lines := ret.Lines()
	rows := make([]VATRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, VATRow{ID: line.ID, Amount: line.Amount.StringFixed(2)})
	}
	return VATDocument{
		Namespace: vatNamespace,
		Header: VATHeader{
			TaxID:      company.TaxID,
			VATID:      company.VATID,
			Name:       company.Name,
			Street:     company.Street,
			City:       company.City,
			PostalCode: company.PostalCode,
			Country:    company.Country,
			PeriodFrom: ret.PeriodFrom.Format(dateLayout),
			PeriodTo:   ret.PeriodTo.Format(dateLayout),
			FilingKind: FilingKindRegular,
			FiledDate:  filedAt.Format(dateLayout),
		},
		Rows: rows,
		Transactions: VATCounts{
			Issued:      ret.IssuedCount,
			Received:    ret.ReceivedCount,
			CreditNotes: ret.CreditNoteCount,
		},
	}
}

// RenderVATReturn emits the VAT-return document as an XML string.
func RenderVATReturn(company Company, ret vat.Return, filedAt time.Time, enc Encoding) (string, error) {
	return render(BuildVATDocument(company, ret, filedAt), enc)
}
