package filing

import (
	"encoding/xml"
	"time"

	"github.com/fiskal-sk/fiskal/internal/vat"
)

// Namespace of the control-report schema.
const kvNamespace = "http://www.drsr.sk/schema/kvdph/2025/v1"

// KVDocument is the control-report submission: identification header
// then the nine sections in fixed order, empty sections included.
type KVDocument struct {
	XMLName   xml.Name    `xml:"KontrolnyVykazDPH"`
	Namespace string      `xml:"xmlns,attr"`
	Header    KVHeader    `xml:"Hlavicka"`
	Sections  []KVSection `xml:"Sekcie>Sekcia"`
}

type KVHeader struct {
	TaxID      string `xml:"Dic"`
	VATID      string `xml:"IcDph"`
	Name       string `xml:"Nazov"`
	PeriodFrom string `xml:"ObdobieOd"`
	PeriodTo   string `xml:"ObdobieDo"`
	FiledDate  string `xml:"DatumPodania"`
}

type KVSection struct {
	Name    string     `xml:"nazov,attr"`
	Count   int        `xml:"pocet,attr"`
	Records []KVRecord `xml:"Zaznam"`
}

type KVRecord struct {
	CounterpartyVATID string `xml:"IcDphPartnera"`
	InvoiceNumber     string `xml:"CisloFaktury"`
	InvoiceDate       string `xml:"DatumFaktury"`
	Base              string `xml:"Zaklad"`
	Amount            string `xml:"Dan"`
	Rate              int    `xml:"Sadzba"`
}

// BuildControlReportDocument assembles the control-report submission.
func BuildControlReportDocument(company Company, report vat.ControlReport, filedAt time.Time) KVDocument {
	sections := report.Sections()
	out := make([]KVSection, 0, len(sections))
	for _, section := range sections {
		records := make([]KVRecord, 0, len(section.Records))
		for _, rec := range section.Records {
			records = append(records, KVRecord{
				CounterpartyVATID: rec.CounterpartyVATID,
				InvoiceNumber:     rec.InvoiceNumber,
				InvoiceDate:       rec.InvoiceDate.Format(dateLayout),
				Base:              rec.Base.StringFixed(2),
				Amount:            rec.Amount.StringFixed(2),
				Rate:              rec.Rate,
			})
		}
		out = append(out, KVSection{Name: section.Name, Count: len(records), Records: records})
	}
	return KVDocument{
		Namespace: kvNamespace,
		Header: KVHeader{
			TaxID:      company.TaxID,
			VATID:      company.VATID,
			Name:       company.Name,
			PeriodFrom: report.PeriodFrom.Format(dateLayout),
			PeriodTo:   report.PeriodTo.Format(dateLayout),
			FiledDate:  filedAt.Format(dateLayout),
		},
		Sections: out,
	}
}

// RenderControlReport emits the control-report document as an XML string.
func RenderControlReport(company Company, report vat.ControlReport, filedAt time.Time, enc Encoding) (string, error) {
	return render(BuildControlReportDocument(company, report, filedAt), enc)
}
