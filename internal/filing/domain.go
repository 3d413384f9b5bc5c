// Package filing renders regulator-ready XML documents from computed
// statements and tax returns, and tracks stored export records.
package filing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Document types accepted by the export pipeline.
const (
	DocTypeRUZ           = "ruz"
	DocTypeVATReturn     = "vat_return"
	DocTypeControlReport = "control_report"
)

// Export statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

var (
	ErrFilingNotFound      = errors.New("filing: not found")
	ErrDuplicateFiling     = errors.New("filing: export already requested for period")
	ErrUnknownDocumentType = errors.New("filing: unknown document type")
	ErrCompanyNotFound     = errors.New("filing: company not found")
)

// Company carries the identification block every regulator document
// opens with.
type Company struct {
	ID         int64
	Name       string
	TaxID      string
	VATID      string
	Street     string
	City       string
	PostalCode string
	Country    string
}

// Filing is one stored export record. XML and Checksum are filled when
// the background job completes.
type Filing struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    int64      `json:"company_id"`
	DocumentType string     `json:"document_type"`
	FiscalYearID *int64     `json:"fiscal_year_id,omitempty"`
	PeriodFrom   time.Time  `json:"period_from"`
	PeriodTo     time.Time  `json:"period_to"`
	Status       string     `json:"status"`
	XML          string     `json:"-"`
	Checksum     string     `json:"checksum,omitempty"`
	FailReason   string     `json:"fail_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ValidDocumentType reports whether t names a renderable document.
func ValidDocumentType(t string) bool {
	switch t {
	case DocTypeRUZ, DocTypeVATReturn, DocTypeControlReport:
		return true
	}
	return false
}
