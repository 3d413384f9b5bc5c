package filing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fiskal-sk/fiskal/internal/invoices"
	"github.com/fiskal-sk/fiskal/internal/statements"
	"github.com/fiskal-sk/fiskal/internal/vat"
)

// ErrDocumentNotReady is returned when the export job has not produced
// the document yet.
var ErrDocumentNotReady = errors.New("filing: document not ready")

// ErrMissingFiscalYear marks a registry export requested without a
// fiscal year.
var ErrMissingFiscalYear = errors.New("filing: ruz export requires fiscal_year_id")

// StatementsPort supplies computed statements for registry exports.
type StatementsPort interface {
	BalanceSheet(ctx context.Context, companyID, fiscalYearID int64, dateTo *time.Time) (statements.BalanceSheetData, error)
	ProfitLoss(ctx context.Context, companyID, fiscalYearID int64, dateFrom, dateTo *time.Time) (statements.ProfitLossData, error)
}

// InvoicePort supplies period invoices for tax exports.
type InvoicePort interface {
	ListInRange(ctx context.Context, companyID int64, from, to time.Time) ([]invoices.Invoice, error)
}

// Store persists export records and company identification.
type Store interface {
	Insert(ctx context.Context, f Filing) error
	ByID(ctx context.Context, id uuid.UUID) (Filing, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, document, checksum string, completedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	CompanyByID(ctx context.Context, id int64) (Company, error)
}

// Enqueuer hands a stored export to the background worker.
type Enqueuer interface {
	EnqueueFilingExport(ctx context.Context, filingID uuid.UUID) error
}

// Service renders regulator documents on demand and drives the stored
// export lifecycle.
type Service struct {
	logger     *slog.Logger
	store      Store
	statements StatementsPort
	invoices   InvoicePort
	enqueuer   Enqueuer
	now        func() time.Time
}

func NewService(logger *slog.Logger, store Store, stmts StatementsPort, inv InvoicePort, enqueuer Enqueuer) *Service {
	return &Service{
		logger:     logger,
		store:      store,
		statements: stmts,
		invoices:   inv,
		enqueuer:   enqueuer,
		now:        time.Now,
	}
}

// BuildRUZ renders the financial-statement registry document for a
// fiscal year.
func (s *Service) BuildRUZ(ctx context.Context, companyID, fiscalYearID int64, enc Encoding) (string, error) {
	company, err := s.store.CompanyByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	bs, err := s.statements.BalanceSheet(ctx, companyID, fiscalYearID, nil)
	if err != nil {
		return "", err
	}
	pl, err := s.statements.ProfitLoss(ctx, companyID, fiscalYearID, nil, nil)
	if err != nil {
		return "", err
	}
	return RenderRUZ(company, bs, pl, s.now().UTC(), enc)
}

// BuildVATReturn renders the periodic VAT-return document.
func (s *Service) BuildVATReturn(ctx context.Context, companyID int64, from, to time.Time, enc Encoding) (string, error) {
	company, err := s.store.CompanyByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	list, err := s.invoices.ListInRange(ctx, companyID, from, to)
	if err != nil {
		return "", err
	}
	ret := vat.CalculateReturn(list, from, to)
	return RenderVATReturn(company, ret, s.now().UTC(), enc)
}

// BuildControlReport renders the control-report document.
func (s *Service) BuildControlReport(ctx context.Context, companyID int64, from, to time.Time, enc Encoding) (string, error) {
	company, err := s.store.CompanyByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	list, err := s.invoices.ListInRange(ctx, companyID, from, to)
	if err != nil {
		return "", err
	}
	report := vat.CalculateControlReport(list, from, to)
	return RenderControlReport(company, report, s.now().UTC(), enc)
}

// ExportRequest describes a stored export to produce in the background.
type ExportRequest struct {
	CompanyID    int64
	DocumentType string
	FiscalYearID *int64
	PeriodFrom   time.Time
	PeriodTo     time.Time
}

// RequestExport stores a pending record and enqueues the render job.
func (s *Service) RequestExport(ctx context.Context, req ExportRequest) (Filing, error) {
	if !ValidDocumentType(req.DocumentType) {
		return Filing{}, ErrUnknownDocumentType
	}
	if req.DocumentType == DocTypeRUZ && req.FiscalYearID == nil {
		return Filing{}, ErrMissingFiscalYear
	}
	if _, err := s.store.CompanyByID(ctx, req.CompanyID); err != nil {
		return Filing{}, err
	}

	f := Filing{
		ID:           uuid.New(),
		CompanyID:    req.CompanyID,
		DocumentType: req.DocumentType,
		FiscalYearID: req.FiscalYearID,
		PeriodFrom:   req.PeriodFrom,
		PeriodTo:     req.PeriodTo,
		Status:       StatusPending,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Insert(ctx, f); err != nil {
		return Filing{}, err
	}
	if err := s.enqueuer.EnqueueFilingExport(ctx, f.ID); err != nil {
		// The record stays pending; a requeue can pick it up.
		s.logger.Error("enqueue filing export",
			slog.String("filing_id", f.ID.String()), slog.Any("error", err))
		return Filing{}, err
	}
	s.logger.Info("filing export requested",
		slog.String("filing_id", f.ID.String()),
		slog.String("document_type", f.DocumentType),
		slog.Int64("company_id", f.CompanyID))
	return f, nil
}

// Export renders the stored record's document and completes it. Called
// from the background worker.
func (s *Service) Export(ctx context.Context, filingID uuid.UUID) error {
	f, err := s.store.ByID(ctx, filingID)
	if err != nil {
		return err
	}

	document, err := s.renderFiling(ctx, f)
	if err != nil {
		if markErr := s.store.MarkFailed(ctx, f.ID, err.Error()); markErr != nil {
			s.logger.Error("mark filing failed",
				slog.String("filing_id", f.ID.String()), slog.Any("error", markErr))
		}
		return err
	}

	sum := sha256.Sum256([]byte(document))
	checksum := hex.EncodeToString(sum[:])
	if err := s.store.MarkCompleted(ctx, f.ID, document, checksum, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Info("filing export completed",
		slog.String("filing_id", f.ID.String()),
		slog.String("document_type", f.DocumentType),
		slog.String("checksum", checksum))
	return nil
}

func (s *Service) renderFiling(ctx context.Context, f Filing) (string, error) {
	switch f.DocumentType {
	case DocTypeRUZ:
		if f.FiscalYearID == nil {
			return "", ErrMissingFiscalYear
		}
		return s.BuildRUZ(ctx, f.CompanyID, *f.FiscalYearID, EncodingUTF8)
	case DocTypeVATReturn:
		return s.BuildVATReturn(ctx, f.CompanyID, f.PeriodFrom, f.PeriodTo, EncodingUTF8)
	case DocTypeControlReport:
		return s.BuildControlReport(ctx, f.CompanyID, f.PeriodFrom, f.PeriodTo, EncodingUTF8)
	}
	return "", ErrUnknownDocumentType
}

// Get loads one export record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Filing, error) {
	return s.store.ByID(ctx, id)
}

// Document returns the rendered XML of a completed export.
func (s *Service) Document(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := s.store.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	if f.Status != StatusCompleted {
		return "", ErrDocumentNotReady
	}
	return f.XML, nil
}
