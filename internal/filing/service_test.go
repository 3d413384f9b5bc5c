package filing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiskal-sk/fiskal/internal/invoices"
	"github.com/fiskal-sk/fiskal/internal/statements"
)

type mockStore struct {
	filings   map[uuid.UUID]Filing
	companies map[int64]Company
	insertErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		filings:   make(map[uuid.UUID]Filing),
		companies: map[int64]Company{testCompany.ID: testCompany},
	}
}

func (m *mockStore) Insert(_ context.Context, f Filing) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.filings[f.ID] = f
	return nil
}

func (m *mockStore) ByID(_ context.Context, id uuid.UUID) (Filing, error) {
	f, ok := m.filings[id]
	if !ok {
		return Filing{}, ErrFilingNotFound
	}
	return f, nil
}

func (m *mockStore) MarkCompleted(_ context.Context, id uuid.UUID, document, checksum string, completedAt time.Time) error {
	f, ok := m.filings[id]
	if !ok {
		return ErrFilingNotFound
	}
	f.Status = StatusCompleted
	f.XML = document
	f.Checksum = checksum
	f.CompletedAt = &completedAt
	m.filings[id] = f
	return nil
}

func (m *mockStore) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	f, ok := m.filings[id]
	if !ok {
		return ErrFilingNotFound
	}
	f.Status = StatusFailed
	f.FailReason = reason
	m.filings[id] = f
	return nil
}

func (m *mockStore) CompanyByID(_ context.Context, id int64) (Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	return c, nil
}

type mockStatements struct {
	bs   statements.BalanceSheetData
	pl   statements.ProfitLossData
	fail error
}

func (m *mockStatements) BalanceSheet(_ context.Context, _, _ int64, _ *time.Time) (statements.BalanceSheetData, error) {
	if m.fail != nil {
		return statements.BalanceSheetData{}, m.fail
	}
	return m.bs, nil
}

func (m *mockStatements) ProfitLoss(_ context.Context, _, _ int64, _, _ *time.Time) (statements.ProfitLossData, error) {
	if m.fail != nil {
		return statements.ProfitLossData{}, m.fail
	}
	return m.pl, nil
}

type mockInvoices struct {
	list []invoices.Invoice
	fail error
}

func (m *mockInvoices) ListInRange(_ context.Context, _ int64, _, _ time.Time) ([]invoices.Invoice, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.list, nil
}

type mockEnqueuer struct {
	enqueued []uuid.UUID
	fail     error
}

func (m *mockEnqueuer) EnqueueFilingExport(_ context.Context, id uuid.UUID) error {
	if m.fail != nil {
		return m.fail
	}
	m.enqueued = append(m.enqueued, id)
	return nil
}

func newTestService(store *mockStore, stmts *mockStatements, inv *mockInvoices, enq *mockEnqueuer) *Service {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), store, stmts, inv, enq)
	svc.now = func() time.Time { return date(2025, 2, 20) }
	return svc
}

func TestRequestExportEnqueues(t *testing.T) {
	store := newMockStore()
	enq := &mockEnqueuer{}
	svc := newTestService(store, &mockStatements{}, &mockInvoices{}, enq)

	f, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeVATReturn,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 1, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, f.Status)
	require.Len(t, enq.enqueued, 1)
	assert.Equal(t, f.ID, enq.enqueued[0])

	stored, err := store.ByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, DocTypeVATReturn, stored.DocumentType)
}

func TestRequestExportRejectsUnknownType(t *testing.T) {
	svc := newTestService(newMockStore(), &mockStatements{}, &mockInvoices{}, &mockEnqueuer{})
	_, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: "annual_report",
	})
	assert.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestRequestExportRUZNeedsFiscalYear(t *testing.T) {
	svc := newTestService(newMockStore(), &mockStatements{}, &mockInvoices{}, &mockEnqueuer{})
	_, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeRUZ,
	})
	assert.ErrorIs(t, err, ErrMissingFiscalYear)
}

func TestRequestExportUnknownCompany(t *testing.T) {
	svc := newTestService(newMockStore(), &mockStatements{}, &mockInvoices{}, &mockEnqueuer{})
	_, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    99,
		DocumentType: DocTypeVATReturn,
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestRequestExportDuplicate(t *testing.T) {
	store := newMockStore()
	store.insertErr = ErrDuplicateFiling
	svc := newTestService(store, &mockStatements{}, &mockInvoices{}, &mockEnqueuer{})
	_, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeControlReport,
	})
	assert.ErrorIs(t, err, ErrDuplicateFiling)
}

func TestExportCompletesVATReturn(t *testing.T) {
	store := newMockStore()
	inv := &mockInvoices{list: []invoices.Invoice{{
		Kind:      invoices.KindIssued,
		IssueDate: date(2025, 1, 10),
		Items:     []invoices.LineItem{{VATRate: 23, TaxableBase: dec("100"), VATAmount: dec("23")}},
	}}}
	svc := newTestService(store, &mockStatements{}, inv, &mockEnqueuer{})

	f, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeVATReturn,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 1, 31),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Export(context.Background(), f.ID))

	stored, err := store.ByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.NotEmpty(t, stored.Checksum)
	assert.True(t, strings.Contains(stored.XML, "r01"))
	require.NotNil(t, stored.CompletedAt)

	document, err := svc.Document(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.XML, document)
}

func TestExportMarksFailed(t *testing.T) {
	store := newMockStore()
	inv := &mockInvoices{fail: errors.New("invoices unavailable")}
	svc := newTestService(store, &mockStatements{}, inv, &mockEnqueuer{})

	f, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeVATReturn,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 1, 31),
	})
	require.NoError(t, err)

	err = svc.Export(context.Background(), f.ID)
	require.Error(t, err)

	stored, lookupErr := store.ByID(context.Background(), f.ID)
	require.NoError(t, lookupErr)
	assert.Equal(t, StatusFailed, stored.Status)
	assert.Contains(t, stored.FailReason, "invoices unavailable")
}

func TestDocumentNotReady(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store, &mockStatements{}, &mockInvoices{}, &mockEnqueuer{})

	f, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeVATReturn,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 1, 31),
	})
	require.NoError(t, err)

	_, err = svc.Document(context.Background(), f.ID)
	assert.ErrorIs(t, err, ErrDocumentNotReady)
}

func TestRequestExportEnqueueFailure(t *testing.T) {
	store := newMockStore()
	enq := &mockEnqueuer{fail: errors.New("redis down")}
	svc := newTestService(store, &mockStatements{}, &mockInvoices{}, enq)

	_, err := svc.RequestExport(context.Background(), ExportRequest{
		CompanyID:    testCompany.ID,
		DocumentType: DocTypeVATReturn,
		PeriodFrom:   date(2025, 1, 1),
		PeriodTo:     date(2025, 1, 31),
	})
	assert.Error(t, err)
}
