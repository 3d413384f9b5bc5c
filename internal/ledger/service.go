package ledger

import (
	"context"
	"time"
)

// ReaderPort abstracts the posted-line and fiscal-year reads used by the
// aggregation service.
type ReaderPort interface {
	PostedLinesInRange(ctx context.Context, companyID int64, from, to time.Time) ([]PostedLine, error)
	PostedLinesAsOf(ctx context.Context, companyID int64, to time.Time) ([]PostedLine, error)
	FiscalYearByID(ctx context.Context, id int64) (FiscalYear, error)
	PreviousFiscalYear(ctx context.Context, companyID int64, before time.Time) (FiscalYear, error)
}

// Service aggregates posted ledger lines into per-code balances.
type Service struct {
	repo ReaderPort
}

// NewService constructs the ledger aggregation service.
func NewService(repo ReaderPort) *Service {
	return &Service{repo: repo}
}

// BalancesForRange aggregates posted lines with entry dates in [from, to].
// An empty range yields an empty map; read failures surface as-is.
func (s *Service) BalancesForRange(ctx context.Context, companyID int64, from, to time.Time) (BalanceMap, error) {
	lines, err := s.repo.PostedLinesInRange(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

// BalancesAsOf aggregates all posted lines up to and including the date.
func (s *Service) BalancesAsOf(ctx context.Context, companyID int64, to time.Time) (BalanceMap, error) {
	lines, err := s.repo.PostedLinesAsOf(ctx, companyID, to)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

// FiscalYearByID loads a fiscal year record.
func (s *Service) FiscalYearByID(ctx context.Context, id int64) (FiscalYear, error) {
	return s.repo.FiscalYearByID(ctx, id)
}

// PreviousFiscalYear locates the fiscal year ending before the given date.
func (s *Service) PreviousFiscalYear(ctx context.Context, companyID int64, before time.Time) (FiscalYear, error) {
	return s.repo.PreviousFiscalYear(ctx, companyID, before)
}
