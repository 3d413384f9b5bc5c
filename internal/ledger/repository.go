package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads posted journal lines, accounts, and fiscal years.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// PostedLinesInRange returns posted journal lines for the company whose
// entry date falls within [from, to], with the account code joined in.
// Soft-deleted accounts are excluded.
func (r *Repository) PostedLinesInRange(ctx context.Context, companyID int64, from, to time.Time) ([]PostedLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.code, l.debit, l.credit, e.entry_date
FROM journal_lines l
JOIN journal_entries e ON e.id = l.entry_id
JOIN accounts a ON a.id = l.account_id
WHERE e.company_id = $1
  AND e.status = 'POSTED'
  AND e.entry_date >= $2
  AND e.entry_date <= $3
  AND a.deleted_at IS NULL
ORDER BY e.entry_date, l.id`, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []PostedLine
	for rows.Next() {
		var line PostedLine
		if err := rows.Scan(&line.AccountCode, &line.Debit, &line.Credit, &line.EntryDate); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// PostedLinesAsOf returns all posted lines up to and including the date.
// Balance sheets are snapshots, so the lower bound is open.
func (r *Repository) PostedLinesAsOf(ctx context.Context, companyID int64, to time.Time) ([]PostedLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.code, l.debit, l.credit, e.entry_date
FROM journal_lines l
JOIN journal_entries e ON e.id = l.entry_id
JOIN accounts a ON a.id = l.account_id
WHERE e.company_id = $1
  AND e.status = 'POSTED'
  AND e.entry_date <= $2
  AND a.deleted_at IS NULL
ORDER BY e.entry_date, l.id`, companyID, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []PostedLine
	for rows.Next() {
		var line PostedLine
		if err := rows.Scan(&line.AccountCode, &line.Debit, &line.Credit, &line.EntryDate); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ListAccounts returns the company chart of accounts, excluding
// soft-deleted entries.
func (r *Repository) ListAccounts(ctx context.Context, companyID int64) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, code, name
FROM accounts WHERE company_id = $1 AND deleted_at IS NULL ORDER BY code`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// FiscalYearByID loads a fiscal year record.
func (r *Repository) FiscalYearByID(ctx context.Context, id int64) (FiscalYear, error) {
	var fy FiscalYear
	err := r.pool.QueryRow(ctx, `SELECT id, company_id, year, start_date, end_date
FROM fiscal_years WHERE id = $1`, id).
		Scan(&fy.ID, &fy.CompanyID, &fy.Year, &fy.StartDate, &fy.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FiscalYear{}, ErrFiscalYearNotFound
		}
		return FiscalYear{}, err
	}
	return fy, nil
}

// FiscalYearByYear loads the fiscal year for a company and calendar year.
func (r *Repository) FiscalYearByYear(ctx context.Context, companyID int64, year int) (FiscalYear, error) {
	var fy FiscalYear
	err := r.pool.QueryRow(ctx, `SELECT id, company_id, year, start_date, end_date
FROM fiscal_years WHERE company_id = $1 AND year = $2`, companyID, year).
		Scan(&fy.ID, &fy.CompanyID, &fy.Year, &fy.StartDate, &fy.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FiscalYear{}, ErrFiscalYearNotFound
		}
		return FiscalYear{}, err
	}
	return fy, nil
}

// PreviousFiscalYear returns the fiscal year immediately preceding the
// given one, by end date.
func (r *Repository) PreviousFiscalYear(ctx context.Context, companyID int64, before time.Time) (FiscalYear, error) {
	var fy FiscalYear
	err := r.pool.QueryRow(ctx, `SELECT id, company_id, year, start_date, end_date
FROM fiscal_years WHERE company_id = $1 AND end_date < $2
ORDER BY end_date DESC LIMIT 1`, companyID, before).
		Scan(&fy.ID, &fy.CompanyID, &fy.Year, &fy.StartDate, &fy.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FiscalYear{}, ErrFiscalYearNotFound
		}
		return FiscalYear{}, err
	}
	return fy, nil
}
