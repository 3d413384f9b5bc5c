package filing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Repository persists export records and reads company identification.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new pending export. A second request for the same
// company, document type and period hits the table's unique constraint
// and maps to ErrDuplicateFiling.
func (r *Repository) Insert(ctx context.Context, f Filing) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO filings (id, company_id, document_type, fiscal_year_id, period_from, period_to, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.CompanyID, f.DocumentType, f.FiscalYearID, f.PeriodFrom, f.PeriodTo, f.Status, f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateFiling
		}
		return err
	}
	return nil
}

// ByID loads one export record including the rendered document.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (Filing, error) {
	var f Filing
	err := r.pool.QueryRow(ctx, `
		SELECT id, company_id, document_type, fiscal_year_id, period_from, period_to,
		       status, COALESCE(document, ''), COALESCE(checksum, ''), COALESCE(fail_reason, ''),
		       created_at, completed_at
		FROM filings WHERE id = $1`, id).
		Scan(&f.ID, &f.CompanyID, &f.DocumentType, &f.FiscalYearID, &f.PeriodFrom, &f.PeriodTo,
			&f.Status, &f.XML, &f.Checksum, &f.FailReason, &f.CreatedAt, &f.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Filing{}, ErrFilingNotFound
	}
	if err != nil {
		return Filing{}, err
	}
	return f, nil
}

// MarkCompleted stores the rendered document and flips the record to
// COMPLETED.
func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID, document, checksum string, completedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE filings SET status = $2, document = $3, checksum = $4, completed_at = $5
		WHERE id = $1`,
		id, StatusCompleted, document, checksum, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFilingNotFound
	}
	return nil
}

// MarkFailed records why an export could not be produced.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE filings SET status = $2, fail_reason = $3 WHERE id = $1`,
		id, StatusFailed, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFilingNotFound
	}
	return nil
}

// CompanyByID reads the identification block used in document headers.
func (r *Repository) CompanyByID(ctx context.Context, id int64) (Company, error) {
	var c Company
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, tax_id, COALESCE(vat_id, ''), street, city, postal_code, country
		FROM companies WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&c.ID, &c.Name, &c.TaxID, &c.VATID, &c.Street, &c.City, &c.PostalCode, &c.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, ErrCompanyNotFound
	}
	if err != nil {
		return Company{}, err
	}
	return c, nil
}
