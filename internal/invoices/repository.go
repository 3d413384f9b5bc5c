package invoices

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads invoices with nested line items.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListInRange returns non-deleted invoices issued within [from, to] for
// the company, line items attached, contact VAT id resolved.
func (r *Repository) ListInRange(ctx context.Context, companyID int64, from, to time.Time) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT i.id, i.company_id, i.kind, i.number, i.issue_date,
i.total, i.vat_amount, COALESCE(c.vat_id, ''), i.reverse_charge, i.cancelled
FROM invoices i
LEFT JOIN contacts c ON c.id = i.contact_id
WHERE i.company_id = $1
  AND i.issue_date >= $2
  AND i.issue_date <= $3
  AND i.deleted_at IS NULL
ORDER BY i.issue_date, i.number`, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Invoice
	index := make(map[string]int)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.Kind, &inv.Number, &inv.IssueDate,
			&inv.Total, &inv.VATAmount, &inv.CounterpartyVATID, &inv.ReverseCharge, &inv.Cancelled); err != nil {
			return nil, err
		}
		index[inv.ID.String()] = len(list)
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.pool.Query(ctx, `SELECT li.invoice_id, li.vat_rate, li.taxable_base, li.vat_amount
FROM invoice_line_items li
JOIN invoices i ON i.id = li.invoice_id
WHERE i.company_id = $1
  AND i.issue_date >= $2
  AND i.issue_date <= $3
  AND i.deleted_at IS NULL
ORDER BY li.invoice_id, li.id`, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var invoiceID string
		var item LineItem
		if err := itemRows.Scan(&invoiceID, &item.VATRate, &item.TaxableBase, &item.VATAmount); err != nil {
			return nil, err
		}
		if pos, ok := index[invoiceID]; ok {
			list[pos].Items = append(list[pos].Items, item)
		}
	}
	return list, itemRows.Err()
}
