package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a chart-of-accounts entry. Code is the synthetic account code
// used by statement templates, matched exactly or by prefix.
type Account struct {
	ID        int64
	CompanyID int64
	Code      string
	Name      string
}

// PostedLine is a single debit/credit line of a posted journal entry with
// its account code already resolved.
type PostedLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	EntryDate   time.Time
}

// FiscalYear bounds a company accounting period.
type FiscalYear struct {
	ID        int64
	CompanyID int64
	Year      int
	StartDate time.Time
	EndDate   time.Time
}

// Balance holds aggregated debit and credit totals for one account code.
type Balance struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// BalanceMap maps account code to aggregated totals.
type BalanceMap map[string]Balance

// Sentinel errors for the ledger package.
var (
	ErrFiscalYearNotFound = errors.New("ledger: fiscal year not found")
)

// Aggregate accumulates posted lines into per-code debit/credit totals.
// Totals are rounded to 2 decimals once, after summing the raw amounts.
func Aggregate(lines []PostedLine) BalanceMap {
	out := make(BalanceMap, len(lines))
	for _, line := range lines {
		b := out[line.AccountCode]
		b.Debit = b.Debit.Add(line.Debit)
		b.Credit = b.Credit.Add(line.Credit)
		out[line.AccountCode] = b
	}
	for code, b := range out {
		b.Debit = b.Debit.Round(2)
		b.Credit = b.Credit.Round(2)
		out[code] = b
	}
	return out
}
