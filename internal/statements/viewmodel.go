package statements

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheetData is the structured balance sheet result: both halves
// of the statement plus their statutory totals. Balanced is advisory; an
// out-of-balance sheet is still returned, with Message explaining why.
type BalanceSheetData struct {
	CompanyID                 int64          `json:"company_id"`
	FiscalYearID              int64          `json:"fiscal_year_id"`
	AsOf                      time.Time      `json:"as_of"`
	Assets                    []ComputedLine `json:"assets"`
	Liabilities               []ComputedLine `json:"liabilities"`
	TotalAssets               RowValue       `json:"total_assets"`
	TotalEquityAndLiabilities RowValue       `json:"total_equity_and_liabilities"`
	Balanced                  bool           `json:"balanced"`
	Message                   string         `json:"message,omitempty"`
}

// PLLine is one display row of the profit and loss statement. Composite
// rows are produced by the formula pass, not by templates.
type PLLine struct {
	Label     string          `json:"label"`
	Name      string          `json:"name"`
	Row       int             `json:"row"`
	Current   decimal.Decimal `json:"current"`
	Prior     decimal.Decimal `json:"prior"`
	Composite bool            `json:"composite,omitempty"`
	Children  []PLLine        `json:"children,omitempty"`
}

// ProfitLossData is the structured profit and loss result. RowValues
// carries every row, template and composite alike, for downstream
// consumers that address rows by number.
type ProfitLossData struct {
	CompanyID    int64     `json:"company_id"`
	FiscalYearID int64     `json:"fiscal_year_id"`
	PeriodFrom   time.Time `json:"period_from"`
	PeriodTo     time.Time `json:"period_to"`
	Rows         []PLLine  `json:"rows"`
	RowValues    RowValues `json:"row_values"`
}
