package statements

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fiskal-sk/fiskal/internal/ledger"
)

// LedgerPort exposes the ledger aggregations the calculators consume.
type LedgerPort interface {
	BalancesForRange(ctx context.Context, companyID int64, from, to time.Time) (ledger.BalanceMap, error)
	BalancesAsOf(ctx context.Context, companyID int64, to time.Time) (ledger.BalanceMap, error)
	FiscalYearByID(ctx context.Context, id int64) (ledger.FiscalYear, error)
	PreviousFiscalYear(ctx context.Context, companyID int64, before time.Time) (ledger.FiscalYear, error)
}

// Service computes balance sheets and profit and loss statements.
type Service struct {
	ledger LedgerPort
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs the statement service. Template configuration is
// validated here so a malformed layout fails at startup, not mid-report.
func NewService(ledgerPort LedgerPort, cache *Cache, logger *slog.Logger) (*Service, error) {
	combined := append(assetTemplates(), liabilityTemplates()...)
	if err := ValidateTemplates(combined); err != nil {
		return nil, fmt.Errorf("statements: balance sheet template: %w", err)
	}
	var plRoots []LineTemplate
	for _, row := range profitLossRows() {
		plRoots = append(plRoots, row.tpl)
	}
	if err := ValidateTemplates(plRoots); err != nil {
		return nil, fmt.Errorf("statements: profit and loss template: %w", err)
	}
	return &Service{ledger: ledgerPort, cache: cache, logger: logger}, nil
}

// BalanceSheet computes the two statement halves as of the fiscal year
// end (or an explicit earlier date), with the prior fiscal year end as
// the comparison snapshot.
func (s *Service) BalanceSheet(ctx context.Context, companyID, fiscalYearID int64, dateTo *time.Time) (BalanceSheetData, error) {
	fy, err := s.ledger.FiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return BalanceSheetData{}, err
	}
	if fy.CompanyID != companyID {
		return BalanceSheetData{}, ledger.ErrFiscalYearNotFound
	}
	asOf := fy.EndDate
	if dateTo != nil {
		asOf = *dateTo
	}

	var data BalanceSheetData
	key := fmt.Sprintf("bs:%d:%d:%s", companyID, fiscalYearID, asOf.Format("2006-01-02"))
	err = s.cache.FetchJSON(ctx, key, &data, func(ctx context.Context) (any, error) {
		return s.buildBalanceSheet(ctx, companyID, fy, asOf)
	})
	return data, err
}

func (s *Service) buildBalanceSheet(ctx context.Context, companyID int64, fy ledger.FiscalYear, asOf time.Time) (BalanceSheetData, error) {
	current, prior, err := s.snapshots(ctx, companyID, fy, asOf)
	if err != nil {
		return BalanceSheetData{}, err
	}

	assets, assetTotal, err := evaluateSide(assetTemplates(), current, prior, true)
	if err != nil {
		return BalanceSheetData{}, err
	}
	liabilities, liabilityTotal, err := evaluateSide(liabilityTemplates(), current, prior, false)
	if err != nil {
		return BalanceSheetData{}, err
	}

	data := BalanceSheetData{
		CompanyID:    companyID,
		FiscalYearID: fy.ID,
		AsOf:         asOf,
		Assets:       assets,
		Liabilities:  liabilities,
		TotalAssets:  RowValue{Current: assetTotal.Net, Prior: assetTotal.PriorNet},
		TotalEquityAndLiabilities: RowValue{
			Current: liabilityTotal.Net,
			Prior:   liabilityTotal.PriorNet,
		},
	}
	data.Balanced = data.TotalAssets.Current.Equal(data.TotalEquityAndLiabilities.Current)
	if !data.Balanced {
		// Imbalance is reported, never blocks the report.
		data.Message = fmt.Sprintf("assets %s do not equal equity and liabilities %s",
			data.TotalAssets.Current.StringFixed(2), data.TotalEquityAndLiabilities.Current.StringFixed(2))
		if s.logger != nil {
			s.logger.Warn("balance sheet out of balance",
				slog.Int64("company_id", companyID),
				slog.String("assets", data.TotalAssets.Current.StringFixed(2)),
				slog.String("equity_and_liabilities", data.TotalEquityAndLiabilities.Current.StringFixed(2)))
		}
	}
	return data, nil
}

// snapshots loads the current and prior point-in-time aggregations. The
// two reads cover disjoint ranges, so they run concurrently. A missing
// prior fiscal year is soft: comparison values default to zero.
func (s *Service) snapshots(ctx context.Context, companyID int64, fy ledger.FiscalYear, asOf time.Time) (current, prior ledger.BalanceMap, err error) {
	priorFY, err := s.ledger.PreviousFiscalYear(ctx, companyID, fy.StartDate)
	hasPrior := err == nil
	if err != nil && !errors.Is(err, ledger.ErrFiscalYearNotFound) {
		return nil, nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.ledger.BalancesAsOf(gctx, companyID, asOf)
		return err
	})
	if hasPrior {
		g.Go(func() error {
			var err error
			prior, err = s.ledger.BalancesAsOf(gctx, companyID, priorFY.EndDate)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, prior, nil
}

// ProfitLoss computes the statement for the requested period (defaulting
// to the whole fiscal year) against the full prior fiscal year.
func (s *Service) ProfitLoss(ctx context.Context, companyID, fiscalYearID int64, dateFrom, dateTo *time.Time) (ProfitLossData, error) {
	fy, err := s.ledger.FiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return ProfitLossData{}, err
	}
	if fy.CompanyID != companyID {
		return ProfitLossData{}, ledger.ErrFiscalYearNotFound
	}
	from, to := fy.StartDate, fy.EndDate
	if dateFrom != nil {
		from = *dateFrom
	}
	if dateTo != nil {
		to = *dateTo
	}

	var data ProfitLossData
	key := fmt.Sprintf("pl:%d:%d:%s:%s", companyID, fiscalYearID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	err = s.cache.FetchJSON(ctx, key, &data, func(ctx context.Context) (any, error) {
		return s.buildProfitLoss(ctx, companyID, fy, from, to)
	})
	return data, err
}

func (s *Service) buildProfitLoss(ctx context.Context, companyID int64, fy ledger.FiscalYear, from, to time.Time) (ProfitLossData, error) {
	priorFY, err := s.ledger.PreviousFiscalYear(ctx, companyID, fy.StartDate)
	hasPrior := err == nil
	if err != nil && !errors.Is(err, ledger.ErrFiscalYearNotFound) {
		return ProfitLossData{}, err
	}

	var current, prior ledger.BalanceMap
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.ledger.BalancesForRange(gctx, companyID, from, to)
		return err
	})
	if hasPrior {
		g.Go(func() error {
			var err error
			prior, err = s.ledger.BalancesForRange(gctx, companyID, priorFY.StartDate, priorFY.EndDate)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return ProfitLossData{}, err
	}

	return buildProfitLossData(companyID, fy.ID, from, to, current, prior)
}

func buildProfitLossData(companyID, fiscalYearID int64, from, to time.Time, current, prior ledger.BalanceMap) (ProfitLossData, error) {
	eval := NewEvaluator(current, prior)
	rows := profitLossRows()
	computed := make([]*ComputedLine, 0, len(rows))
	for _, row := range rows {
		computed = append(computed, eval.EvalTree(row.tpl, row.debitNormal))
	}
	if err := eval.Resolve(); err != nil {
		return ProfitLossData{}, err
	}

	rv := make(RowValues, len(rows))
	for _, line := range computed {
		collectRowValues(rv, line)
	}
	formulas := profitLossFormulas()
	if err := ApplyFormulas(rv, formulas); err != nil {
		return ProfitLossData{}, err
	}

	data := ProfitLossData{
		CompanyID:    companyID,
		FiscalYearID: fiscalYearID,
		PeriodFrom:   from,
		PeriodTo:     to,
		RowValues:    rv,
	}
	for _, line := range computed {
		data.Rows = append(data.Rows, toPLLine(*line))
	}
	for _, f := range formulas {
		val := rv[f.Row]
		data.Rows = append(data.Rows, PLLine{
			Label: f.Label, Name: f.Name, Row: f.Row,
			Current: val.Current, Prior: val.Prior, Composite: true,
		})
	}
	sort.SliceStable(data.Rows, func(i, j int) bool { return data.Rows[i].Row < data.Rows[j].Row })
	return data, nil
}

func collectRowValues(rv RowValues, line *ComputedLine) {
	if line.Row != 0 {
		rv[line.Row] = RowValue{Current: line.Net, Prior: line.PriorNet}
	}
	for i := range line.Children {
		collectRowValues(rv, &line.Children[i])
	}
}

func toPLLine(line ComputedLine) PLLine {
	out := PLLine{
		Label:   line.Label,
		Name:    line.Name,
		Row:     line.Row,
		Current: line.Net,
		Prior:   line.PriorNet,
	}
	for _, child := range line.Children {
		out.Children = append(out.Children, toPLLine(child))
	}
	return out
}

func evaluateSide(roots []LineTemplate, current, prior ledger.BalanceMap, assetSide bool) ([]ComputedLine, ComputedLine, error) {
	eval := NewEvaluator(current, prior)
	computed := make([]*ComputedLine, 0, len(roots))
	for _, root := range roots {
		computed = append(computed, eval.EvalTree(root, assetSide))
	}
	if err := eval.Resolve(); err != nil {
		return nil, ComputedLine{}, err
	}
	out := make([]ComputedLine, 0, len(computed))
	var total ComputedLine
	for _, line := range computed {
		out = append(out, *line)
	}
	// The statutory total is the last root of each half.
	if len(computed) > 0 {
		total = *computed[len(computed)-1]
	}
	return out, total, nil
}
