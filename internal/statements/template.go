package statements

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiskal-sk/fiskal/internal/ledger"
)

// LineTemplate is one node of a declarative statement layout. A node
// computes its value in exactly one way: from its children, from other
// rows referenced by number, or directly from ledger account codes.
type LineTemplate struct {
	Label           string
	Name            string
	Row             int
	AccountCodes    []string
	CorrectionCodes []string
	Children        []LineTemplate
	SumOfRows       []int
}

// ComputedLine mirrors the template shape with evaluated amounts. Net is
// always Gross minus Correction for the current period; only the net is
// retained for the prior period.
type ComputedLine struct {
	Label      string          `json:"label"`
	Name       string          `json:"name"`
	Row        int             `json:"row"`
	Gross      decimal.Decimal `json:"gross"`
	Correction decimal.Decimal `json:"correction"`
	Net        decimal.Decimal `json:"net"`
	PriorNet   decimal.Decimal `json:"prior_net"`
	Children   []ComputedLine  `json:"children,omitempty"`
}

// Template configuration defects fail loudly at service construction.
var (
	ErrMalformedTemplate = errors.New("statements: malformed template")
	ErrRowUnresolved     = errors.New("statements: row reference unresolved")
	ErrDuplicateRow      = errors.New("statements: duplicate row number")
)

// Validate checks that every node has exactly one computation mode and
// that row-reference nodes do not hide inside children subtrees, where
// the single-pass child sum could read them before they resolve.
func (t LineTemplate) Validate() error {
	return t.validate(false)
}

func (t LineTemplate) validate(insideChildren bool) error {
	modes := 0
	if len(t.Children) > 0 {
		modes++
	}
	if len(t.SumOfRows) > 0 {
		modes++
	}
	if len(t.AccountCodes) > 0 {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("%w: node %q (row %d) has %d computation modes", ErrMalformedTemplate, t.Name, t.Row, modes)
	}
	if insideChildren && len(t.SumOfRows) > 0 {
		return fmt.Errorf("%w: node %q (row %d) sums rows inside a children subtree", ErrMalformedTemplate, t.Name, t.Row)
	}
	for _, child := range t.Children {
		if err := child.validate(true); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTemplates checks a whole template forest, including row-number
// uniqueness across trees.
func ValidateTemplates(roots []LineTemplate) error {
	seen := make(map[int]bool)
	var walk func(t LineTemplate) error
	walk = func(t LineTemplate) error {
		if t.Row != 0 {
			if seen[t.Row] {
				return fmt.Errorf("%w: row %d (%s)", ErrDuplicateRow, t.Row, t.Name)
			}
			seen[t.Row] = true
		}
		for _, child := range t.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := root.Validate(); err != nil {
			return err
		}
		if err := walk(root); err != nil {
			return err
		}
	}
	return nil
}

type pendingSum struct {
	line *ComputedLine
	refs []int
}

// Evaluator walks template trees against current and prior period
// balances. Leaf and children nodes are computed in the first pass; nodes
// that sum other rows are resolved afterwards purely by table lookup so
// that no reference is ever re-evaluated recursively.
type Evaluator struct {
	current  ledger.BalanceMap
	prior    ledger.BalanceMap
	rows     map[int]*ComputedLine
	resolved map[int]bool
	pending  []pendingSum
}

// NewEvaluator constructs an evaluator over the two balance maps. A nil
// prior map yields zero prior-period values.
func NewEvaluator(current, prior ledger.BalanceMap) *Evaluator {
	if prior == nil {
		prior = ledger.BalanceMap{}
	}
	return &Evaluator{
		current:  current,
		prior:    prior,
		rows:     make(map[int]*ComputedLine),
		resolved: make(map[int]bool),
	}
}

// EvalTree evaluates one root template depth-first, post-order. The
// debitNormal flag selects the balance side: debit minus credit for the
// asset half (and expense rows), credit minus debit otherwise.
func (e *Evaluator) EvalTree(tpl LineTemplate, debitNormal bool) *ComputedLine {
	line := &ComputedLine{Label: tpl.Label, Name: tpl.Name, Row: tpl.Row}

	switch {
	case len(tpl.Children) > 0:
		for _, childTpl := range tpl.Children {
			child := e.EvalTree(childTpl, debitNormal)
			line.Gross = line.Gross.Add(child.Gross)
			line.Correction = line.Correction.Add(child.Correction)
			line.Net = line.Net.Add(child.Net)
			line.PriorNet = line.PriorNet.Add(child.PriorNet)
			line.Children = append(line.Children, *child)
		}
		roundLine(line)
	case len(tpl.SumOfRows) > 0:
		e.pending = append(e.pending, pendingSum{line: line, refs: tpl.SumOfRows})
	default:
		line.Gross = e.balanceFor(e.current, tpl.AccountCodes, debitNormal).Round(2)
		priorGross := e.balanceFor(e.prior, tpl.AccountCodes, debitNormal).Round(2)
		// Correction accounts carry the opposite balance side and are
		// only netted off on the asset side. Gross and correction are
		// rounded before subtracting so net is their exact difference.
		var priorCorrection decimal.Decimal
		if debitNormal {
			line.Correction = e.balanceFor(e.current, tpl.CorrectionCodes, !debitNormal).Round(2)
			priorCorrection = e.balanceFor(e.prior, tpl.CorrectionCodes, !debitNormal).Round(2)
		}
		line.Net = line.Gross.Sub(line.Correction)
		line.PriorNet = priorGross.Sub(priorCorrection)
	}

	if tpl.Row != 0 {
		e.rows[tpl.Row] = line
		e.resolved[tpl.Row] = len(tpl.SumOfRows) == 0
	}
	return line
}

// Resolve computes every pending sum-of-rows node in evaluation order.
// A reference to a missing or not-yet-resolved row is a template defect.
func (e *Evaluator) Resolve() error {
	for _, p := range e.pending {
		for _, ref := range p.refs {
			row, ok := e.rows[ref]
			if !ok {
				return fmt.Errorf("%w: row %d referenced by %q", ErrRowUnresolved, ref, p.line.Name)
			}
			if !e.resolved[ref] {
				return fmt.Errorf("%w: row %d referenced by %q before resolution", ErrRowUnresolved, ref, p.line.Name)
			}
			p.line.Gross = p.line.Gross.Add(row.Gross)
			p.line.Correction = p.line.Correction.Add(row.Correction)
			p.line.Net = p.line.Net.Add(row.Net)
			p.line.PriorNet = p.line.PriorNet.Add(row.PriorNet)
		}
		roundLine(p.line)
		if p.line.Row != 0 {
			e.resolved[p.line.Row] = true
		}
	}
	e.pending = nil
	return nil
}

// Row returns the computed line registered under the row number.
func (e *Evaluator) Row(n int) *ComputedLine {
	return e.rows[n]
}

func (e *Evaluator) balanceFor(balances ledger.BalanceMap, codes []string, debitNormal bool) decimal.Decimal {
	var total decimal.Decimal
	for code, b := range balances {
		if !matchesAny(code, codes) {
			continue
		}
		if debitNormal {
			total = total.Add(b.Debit.Sub(b.Credit))
		} else {
			total = total.Add(b.Credit.Sub(b.Debit))
		}
	}
	return total
}

func matchesAny(code string, wanted []string) bool {
	for _, want := range wanted {
		if code == want || strings.HasPrefix(code, want) {
			return true
		}
	}
	return false
}

func roundLine(line *ComputedLine) {
	line.Gross = line.Gross.Round(2)
	line.Correction = line.Correction.Round(2)
	line.Net = line.Net.Round(2)
	line.PriorNet = line.PriorNet.Round(2)
}
