package statements

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RowValue carries the current and prior period amounts of one row.
type RowValue struct {
	Current decimal.Decimal `json:"current"`
	Prior   decimal.Decimal `json:"prior"`
}

// RowValues is the lookup table the composite formulas read from and
// write back into.
type RowValues map[int]RowValue

// Term is one signed row reference inside a composite formula.
type Term struct {
	Row  int
	Sign int
}

// Formula defines a composite statement row as a signed sum of other
// rows. Formulas are evaluated strictly in declaration order so each may
// reference rows produced by earlier formulas.
type Formula struct {
	Row   int
	Label string
	Name  string
	Terms []Term
}

// ErrFormulaReference indicates a formula referencing a row that is
// neither a template row nor an earlier composite.
var ErrFormulaReference = fmt.Errorf("statements: formula references unknown row")

// profitLossFormulas lists the eight composite rows of the profit and
// loss statement in dependency order.
func profitLossFormulas() []Formula {
	return []Formula{
		{Row: 3, Label: "+", Name: "Obchodná marža", Terms: []Term{{1, +1}, {2, -1}}},
		{Row: 11, Label: "+", Name: "Pridaná hodnota", Terms: []Term{{3, +1}, {4, +1}, {8, -1}}},
		{Row: 32, Label: "*", Name: "Výsledok hospodárenia z hospodárskej činnosti", Terms: []Term{
			{11, +1}, {12, -1}, {17, -1}, {18, -1}, {21, +1}, {24, -1}, {27, -1}, {28, +1}, {29, -1}, {30, +1}, {31, -1},
		}},
		{Row: 51, Label: "*", Name: "Výsledok hospodárenia z finančnej činnosti", Terms: []Term{
			{33, +1}, {34, -1}, {35, +1}, {39, +1}, {40, -1}, {41, +1}, {42, -1}, {43, +1}, {44, -1},
			{45, +1}, {46, -1}, {47, +1}, {48, -1}, {49, +1}, {50, -1},
		}},
		{Row: 52, Label: "**", Name: "Výsledok hospodárenia z bežnej činnosti pred zdanením", Terms: []Term{{32, +1}, {51, +1}}},
		{Row: 54, Label: "**", Name: "Výsledok hospodárenia z bežnej činnosti po zdanení", Terms: []Term{{52, +1}, {53, -1}}},
		{Row: 60, Label: "*", Name: "Mimoriadny výsledok hospodárenia", Terms: []Term{{57, +1}, {58, -1}, {59, -1}}},
		{Row: 61, Label: "***", Name: "Výsledok hospodárenia za účtovné obdobie", Terms: []Term{{54, +1}, {60, +1}, {63, -1}}},
	}
}

// ApplyFormulas evaluates each formula for the current and prior columns
// independently and writes the result back into the table under the
// formula's own row number.
func ApplyFormulas(rv RowValues, formulas []Formula) error {
	for _, f := range formulas {
		var current, prior decimal.Decimal
		for _, term := range f.Terms {
			val, ok := rv[term.Row]
			if !ok {
				return fmt.Errorf("%w: row %d in formula for row %d", ErrFormulaReference, term.Row, f.Row)
			}
			if term.Sign < 0 {
				current = current.Sub(val.Current)
				prior = prior.Sub(val.Prior)
			} else {
				current = current.Add(val.Current)
				prior = prior.Add(val.Prior)
			}
		}
		rv[f.Row] = RowValue{Current: current.Round(2), Prior: prior.Round(2)}
	}
	return nil
}
