package statements

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiskal-sk/fiskal/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func balance(debit, credit string) ledger.Balance {
	return ledger.Balance{Debit: dec(debit), Credit: dec(credit)}
}

func TestEvalLeafMatchesByPrefixAndEquality(t *testing.T) {
	current := ledger.BalanceMap{
		"021":  balance("1000", "0"),
		"0211": balance("250", "0"),
		"022":  balance("400", "100"),
		"311":  balance("999", "0"),
	}
	tpl := LineTemplate{Name: "Stavby a stroje", Row: 7, AccountCodes: []string{"021", "022"}}

	eval := NewEvaluator(current, nil)
	line := eval.EvalTree(tpl, true)
	require.NoError(t, eval.Resolve())

	// 021 exact + 0211 prefix + 022 net of credit side.
	assert.True(t, line.Gross.Equal(dec("1550")), "got %s", line.Gross)
	assert.True(t, line.Net.Equal(dec("1550")))
	assert.True(t, line.PriorNet.IsZero())
}

func TestEvalLeafSubtractsCorrectionOnAssetSide(t *testing.T) {
	current := ledger.BalanceMap{
		"022": balance("5000", "0"),
		"082": balance("0", "1200"),
	}
	tpl := LineTemplate{Name: "Samostatné hnuteľné veci", Row: 7, AccountCodes: []string{"022"}, CorrectionCodes: []string{"082"}}

	eval := NewEvaluator(current, nil)
	line := eval.EvalTree(tpl, true)
	require.NoError(t, eval.Resolve())

	assert.True(t, line.Gross.Equal(dec("5000")))
	assert.True(t, line.Correction.Equal(dec("1200")))
	assert.True(t, line.Net.Equal(dec("3800")))
	assert.True(t, line.Net.Equal(line.Gross.Sub(line.Correction)))
}

func TestEvalCreditSideIgnoresCorrections(t *testing.T) {
	current := ledger.BalanceMap{
		"411": balance("0", "25000"),
	}
	tpl := LineTemplate{Name: "Základné imanie", Row: 28, AccountCodes: []string{"411"}, CorrectionCodes: []string{"082"}}

	eval := NewEvaluator(current, nil)
	line := eval.EvalTree(tpl, false)
	require.NoError(t, eval.Resolve())

	assert.True(t, line.Gross.Equal(dec("25000")))
	assert.True(t, line.Correction.IsZero())
	assert.True(t, line.Net.Equal(dec("25000")))
}

func TestEvalChildrenSumEqualsChildNets(t *testing.T) {
	current := ledger.BalanceMap{
		"112": balance("300.505", "0"),
		"132": balance("199.495", "0"),
	}
	tpl := LineTemplate{
		Name: "Zásoby", Row: 13,
		Children: []LineTemplate{
			{Name: "Materiál", Row: 14, AccountCodes: []string{"112"}},
			{Name: "Tovar", Row: 15, AccountCodes: []string{"132"}},
		},
	}

	eval := NewEvaluator(current, nil)
	line := eval.EvalTree(tpl, true)
	require.NoError(t, eval.Resolve())

	require.Len(t, line.Children, 2)
	sum := line.Children[0].Net.Add(line.Children[1].Net)
	assert.True(t, line.Net.Equal(sum), "parent %s children %s", line.Net, sum)
}

func TestEvalSumOfRowsResolvesByLookup(t *testing.T) {
	current := ledger.BalanceMap{
		"021": balance("100", "0"),
		"211": balance("50", "0"),
	}
	roots := []LineTemplate{
		{Name: "Neobežný majetok", Row: 2, AccountCodes: []string{"021"}},
		{Name: "Obežný majetok", Row: 12, AccountCodes: []string{"211"}},
		{Name: "Spolu majetok", Row: 1, SumOfRows: []int{2, 12}},
	}

	eval := NewEvaluator(current, nil)
	var lines []*ComputedLine
	for _, root := range roots {
		lines = append(lines, eval.EvalTree(root, true))
	}
	require.NoError(t, eval.Resolve())

	assert.True(t, lines[2].Net.Equal(dec("150")))
	assert.True(t, eval.Row(1).Net.Equal(dec("150")))
}

func TestEvalSumOfRowsMissingReferenceFails(t *testing.T) {
	eval := NewEvaluator(ledger.BalanceMap{}, nil)
	eval.EvalTree(LineTemplate{Name: "Spolu", Row: 1, SumOfRows: []int{99}}, true)

	err := eval.Resolve()
	assert.ErrorIs(t, err, ErrRowUnresolved)
}

func TestValidateRejectsAmbiguousNode(t *testing.T) {
	tpl := LineTemplate{
		Name:         "broken",
		AccountCodes: []string{"021"},
		SumOfRows:    []int{1},
	}
	assert.ErrorIs(t, tpl.Validate(), ErrMalformedTemplate)
}

func TestValidateRejectsEmptyNode(t *testing.T) {
	tpl := LineTemplate{Name: "empty", Row: 5}
	assert.ErrorIs(t, tpl.Validate(), ErrMalformedTemplate)
}

func TestValidateRejectsSumInsideChildren(t *testing.T) {
	tpl := LineTemplate{
		Name: "parent",
		Children: []LineTemplate{
			{Name: "sum child", Row: 2, SumOfRows: []int{1}},
		},
	}
	assert.ErrorIs(t, tpl.Validate(), ErrMalformedTemplate)
}

func TestValidateTemplatesRejectsDuplicateRows(t *testing.T) {
	roots := []LineTemplate{
		{Name: "a", Row: 1, AccountCodes: []string{"021"}},
		{Name: "b", Row: 1, AccountCodes: []string{"022"}},
	}
	assert.ErrorIs(t, ValidateTemplates(roots), ErrDuplicateRow)
}

func TestBuiltinTemplatesAreWellFormed(t *testing.T) {
	combined := append(assetTemplates(), liabilityTemplates()...)
	require.NoError(t, ValidateTemplates(combined))

	var plRoots []LineTemplate
	for _, row := range profitLossRows() {
		plRoots = append(plRoots, row.tpl)
	}
	require.NoError(t, ValidateTemplates(plRoots))
}

func TestEvalEmptyBalancesYieldZeroes(t *testing.T) {
	eval := NewEvaluator(ledger.BalanceMap{}, nil)
	for _, root := range assetTemplates() {
		line := eval.EvalTree(root, true)
		assert.True(t, line.Net.IsZero(), "row %d", line.Row)
		assert.True(t, line.PriorNet.IsZero())
	}
	require.NoError(t, eval.Resolve())
	assert.True(t, eval.Row(1).Net.IsZero())
}
