package core

import (
	"errors"
	"math"
	"testing"

	"github.com/leapstack-labs/mathdaddy/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOperatorTable(t *testing.T) {
	table := DefaultOperatorTable()
	require.Equal(t, 6, table.Len())

	// Ranks are strictly increasing in listed order.
	symbols := []string{"+", "-", "*", "/", "^", "√"}
	prev := PrecedenceNone
	for _, sym := range symbols {
		def, ok := table.Lookup(sym)
		require.True(t, ok, "missing %s", sym)
		assert.Greater(t, def.Precedence, prev, "rank of %s", sym)
		prev = def.Precedence
		assert.Equal(t, LeftAssoc, def.Assoc, "%s should default to left", sym)
	}

	_, ok := table.Lookup("%")
	assert.False(t, ok)
}

func TestOperatorApply(t *testing.T) {
	table := DefaultOperatorTable()
	tests := []struct {
		symbol   string
		operands []float64
		want     float64
	}{
		{"+", []float64{3, 2}, 5},
		{"-", []float64{3, 2}, 1},
		{"*", []float64{3, 2}, 6},
		{"/", []float64{3, 2}, 1.5},
		{"^", []float64{2, 10}, 1024},
		{"√", []float64{81}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			def, ok := table.Lookup(tt.symbol)
			require.True(t, ok)
			require.Len(t, tt.operands, int(def.Arity))
			assert.Equal(t, tt.want, def.Apply(tt.operands))
		})
	}

	div, _ := table.Lookup("/")
	assert.True(t, math.IsInf(div.Apply([]float64{1, 0}), 1))
	assert.True(t, math.IsNaN(div.Apply([]float64{0, 0})))
}

func TestTableOptions(t *testing.T) {
	right := DefaultOperatorTable(WithRightAssociativePower())
	pow, ok := right.Lookup("^")
	require.True(t, ok)
	assert.Equal(t, RightAssoc, pow.Assoc)

	noRoot := DefaultOperatorTable(WithoutRoot())
	_, ok = noRoot.Lookup("√")
	assert.False(t, ok)
	assert.Equal(t, 5, noRoot.Len())

	// Options never leak into other tables.
	def := DefaultOperatorTable()
	pow, _ = def.Lookup("^")
	assert.Equal(t, LeftAssoc, pow.Assoc)
}

func TestNewOperatorTable_Invalid(t *testing.T) {
	apply := func(v []float64) float64 { return v[0] }

	_, err := NewOperatorTable(OperatorDef{Symbol: "", Arity: Unary, Apply: apply})
	assert.Error(t, err)

	_, err = NewOperatorTable(OperatorDef{Symbol: "!", Arity: 3, Apply: apply})
	assert.ErrorContains(t, err, "unsupported arity")

	_, err = NewOperatorTable(OperatorDef{Symbol: "!", Arity: Unary})
	assert.ErrorContains(t, err, "missing Apply")
}

func TestNewOperatorTable_Override(t *testing.T) {
	table, err := NewOperatorTable(
		OperatorDef{Symbol: "+", Precedence: 1, Arity: Binary, Apply: func(v []float64) float64 { return v[0] + v[1] }},
		OperatorDef{Symbol: "+", Precedence: 9, Arity: Binary, Apply: func(v []float64) float64 { return 0 }},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	def, _ := table.Lookup("+")
	assert.Equal(t, 9, def.Precedence)
}

func TestNotation(t *testing.T) {
	assert.Equal(t, "infix", Infix.String())
	assert.Equal(t, "postfix", Postfix.String())
	assert.Equal(t, "prefix", Prefix.String())
	assert.Equal(t, "unknown", Notation(7).String())

	n, err := ParseNotation("RPN")
	require.NoError(t, err)
	assert.Equal(t, Postfix, n)

	_, err = ParseNotation("sideways")
	assert.Error(t, err)

	text, err := Prefix.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "prefix", string(text))
}

func TestError(t *testing.T) {
	tok := token.Token{Type: token.RPAREN, Literal: ")", Pos: token.Position{Line: 1, Column: 7, Offset: 6}}
	err := NewError(ErrUnbalancedParentheses, tok, MsgNoMatchingOpen)

	assert.True(t, errors.Is(err, ErrUnbalancedParentheses))
	assert.False(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, `unbalanced parentheses: no matching ( for ) at column 7 (")")`, err.Error())

	bare := &Error{Kind: ErrEmptyStatement}
	assert.Equal(t, "empty statement", bare.Error())
}
