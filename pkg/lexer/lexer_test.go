package lexer

import (
	"testing"

	"github.com/leapstack-labs/mathdaddy/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLits  []string
		wantTypes []token.TokenType
	}{
		{
			name:      "spaced infix",
			input:     "3 + 4 * 2",
			wantLits:  []string{"3", "+", "4", "*", "2"},
			wantTypes: []token.TokenType{token.NUMBER, token.OPERATOR, token.NUMBER, token.OPERATOR, token.NUMBER},
		},
		{
			name:      "no spaces",
			input:     "(3+4)*2",
			wantLits:  []string{"(", "3", "+", "4", ")", "*", "2"},
			wantTypes: []token.TokenType{token.LPAREN, token.NUMBER, token.OPERATOR, token.NUMBER, token.RPAREN, token.OPERATOR, token.NUMBER},
		},
		{
			name:      "mixed word run is one symbol",
			input:     "12ab + x_1",
			wantLits:  []string{"12ab", "+", "x_1"},
			wantTypes: []token.TokenType{token.SYMBOL, token.OPERATOR, token.SYMBOL},
		},
		{
			name:      "punctuation dropped and splits runs",
			input:     "3,4 ; 5",
			wantLits:  []string{"3", "4", "5"},
			wantTypes: []token.TokenType{token.NUMBER, token.NUMBER, token.NUMBER},
		},
		{
			name:      "decimal literals",
			input:     "2.5 * .5",
			wantLits:  []string{"2.5", "*", ".5"},
			wantTypes: []token.TokenType{token.NUMBER, token.OPERATOR, token.NUMBER},
		},
		{
			name:      "lone dot dropped",
			input:     "3 . 4",
			wantLits:  []string{"3", "4"},
			wantTypes: []token.TokenType{token.NUMBER, token.NUMBER},
		},
		{
			name:      "square root",
			input:     "√16",
			wantLits:  []string{"√", "16"},
			wantTypes: []token.TokenType{token.OPERATOR, token.NUMBER},
		},
		{
			name:      "exponent literal",
			input:     "1e3 ^ 2",
			wantLits:  []string{"1e3", "^", "2"},
			wantTypes: []token.TokenType{token.NUMBER, token.OPERATOR, token.NUMBER},
		},
		{
			name:      "postfix",
			input:     "3 2 +",
			wantLits:  []string{"3", "2", "+"},
			wantTypes: []token.TokenType{token.NUMBER, token.NUMBER, token.OPERATOR},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Tokenize(tt.input)
			assert.Equal(t, tt.wantLits, seq.Literals())

			types := make([]token.TokenType, len(seq))
			for i, tok := range seq {
				types[i] = tok.Type
			}
			assert.Equal(t, tt.wantTypes, types)
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n", "!?,;"} {
		assert.Empty(t, Tokenize(input), "input %q", input)
	}
}

func TestTokenize_NoEmptyTokens(t *testing.T) {
	inputs := []string{"a  b", "((1))", " 3 + + 4 ", "x.y", "√√9", "1e999"}
	for _, input := range inputs {
		for _, tok := range Tokenize(input) {
			assert.NotEmpty(t, tok.Literal, "input %q", input)
		}
	}
}

func TestTokenize_Positions(t *testing.T) {
	seq := Tokenize("12 +\n √x")
	require.Len(t, seq, 4)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, seq[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 4, Offset: 3}, seq[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 2, Offset: 6}, seq[2].Pos)
	// √ is three bytes wide but one column.
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 9}, seq[3].Pos)
}

func TestTokenize_RoundTrip(t *testing.T) {
	for _, input := range []string{"( 3 + 4 ) * 2", "3 4 2 * +", "+ 3 2", "√ 2.25"} {
		first := Tokenize(input)
		second := Tokenize(first.String())
		assert.Equal(t, first.Literals(), second.Literals(), "input %q", input)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		lit  string
		want token.TokenType
	}{
		{"3", token.NUMBER},
		{"3.25", token.NUMBER},
		{"1e10", token.NUMBER},
		{"1e999", token.NUMBER},
		{"inf", token.NUMBER},
		{"x", token.SYMBOL},
		{"12ab", token.SYMBOL},
		{"1_000", token.SYMBOL},
		{"3.5.6", token.SYMBOL},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.lit))
		})
	}
}

func TestIsOperatorRune(t *testing.T) {
	for _, r := range "+-*/^√" {
		assert.True(t, IsOperatorRune(r), "%q", r)
	}
	for _, r := range "%=()x1 " {
		assert.False(t, IsOperatorRune(r), "%q", r)
	}
}
