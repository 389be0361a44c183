package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		typ  TokenType
		want string
	}{
		{NUMBER, "NUMBER"},
		{SYMBOL, "SYMBOL"},
		{OPERATOR, "OPERATOR"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{TokenType(42), "TOKEN(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTokenType_Classes(t *testing.T) {
	assert.True(t, NUMBER.IsOperand())
	assert.True(t, SYMBOL.IsOperand())
	assert.False(t, OPERATOR.IsOperand())
	assert.True(t, LPAREN.IsParen())
	assert.True(t, RPAREN.IsParen())
	assert.False(t, NUMBER.IsParen())
}

func TestSequence_String(t *testing.T) {
	seq := Sequence{
		{Type: NUMBER, Literal: "3"},
		{Type: NUMBER, Literal: "4"},
		{Type: OPERATOR, Literal: "+"},
	}
	assert.Equal(t, "3 4 +", seq.String())
	assert.Equal(t, "", Sequence{}.String())
}

func TestSequence_FirstLast(t *testing.T) {
	_, ok := Sequence{}.First()
	assert.False(t, ok)
	_, ok = Sequence(nil).Last()
	assert.False(t, ok)

	seq := Sequence{{Type: OPERATOR, Literal: "+"}, {Type: NUMBER, Literal: "1"}}
	first, ok := seq.First()
	assert.True(t, ok)
	assert.Equal(t, "+", first.Literal)
	last, ok := seq.Last()
	assert.True(t, ok)
	assert.Equal(t, "1", last.Literal)
}

func TestSequence_Clone(t *testing.T) {
	seq := Sequence{{Type: NUMBER, Literal: "1"}}
	clone := seq.Clone()
	clone[0].Literal = "2"
	assert.Equal(t, "1", seq[0].Literal)
	assert.Nil(t, Sequence(nil).Clone())
}

func TestToken_String(t *testing.T) {
	tok := Token{Type: NUMBER, Literal: "3", Pos: Position{Line: 1, Column: 5, Offset: 4}}
	assert.Equal(t, `NUMBER("3")@1:5`, tok.String())
	assert.True(t, tok.Pos.IsValid())
	assert.False(t, Position{}.IsValid())
}
