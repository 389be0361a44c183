// Package token defines the token types produced by the statement lexer.
//
// A token carries its exact source substring and the position it was read
// from. Tokens are values; a Sequence is rebuilt, never mutated in place, by
// every conversion stage.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType mirrors the lexer naming used across the codebase
type TokenType int32

const (
	// ILLEGAL is the zero value and is never produced by the lexer.
	ILLEGAL TokenType = iota

	// Operands
	NUMBER // 3, 2.5, 1e10
	SYMBOL // x, rate_2, 12ab

	OPERATOR // + - * / ^ √
	LPAREN   // (
	RPAREN   // )
)

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	NUMBER:   "NUMBER",
	SYMBOL:   "SYMBOL",
	OPERATOR: "OPERATOR",
	LPAREN:   "(",
	RPAREN:   ")",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsOperand returns true for NUMBER and SYMBOL.
func (t TokenType) IsOperand() bool {
	return t == NUMBER || t == SYMBOL
}

// IsParen returns true for LPAREN and RPAREN.
func (t TokenType) IsParen() bool {
	return t == LPAREN || t == RPAREN
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String renders the token for debugging, e.g. NUMBER("3")@1:1.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}

// IsOperator returns true if the token is an operator.
func (t Token) IsOperator() bool {
	return t.Type == OPERATOR
}

// Sequence is an ordered list of tokens. Order is significant: it is the
// notation being read.
type Sequence []Token

// String joins the token literals with single spaces. The result can be fed
// back to the lexer and produces an equivalent sequence.
func (s Sequence) String() string {
	return strings.Join(s.Literals(), " ")
}

// Literals returns the literal text of each token.
func (s Sequence) Literals() []string {
	out := make([]string, len(s))
	for i, tok := range s {
		out[i] = tok.Literal
	}
	return out
}

// First returns the first token and whether the sequence is non-empty.
func (s Sequence) First() (Token, bool) {
	if len(s) == 0 {
		return Token{}, false
	}
	return s[0], true
}

// Last returns the last token and whether the sequence is non-empty.
func (s Sequence) Last() (Token, bool) {
	if len(s) == 0 {
		return Token{}, false
	}
	return s[len(s)-1], true
}

// Clone returns a copy of the sequence that shares no backing array.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
