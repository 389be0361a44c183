package core

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// Error kinds. Every failure returned by the converters and the evaluator
// wraps exactly one of these; test with errors.Is.
var (
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrStackUnderflow        = errors.New("stack underflow")
	ErrUnresolvedSymbol      = errors.New("unresolved symbol")
	ErrUnknownOperator       = errors.New("unknown operator")
	ErrEmptyStatement        = errors.New("empty statement")
	ErrLeftoverOperands      = errors.New("leftover operands")
)

// Error represents a failure at a specific token.
type Error struct {
	Kind    error
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Token.Pos.IsValid() {
		return fmt.Sprintf("%s at column %d (%q)", msg, e.Token.Pos.Column, e.Token.Literal)
	}
	return msg
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates an Error of the given kind at tok.
func NewError(kind error, tok token.Token, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error messages
const (
	MsgNoMatchingOpen  = "no matching ( for )"
	MsgUnclosedParen   = "( is never closed"
	MsgNeedOperands    = "operator needs %d operand(s), have %d"
	MsgNoBinding       = "no value bound to %q"
	MsgNotInTable      = "%q has no entry in the operator table"
	MsgRemainingValues = "%d values remain, want 1"
	MsgParenInPostfix  = "parenthesis in a postfix sequence"
)
