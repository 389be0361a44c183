package notation

import (
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// Postfix is the identity conversion for input that is already postfix. It
// rebuilds the sequence so callers never share the input slice, checks that
// any parentheses balance, and drops them.
func Postfix(seq token.Sequence) (token.Sequence, error) {
	out := make(token.Sequence, 0, len(seq))
	var open []token.Token

	for _, tok := range seq {
		switch tok.Type {
		case token.LPAREN:
			open = append(open, tok)
		case token.RPAREN:
			if len(open) == 0 {
				return nil, core.NewError(core.ErrUnbalancedParentheses, tok, core.MsgNoMatchingOpen)
			}
			open = open[:len(open)-1]
		default:
			out = append(out, tok)
		}
	}

	if len(open) > 0 {
		return nil, core.NewError(core.ErrUnbalancedParentheses, open[len(open)-1], core.MsgUnclosedParen)
	}
	return out, nil
}
