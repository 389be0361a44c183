package notation

import (
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// PrefixToPostfix converts a prefix sequence by scanning it right to left.
//
// Operands are pushed as single-token groups. An operator pops its operands
// (for a binary operator the first pop is the left operand x, the second the
// right operand y) and pushes the group "x y op". Exactly one group must
// remain at the end. Parentheses carry no meaning in prefix notation; they
// must balance and are dropped.
func PrefixToPostfix(seq token.Sequence, table *core.OperatorTable) (token.Sequence, error) {
	var stack []token.Sequence
	var open []token.Token // unmatched ) seen so far, scanning backwards

	for i := len(seq) - 1; i >= 0; i-- {
		tok := seq[i]
		switch tok.Type {
		case token.NUMBER, token.SYMBOL:
			stack = append(stack, token.Sequence{tok})

		case token.RPAREN:
			open = append(open, tok)

		case token.LPAREN:
			if len(open) == 0 {
				return nil, core.NewError(core.ErrUnbalancedParentheses, tok, core.MsgUnclosedParen)
			}
			open = open[:len(open)-1]

		case token.OPERATOR:
			def, ok := table.Lookup(tok.Literal)
			if !ok {
				return nil, core.NewError(core.ErrUnknownOperator, tok, core.MsgNotInTable, tok.Literal)
			}
			n := int(def.Arity)
			if len(stack) < n {
				return nil, core.NewError(core.ErrStackUnderflow, tok, core.MsgNeedOperands, n, len(stack))
			}
			group := make(token.Sequence, 0)
			for j := 0; j < n; j++ {
				group = append(group, stack[len(stack)-1]...)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, append(group, tok))
		}
	}

	if len(open) > 0 {
		return nil, core.NewError(core.ErrUnbalancedParentheses, open[len(open)-1], core.MsgNoMatchingOpen)
	}

	switch len(stack) {
	case 0:
		return nil, &core.Error{Kind: core.ErrEmptyStatement}
	case 1:
		return stack[0], nil
	default:
		// The bottom group holds the rightmost operands that no operator consumed.
		return nil, core.NewError(core.ErrLeftoverOperands, stack[0][0], core.MsgRemainingValues, len(stack))
	}
}
