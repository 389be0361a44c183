package notation

import (
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// InfixToPostfix converts an infix sequence with the shunting-yard algorithm.
//
// A binary operator pops every stacked operator whose rank is >= its own
// (> for right-associative operators) before it is pushed, so with the
// default table all operators group left to right, ^ included. Unary
// operators are prefix operators and are pushed without popping.
func InfixToPostfix(seq token.Sequence, table *core.OperatorTable) (token.Sequence, error) {
	out := make(token.Sequence, 0, len(seq))
	var ops []token.Token

	for _, tok := range seq {
		switch tok.Type {
		case token.NUMBER, token.SYMBOL:
			out = append(out, tok)

		case token.LPAREN:
			ops = append(ops, tok)

		case token.RPAREN:
			for {
				if len(ops) == 0 {
					return nil, core.NewError(core.ErrUnbalancedParentheses, tok, core.MsgNoMatchingOpen)
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Type == token.LPAREN {
					break
				}
				out = append(out, top)
			}

		case token.OPERATOR:
			def, ok := table.Lookup(tok.Literal)
			if !ok {
				return nil, core.NewError(core.ErrUnknownOperator, tok, core.MsgNotInTable, tok.Literal)
			}
			if def.Arity == core.Binary {
				for len(ops) > 0 {
					top := ops[len(ops)-1]
					if top.Type != token.OPERATOR {
						break
					}
					// Every stacked operator was looked up when it was pushed.
					topDef, _ := table.Lookup(top.Literal)
					if !popsBefore(topDef, def) {
						break
					}
					out = append(out, top)
					ops = ops[:len(ops)-1]
				}
			}
			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Type == token.LPAREN {
			return nil, core.NewError(core.ErrUnbalancedParentheses, top, core.MsgUnclosedParen)
		}
		out = append(out, top)
	}

	return out, nil
}

// popsBefore reports whether the stacked operator top must be emitted before
// incoming is pushed.
func popsBefore(top, incoming core.OperatorDef) bool {
	if incoming.Assoc == core.RightAssoc {
		return top.Precedence > incoming.Precedence
	}
	return top.Precedence >= incoming.Precedence
}
