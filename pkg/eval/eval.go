// Package eval evaluates canonical postfix token sequences.
//
// The evaluator is a stack machine. Numbers push their value, symbols push
// themselves unresolved, and operators pop their operands and push the
// result. Symbols are resolved only when an operator (or the final result)
// needs a number: against the caller's Bindings, or never in strict mode.
package eval

import (
	"errors"
	"strconv"

	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// Bindings maps symbol names to values.
type Bindings map[string]float64

// value is one evaluation stack slot: a number, or a symbol still waiting
// for resolution.
type value struct {
	num float64
	sym *token.Token
}

// Evaluate runs seq in strict mode: every symbol is unresolved.
func Evaluate(seq token.Sequence, table *core.OperatorTable) (float64, error) {
	return EvaluateWith(seq, table, nil)
}

// EvaluateWith runs seq, resolving symbols against bindings. A nil map
// behaves like Evaluate.
//
// Division follows IEEE 754: x / 0 is ±Inf or NaN, never an error.
func EvaluateWith(seq token.Sequence, table *core.OperatorTable, bindings Bindings) (float64, error) {
	if len(seq) == 0 {
		return 0, &core.Error{Kind: core.ErrEmptyStatement}
	}

	stack := make([]value, 0, len(seq))

	for i := range seq {
		tok := seq[i]
		switch tok.Type {
		case token.NUMBER:
			n, err := parseNumber(tok.Literal)
			if err != nil {
				return 0, core.NewError(core.ErrUnresolvedSymbol, tok, "%v", err)
			}
			stack = append(stack, value{num: n})

		case token.SYMBOL:
			stack = append(stack, value{sym: &seq[i]})

		case token.OPERATOR:
			def, ok := table.Lookup(tok.Literal)
			if !ok {
				return 0, core.NewError(core.ErrUnknownOperator, tok, core.MsgNotInTable, tok.Literal)
			}
			n := int(def.Arity)
			if len(stack) < n {
				return 0, core.NewError(core.ErrStackUnderflow, tok, core.MsgNeedOperands, n, len(stack))
			}
			operands := make([]float64, n)
			// Pop order is y then x; operands keep source order x, y.
			for j := n - 1; j >= 0; j-- {
				v, err := resolve(stack[len(stack)-1], bindings)
				if err != nil {
					return 0, err
				}
				operands[j] = v
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, value{num: def.Apply(operands)})

		default:
			return 0, core.NewError(core.ErrUnbalancedParentheses, tok, core.MsgParenInPostfix)
		}
	}

	if len(stack) != 1 {
		return 0, core.NewError(core.ErrLeftoverOperands, seq[0], core.MsgRemainingValues, len(stack))
	}
	return resolve(stack[0], bindings)
}

func resolve(v value, bindings Bindings) (float64, error) {
	if v.sym == nil {
		return v.num, nil
	}
	if n, ok := bindings[v.sym.Literal]; ok {
		return n, nil
	}
	return 0, core.NewError(core.ErrUnresolvedSymbol, *v.sym, core.MsgNoBinding, v.sym.Literal)
}

// parseNumber accepts every literal the lexer classifies as NUMBER,
// including those that overflow to ±Inf.
func parseNumber(lit string) (float64, error) {
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return n, nil
}
