// Package notation detects whether a token sequence is written in prefix,
// postfix or infix notation and converts it to canonical postfix.
package notation

import (
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// Classify inspects the boundary tokens of seq. A trailing operator means
// Postfix, checked first so it wins even when the first token is also an
// operator; a leading operator means Prefix; anything else, including the
// empty sequence, is Infix.
//
// This is a heuristic, not a grammar check. Malformed input is only caught
// by the converter or the evaluator.
func Classify(seq token.Sequence) core.Notation {
	if last, ok := seq.Last(); ok && last.IsOperator() {
		return core.Postfix
	}
	if first, ok := seq.First(); ok && first.IsOperator() {
		return core.Prefix
	}
	return core.Infix
}
