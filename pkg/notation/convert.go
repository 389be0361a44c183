package notation

import (
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// ToPostfix classifies seq and runs the matching converter.
func ToPostfix(seq token.Sequence, table *core.OperatorTable) (core.Notation, token.Sequence, error) {
	n := Classify(seq)

	var (
		out token.Sequence
		err error
	)
	switch n {
	case core.Postfix:
		out, err = Postfix(seq)
	case core.Prefix:
		out, err = PrefixToPostfix(seq, table)
	default:
		out, err = InfixToPostfix(seq, table)
	}
	return n, out, err
}

// Render returns the display form of a postfix sequence: literals joined by
// single spaces.
func Render(seq token.Sequence) string {
	return seq.String()
}
