// Package mathdaddy detects the notation of an arithmetic statement,
// converts it to postfix and evaluates it.
//
//	res, err := mathdaddy.Solve("( 3 + 4 ) * 2")
//	// res.Value == 14, res.Postfix == "3 4 + 2 *", res.Notation == core.Infix
//
// A Solver holds only immutable configuration and is safe for concurrent use.
package mathdaddy

import (
	"log/slog"
	"maps"
	"math"
	"strconv"

	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/eval"
	"github.com/leapstack-labs/mathdaddy/pkg/lexer"
	"github.com/leapstack-labs/mathdaddy/pkg/notation"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// Result is the outcome of one Solve call.
type Result struct {
	// Value is the numeric result. It may be ±Inf or NaN.
	Value float64 `json:"-" yaml:"-"`
	// Display is Value formatted for humans and for JSON, which has no NaN.
	Display   string        `json:"value" yaml:"value"`
	Statement string        `json:"statement" yaml:"statement"`
	Postfix   string        `json:"postfix" yaml:"postfix"`
	Notation  core.Notation `json:"notation" yaml:"notation"`
}

// Conversion is a statement normalized to postfix but not evaluated.
type Conversion struct {
	Statement string
	Tokens    token.Sequence
	Notation  core.Notation
	Postfix   token.Sequence
}

// Config holds solver configuration.
type Config struct {
	// Table is the operator table (optional, uses core.DefaultOperatorTable if nil)
	Table *core.OperatorTable
	// Bindings resolve symbols during evaluation (optional)
	Bindings eval.Bindings
	// Strict ignores Bindings: every symbol is unresolved
	Strict bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Solver runs the tokenize -> classify -> convert -> evaluate pipeline.
type Solver struct {
	table    *core.OperatorTable
	bindings eval.Bindings
	strict   bool
	logger   *slog.Logger
}

// New creates a Solver. Bindings are copied so later changes to the
// caller's map are not observed.
func New(cfg Config) *Solver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	table := cfg.Table
	if table == nil {
		table = core.DefaultOperatorTable()
	}
	return &Solver{
		table:    table,
		bindings: maps.Clone(cfg.Bindings),
		strict:   cfg.Strict,
		logger:   logger,
	}
}

var defaultSolver = New(Config{})

// Solve solves statement with the default table, in strict mode.
func Solve(statement string) (*Result, error) {
	return defaultSolver.Solve(statement)
}

// Table returns the solver's operator table.
func (s *Solver) Table() *core.OperatorTable {
	return s.table
}

// Bindings returns a copy of the solver's bindings, nil in strict mode.
func (s *Solver) Bindings() eval.Bindings {
	if s.strict {
		return nil
	}
	return maps.Clone(s.bindings)
}

// Convert tokenizes, classifies and converts statement without evaluating.
func (s *Solver) Convert(statement string) (*Conversion, error) {
	tokens := lexer.Tokenize(statement)
	if len(tokens) == 0 {
		return nil, &core.Error{Kind: core.ErrEmptyStatement}
	}

	n, postfix, err := notation.ToPostfix(tokens, s.table)
	if err != nil {
		s.logger.Debug("conversion failed", "statement", statement, "notation", n.String(), "error", err)
		return nil, err
	}

	return &Conversion{
		Statement: statement,
		Tokens:    tokens,
		Notation:  n,
		Postfix:   postfix,
	}, nil
}

// Solve converts statement to postfix and evaluates it. The first error
// encountered is returned unchanged; test it with errors.Is against the
// core.Err* kinds.
func (s *Solver) Solve(statement string) (*Result, error) {
	conv, err := s.Convert(statement)
	if err != nil {
		return nil, err
	}

	bindings := s.bindings
	if s.strict {
		bindings = nil
	}
	value, err := eval.EvaluateWith(conv.Postfix, s.table, bindings)
	if err != nil {
		s.logger.Debug("evaluation failed", "statement", statement, "postfix", conv.Postfix.String(), "error", err)
		return nil, err
	}

	res := &Result{
		Value:     value,
		Display:   FormatValue(value),
		Statement: statement,
		Postfix:   notation.Render(conv.Postfix),
		Notation:  conv.Notation,
	}
	s.logger.Debug("solved", "statement", statement, "notation", res.Notation.String(), "postfix", res.Postfix, "value", res.Display)
	return res, nil
}

// FormatValue renders v without an exponent when it is reasonably sized.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
