package core

import (
	"fmt"
	"math"
)

// Precedence ranks for the built-in operators. Every rank is distinct and
// strictly increasing in this order.
const (
	PrecedenceNone     = 0
	PrecedenceAdd      = 1 // +
	PrecedenceSubtract = 2 // -
	PrecedenceMultiply = 3 // *
	PrecedenceDivide   = 4 // /
	PrecedencePower    = 5 // ^
	PrecedenceRoot     = 6 // √
)

// Arity is the number of operands an operator consumes.
type Arity int

// Supported arities.
const (
	Unary  Arity = 1
	Binary Arity = 2
)

// String returns "unary" or "binary".
func (a Arity) String() string {
	switch a {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("arity(%d)", int(a))
	}
}

// Associativity controls how the infix converter groups equal-precedence
// operators.
type Associativity int

// Associativity values. LeftAssoc pops while stack_top >= incoming,
// RightAssoc pops while stack_top > incoming.
const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// String returns "left" or "right".
func (a Associativity) String() string {
	if a == RightAssoc {
		return "right"
	}
	return "left"
}

// OperatorDef defines one operator: its symbol, rank and evaluation rule.
type OperatorDef struct {
	Symbol     string
	Name       string
	Precedence int
	Arity      Arity
	Assoc      Associativity
	// Apply receives exactly Arity operands in source order (x, y).
	Apply func(operands []float64) float64
}

// OperatorTable is an immutable symbol -> OperatorDef mapping. Build it once
// with NewOperatorTable or DefaultOperatorTable and share it freely between
// goroutines.
type OperatorTable struct {
	defs  map[string]OperatorDef
	order []string
}

// NewOperatorTable builds a table from the given definitions. Later
// definitions for the same symbol replace earlier ones.
func NewOperatorTable(defs ...OperatorDef) (*OperatorTable, error) {
	t := &OperatorTable{defs: make(map[string]OperatorDef, len(defs))}
	for _, d := range defs {
		if d.Symbol == "" {
			return nil, fmt.Errorf("operator definition has empty symbol")
		}
		if d.Arity != Unary && d.Arity != Binary {
			return nil, fmt.Errorf("operator %q: unsupported arity %d", d.Symbol, d.Arity)
		}
		if d.Apply == nil {
			return nil, fmt.Errorf("operator %q: missing Apply", d.Symbol)
		}
		if _, dup := t.defs[d.Symbol]; !dup {
			t.order = append(t.order, d.Symbol)
		}
		t.defs[d.Symbol] = d
	}
	return t, nil
}

// Lookup returns the definition for symbol.
func (t *OperatorTable) Lookup(symbol string) (OperatorDef, bool) {
	d, ok := t.defs[symbol]
	return d, ok
}

// Defs returns the definitions in registration order.
func (t *OperatorTable) Defs() []OperatorDef {
	out := make([]OperatorDef, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, t.defs[s])
	}
	return out
}

// Len returns the number of operators in the table.
func (t *OperatorTable) Len() int {
	return len(t.order)
}

// TableOption adjusts the default operator table before it is frozen.
type TableOption func(defs []OperatorDef) []OperatorDef

// WithRightAssociativePower makes ^ right-associative, so 2 ^ 3 ^ 2 is 512.
// Without it exponentiation groups left to right like every other operator.
func WithRightAssociativePower() TableOption {
	return func(defs []OperatorDef) []OperatorDef {
		for i := range defs {
			if defs[i].Symbol == "^" {
				defs[i].Assoc = RightAssoc
			}
		}
		return defs
	}
}

// WithoutRoot drops the unary √ operator.
func WithoutRoot() TableOption {
	return func(defs []OperatorDef) []OperatorDef {
		out := defs[:0]
		for _, d := range defs {
			if d.Symbol != "√" {
				out = append(out, d)
			}
		}
		return out
	}
}

// StandardOperators returns a fresh copy of the built-in definitions.
func StandardOperators() []OperatorDef {
	return []OperatorDef{
		{Symbol: "+", Name: "add", Precedence: PrecedenceAdd, Arity: Binary,
			Apply: func(v []float64) float64 { return v[0] + v[1] }},
		{Symbol: "-", Name: "subtract", Precedence: PrecedenceSubtract, Arity: Binary,
			Apply: func(v []float64) float64 { return v[0] - v[1] }},
		{Symbol: "*", Name: "multiply", Precedence: PrecedenceMultiply, Arity: Binary,
			Apply: func(v []float64) float64 { return v[0] * v[1] }},
		{Symbol: "/", Name: "divide", Precedence: PrecedenceDivide, Arity: Binary,
			Apply: func(v []float64) float64 { return v[0] / v[1] }},
		{Symbol: "^", Name: "power", Precedence: PrecedencePower, Arity: Binary,
			Apply: func(v []float64) float64 { return math.Pow(v[0], v[1]) }},
		{Symbol: "√", Name: "sqrt", Precedence: PrecedenceRoot, Arity: Unary,
			Apply: func(v []float64) float64 { return math.Sqrt(v[0]) }},
	}
}

// DefaultOperatorTable builds the built-in table with the given options.
func DefaultOperatorTable(opts ...TableOption) *OperatorTable {
	defs := StandardOperators()
	for _, opt := range opts {
		defs = opt(defs)
	}
	t, err := NewOperatorTable(defs...)
	if err != nil {
		// Built-in definitions are always valid.
		panic(err)
	}
	return t
}
