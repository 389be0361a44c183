package core

import (
	"fmt"
	"strings"
)

// Notation identifies how a statement places operators relative to operands.
type Notation int

// Notation families, in the order the classifier checks them.
const (
	Infix Notation = iota
	Postfix
	Prefix
)

// String returns the lowercase notation name.
func (n Notation) String() string {
	switch n {
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	case Prefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so results serialize by name.
func (n Notation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ParseNotation converts a name to a Notation value.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infix":
		return Infix, nil
	case "postfix", "rpn":
		return Postfix, nil
	case "prefix", "polish":
		return Prefix, nil
	default:
		return Infix, fmt.Errorf("unknown notation %q", s)
	}
}
