// Package core defines the shared language of the mathdaddy engine.
//
// This package contains:
//   - The Notation enum reported by the classifier
//   - The immutable operator table (precedence, arity, associativity, apply)
//   - The error kinds every converter and the evaluator return
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
