package equation

import (
	"fmt"

	"github.com/robinvdvleuten/polyeq/parser"
)

// Report is the outcome of checking one line.
type Report struct {
	Line   int
	Source string
	Tokens []parser.Token

	// Valid is true when the whole line is one equation.
	Valid bool
	// Variables classifies the distinct identifiers; Names lists them.
	Variables parser.VariableCount
	Names     []string
	// MaxExponent is the largest explicit exponent, 0 if none was written.
	MaxExponent int64

	// Err explains why the line is not an equation. It is a
	// *parser.LexError or *parser.SyntaxError.
	Err error
}

// InOneVariable reports whether the line is an equation in exactly one
// variable.
func (r *Report) InOneVariable() bool {
	return r.Valid && r.Variables == OneVariable
}

// Degree returns the degree of an equation in one variable. A variable
// without any exponent clause has degree 1. Equations without variables have
// degree 0.
func (r *Report) Degree() int64 {
	switch {
	case !r.Valid || r.Variables == NoVariables:
		return 0
	case r.MaxExponent == 0:
		return 1
	default:
		return r.MaxExponent
	}
}

// Summary describes the report in one sentence.
func (r *Report) Summary() string {
	switch {
	case !r.Valid:
		return "this is not an equation"
	case r.Variables == OneVariable:
		return fmt.Sprintf("this is an equation in 1 variable of degree %d", r.Degree())
	default:
		return "this is an equation, but not in 1 variable"
	}
}

// Re-exported so callers of this package rarely need the parser directly.
const (
	NoVariables       = parser.NoVariables
	OneVariable       = parser.OneVariable
	MultipleVariables = parser.MultipleVariables
)
