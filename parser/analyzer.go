package parser

import (
	"golang.org/x/exp/slices"
)

// VariableCount classifies how many distinct variables an equation uses.
type VariableCount uint8

const (
	NoVariables VariableCount = iota
	OneVariable
	MultipleVariables
)

func (v VariableCount) String() string {
	switch v {
	case NoVariables:
		return "0"
	case OneVariable:
		return "1"
	case MultipleVariables:
		return ">1"
	default:
		return "UNKNOWN"
	}
}

// ClassifyVariables scans the whole token sequence, independent of any
// cursor, and reports whether it spells zero, one or several distinct
// identifiers. Only the first spelling is retained.
func ClassifyVariables(tokens []Token) VariableCount {
	first := ""
	seen := false

	for _, tok := range tokens {
		id, ok := tok.(*Identifier)
		if !ok {
			continue
		}
		if !seen {
			first = id.Name
			seen = true
			continue
		}
		if id.Name != first {
			return MultipleVariables
		}
	}

	if !seen {
		return NoVariables
	}
	return OneVariable
}

// Variables returns the distinct identifier spellings in tokens, sorted.
func Variables(tokens []Token) []string {
	var names []string
	for _, tok := range tokens {
		if id, ok := tok.(*Identifier); ok {
			names = append(names, id.Name)
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}
