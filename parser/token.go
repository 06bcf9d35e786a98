package parser

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TokenType represents the kind of a token scanned from an equation.
type TokenType uint8

const (
	NUMBER TokenType = iota // 42 or 3.5
	IDENT                   // x, y2, foo_bar
	SYMBOL                  // any single printable character
)

var tokenNames = map[TokenType]string{
	NUMBER: "NUMBER",
	IDENT:  "IDENT",
	SYMBOL: "SYMBOL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position represents a location in the scanned source.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexical unit of an equation. It is one of *Number, *Identifier
// or *Symbol; the payload of each kind is only reachable through its concrete
// type.
type Token interface {
	Type() TokenType
	Pos() Position
	String() string

	token()
}

// Number is a numeric literal. Integer and real literals are both kept
// exactly as decimals.
type Number struct {
	Position Position
	Value    decimal.Decimal
	Raw      string // literal as written, e.g. "2.50"
}

// Identifier is a variable name.
type Identifier struct {
	Position Position
	Name     string
}

// Symbol is any other single character, such as an operator or '='.
type Symbol struct {
	Position Position
	Char     byte
}

var (
	_ Token = (*Number)(nil)
	_ Token = (*Identifier)(nil)
	_ Token = (*Symbol)(nil)
)

func (n *Number) Type() TokenType { return NUMBER }
func (n *Number) Pos() Position   { return n.Position }
func (n *Number) String() string  { return n.literal() }
func (n *Number) token()          {}

func (i *Identifier) Type() TokenType { return IDENT }
func (i *Identifier) Pos() Position   { return i.Position }
func (i *Identifier) String() string  { return i.Name }
func (i *Identifier) token()          {}

func (s *Symbol) Type() TokenType { return SYMBOL }
func (s *Symbol) Pos() Position   { return s.Position }
func (s *Symbol) String() string  { return string(s.Char) }
func (s *Symbol) token()          {}

func (n *Number) literal() string {
	if n.Raw != "" {
		return n.Raw
	}
	return n.Value.String()
}

// end returns the position just past the token.
func end(t Token) Position {
	p := t.Pos()
	width := len(t.String())
	p.Offset += width
	p.Column += width
	return p
}
