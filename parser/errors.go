package parser

import (
	"fmt"
)

// LexError reports a byte that cannot start any token.
type LexError struct {
	Pos        Position
	Char       byte
	Underlying error
}

func (e *LexError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d:%d", e.Pos.Line, e.Pos.Column)
	}

	if e.Underlying != nil {
		return fmt.Sprintf("%s: invalid number: %v", location, e.Underlying)
	}
	return fmt.Sprintf("%s: unexpected character %q", location, e.Char)
}

func (e *LexError) GetPosition() Position {
	return e.Pos
}

func (e *LexError) Unwrap() error {
	return e.Underlying
}

// SyntaxError describes why a token sequence is not an equation. Pos is the
// token at which recognition gave up, or the end of input.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d:%d", e.Pos.Line, e.Pos.Column)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *SyntaxError) GetPosition() Position {
	return e.Pos
}
