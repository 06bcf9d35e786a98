package parser

// Lexer turns one equation line into tokens.
//
// Whitespace separates tokens but is otherwise ignored. Numbers are decimal
// literals without sign, identifiers start with a letter or underscore, and
// every other printable ASCII character becomes a one-character Symbol.

import (
	"github.com/shopspring/decimal"
)

// Lexer tokenizes equation source.
type Lexer struct {
	source   []byte
	filename string
	pos      int
	line     int
	column   int
	tokens   []Token
	interner *Interner
}

// LexerOption configures a Lexer.
type LexerOption func(*Lexer)

// WithInterner shares an identifier interner between lexers, typically one
// per session of many lines.
func WithInterner(in *Interner) LexerOption {
	return func(l *Lexer) {
		l.interner = in
	}
}

// WithStartLine sets the line number reported for the first line of source.
func WithStartLine(line int) LexerOption {
	return func(l *Lexer) {
		if line > 0 {
			l.line = line
		}
	}
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string, opts ...LexerOption) *Lexer {
	l := &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
		// Equations average a little under one token per two bytes.
		tokens: make([]Token, 0, len(source)/2+1),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.interner == nil {
		l.interner = NewInterner(8)
	}

	return l
}

// ScanAll lexes the entire source and returns all tokens. It stops at the
// first byte that cannot start a token.
func (l *Lexer) ScanAll() ([]Token, error) {
	for {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}

	return l.tokens, nil
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() (Token, error) {
	start := l.position()
	ch := l.peek()

	switch {
	case isDigit(ch):
		return l.scanNumber(start)

	case isIdentStart(ch):
		return l.scanIdentifier(start), nil

	case ch > ' ' && ch < 0x7f:
		l.advance()
		return &Symbol{Position: start, Char: ch}, nil

	default:
		return nil, &LexError{Pos: start, Char: ch}
	}
}

// scanNumber scans a number: [0-9]+(\.[0-9]+)?
func (l *Lexer) scanNumber(start Position) (Token, error) {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.advance()
	}

	// A trailing '.' without digits is left for the next token.
	if l.pos+1 < len(l.source) && l.source[l.pos] == '.' && isDigit(l.source[l.pos+1]) {
		l.advance()
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.advance()
		}
	}

	raw := string(l.source[start.Offset:l.pos])
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &LexError{Pos: start, Char: l.source[start.Offset], Underlying: err}
	}

	return &Number{Position: start, Value: value, Raw: raw}, nil
}

// scanIdentifier scans an identifier: [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier(start Position) Token {
	for l.pos < len(l.source) && (isIdentStart(l.source[l.pos]) || isDigit(l.source[l.pos])) {
		l.advance()
	}

	name := l.interner.InternBytes(l.source[start.Offset:l.pos])
	return &Identifier{Position: start, Name: name}
}

// skipWhitespace skips whitespace and updates line/column tracking.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		l.advance()
	}
}

// Helper methods

func (l *Lexer) position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
