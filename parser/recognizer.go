package parser

// Recognizer decides whether a token sequence is a polynomial equation in the
// grammar
//
//	<equation>   ::= <expression> '=' <expression>
//	<expression> ::= [ '-' ] <term> { ( '+' | '-' ) <term> }
//	<term>       ::= <number> [ <identifier> <exponent> ] | <identifier> <exponent>
//	<exponent>   ::= [ '^' <non-negative integer> ]
//
// using recursive descent, one method per rule. Each accept method either
// consumes the tokens it recognized and returns true, or returns false and
// leaves the cursor where it found it.

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/polyeq/telemetry"
)

var maxExponent = decimal.NewFromInt(math.MaxInt64)

// Accumulator carries the analysis state of a single recognition attempt.
type Accumulator struct {
	maxExponent int64
}

// Observe records an exponent. The maximum only ever grows.
func (a *Accumulator) Observe(exp int64) {
	if exp > a.maxExponent {
		a.maxExponent = exp
	}
}

// MaxExponent returns the largest exponent observed so far, or 0 if no
// exponent clause was seen.
func (a *Accumulator) MaxExponent() int64 {
	return a.maxExponent
}

// Reset clears the accumulator for the next attempt.
func (a *Accumulator) Reset() {
	a.maxExponent = 0
}

// Recognizer matches equations over a token cursor.
type Recognizer struct {
	cursor *Cursor
	acc    Accumulator
	err    *SyntaxError
}

// NewRecognizer returns a recognizer positioned at the first token.
func NewRecognizer(tokens []Token) *Recognizer {
	return &Recognizer{cursor: NewCursor(tokens)}
}

// Cursor exposes the recognizer's read position.
func (r *Recognizer) Cursor() *Cursor {
	return r.cursor
}

// Done reports whether the cursor has consumed every token.
func (r *Recognizer) Done() bool {
	return r.cursor.Done()
}

// MaxExponent returns the largest exponent seen by the last attempt.
func (r *Recognizer) MaxExponent() int64 {
	return r.acc.MaxExponent()
}

// ResetMaxExponent clears the exponent accumulator. AcceptEquation does this
// itself; it is exposed for callers that inspect the accumulator between
// attempts.
func (r *Recognizer) ResetMaxExponent() {
	r.acc.Reset()
}

// Err returns the reason the last attempt was rejected, or nil.
func (r *Recognizer) Err() *SyntaxError {
	return r.err
}

// AcceptEquation attempts to recognize <expression> '=' <expression> at the
// current position. Acceptance alone does not make the input an equation:
// callers must also check Done, since trailing tokens are not consumed.
func (r *Recognizer) AcceptEquation() bool {
	r.acc.Reset()
	r.err = nil

	start := r.mark()

	if !r.acceptExpression() {
		r.reset(start)
		return false
	}

	if !r.acceptSymbol('=') {
		r.fail("expected '='")
		r.reset(start)
		return false
	}

	if !r.acceptExpression() {
		r.reset(start)
		return false
	}

	return true
}

// acceptExpression: [ '-' ] <term> { ( '+' | '-' ) <term> }
func (r *Recognizer) acceptExpression() bool {
	start := r.mark()

	// A single sign applies to the leading term only.
	r.acceptSymbol('-')

	if !r.acceptTerm() {
		r.fail("expected a number or a variable")
		r.reset(start)
		return false
	}

	for {
		op := r.cursor.Peek()
		if !r.acceptSymbol('+') && !r.acceptSymbol('-') {
			break
		}
		if !r.acceptTerm() {
			r.fail(fmt.Sprintf("expected a term after '%s'", op))
			r.reset(start)
			return false
		}
	}

	return true
}

// acceptTerm: <number> [ <identifier> <exponent> ] | <identifier> <exponent>
func (r *Recognizer) acceptTerm() bool {
	start := r.mark()

	if _, ok := r.acceptNumber(); ok {
		if _, ok := r.acceptIdentifier(); ok {
			if !r.acceptExponent() {
				r.reset(start)
				return false
			}
		}
		return true
	}

	if _, ok := r.acceptIdentifier(); ok {
		if !r.acceptExponent() {
			r.reset(start)
			return false
		}
		return true
	}

	return false
}

// acceptExponent: [ '^' <non-negative integer> ]
//
// A missing clause is a successful empty match.
func (r *Recognizer) acceptExponent() bool {
	start := r.mark()

	if !r.acceptSymbol('^') {
		return true
	}

	num, ok := r.acceptNumber()
	if !ok {
		if sym, isSym := r.cursor.Peek().(*Symbol); isSym && sym.Char == '-' {
			r.fail("negative exponents are not allowed")
		} else {
			r.fail("expected an exponent after '^'")
		}
		r.reset(start)
		return false
	}

	if !num.Value.IsInteger() {
		r.failAt(num.Position, fmt.Sprintf("exponent %s is not an integer", num))
		r.reset(start)
		return false
	}
	if num.Value.GreaterThan(maxExponent) {
		r.failAt(num.Position, fmt.Sprintf("exponent %s is too large", num))
		r.reset(start)
		return false
	}

	r.acc.Observe(num.Value.IntPart())
	return true
}

// acceptNumber consumes a Number token.
func (r *Recognizer) acceptNumber() (*Number, bool) {
	if n, ok := r.cursor.Peek().(*Number); ok {
		r.cursor.Advance()
		return n, true
	}
	return nil, false
}

// acceptIdentifier consumes an Identifier token.
func (r *Recognizer) acceptIdentifier() (*Identifier, bool) {
	if id, ok := r.cursor.Peek().(*Identifier); ok {
		r.cursor.Advance()
		return id, true
	}
	return nil, false
}

// acceptSymbol consumes a Symbol token equal to c.
func (r *Recognizer) acceptSymbol(c byte) bool {
	if s, ok := r.cursor.Peek().(*Symbol); ok && s.Char == c {
		r.cursor.Advance()
		return true
	}
	return false
}

type checkpoint struct {
	pos         int
	maxExponent int64
}

func (r *Recognizer) mark() checkpoint {
	return checkpoint{pos: r.cursor.Pos(), maxExponent: r.acc.maxExponent}
}

func (r *Recognizer) reset(m checkpoint) {
	r.cursor.Reset(m.pos)
	r.acc.maxExponent = m.maxExponent
}

// fail records the first reason for rejection at the current token. Inner
// rules fail first, so the most specific message wins.
func (r *Recognizer) fail(message string) {
	r.failAt(r.here(), message)
}

func (r *Recognizer) failAt(pos Position, message string) {
	if r.err != nil {
		return
	}
	r.err = &SyntaxError{Pos: pos, Message: message}
}

// here returns the position of the current token, or just past the last one.
func (r *Recognizer) here() Position {
	if tok := r.cursor.Peek(); tok != nil {
		return tok.Pos()
	}
	if n := len(r.cursor.tokens); n > 0 {
		return end(r.cursor.tokens[n-1])
	}
	return Position{Line: 1, Column: 1}
}

// Recognition is the outcome of a successful Recognize call.
type Recognition struct {
	// MaxExponent is the largest explicit exponent, 0 if none was written.
	MaxExponent int64
	// Tokens is the number of tokens consumed, always the whole input.
	Tokens int
}

// Recognize runs a fresh recognizer over tokens and requires the whole
// sequence to form one equation.
func Recognize(ctx context.Context, tokens []Token) (*Recognition, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("parser.recognize (%d tokens)", len(tokens)))
	defer timer.End()

	r := NewRecognizer(tokens)
	if !r.AcceptEquation() {
		if err := r.Err(); err != nil {
			return nil, err
		}
		return nil, &SyntaxError{Pos: r.here(), Message: "not an equation"}
	}

	if rest := r.cursor.Remaining(); len(rest) > 0 {
		return nil, &SyntaxError{
			Pos:     rest[0].Pos(),
			Message: fmt.Sprintf("unexpected %q after the equation", rest[0].String()),
		}
	}

	return &Recognition{
		MaxExponent: r.MaxExponent(),
		Tokens:      r.cursor.Pos(),
	}, nil
}
