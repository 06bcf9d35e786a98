// Package equation checks lines of text for single-variable polynomial
// equations and reports their degree.
//
// It wires the parser's lexer, recognizer and variable analysis together
// and drives them over a stream of input lines:
//
//	checker := equation.New(equation.WithFilename("input.txt"))
//	err := checker.Run(ctx, file, func(r *equation.Report) error {
//		fmt.Println(r.Summary())
//		return nil
//	})
package equation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/polyeq/parser"
	"github.com/robinvdvleuten/polyeq/telemetry"
)

// Checker checks equations one line at a time. Identifier spellings are
// interned across all lines a Checker sees.
type Checker struct {
	filename string
	interner *parser.Interner
}

// Option configures a Checker.
type Option func(*Checker)

// WithFilename sets the filename used in token positions and errors.
func WithFilename(name string) Option {
	return func(c *Checker) {
		c.filename = name
	}
}

// New creates a Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		interner: parser.NewInterner(16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check checks a single line as if it were line 1 of the input.
func (c *Checker) Check(ctx context.Context, source string) *Report {
	return c.CheckLine(ctx, 1, source)
}

// CheckLine tokenizes source, recognizes it as an equation and classifies
// its variables. A line that cannot be tokenized is reported as not being an
// equation, with the lexer error attached.
func (c *Checker) CheckLine(ctx context.Context, line int, source string) *Report {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("line %d", line))
	defer timer.End()

	report := &Report{Line: line, Source: source}

	lexTimer := timer.Child("parser.lex")
	lexer := parser.NewLexer([]byte(source), c.filename,
		parser.WithInterner(c.interner),
		parser.WithStartLine(line),
	)
	tokens, err := lexer.ScanAll()
	lexTimer.End()
	if err != nil {
		report.Err = err
		return report
	}
	report.Tokens = tokens

	recognition, err := parser.Recognize(ctx, tokens)
	if err != nil {
		report.Err = err
		return report
	}

	classifyTimer := timer.Child("parser.classify")
	report.Valid = true
	report.MaxExponent = recognition.MaxExponent
	report.Variables = parser.ClassifyVariables(tokens)
	report.Names = parser.Variables(tokens)
	classifyTimer.End()

	return report
}

// Run reads equations from r, one per line, and calls fn with the report
// for each. Blank lines and lines starting with '#' are skipped; a line
// starting with '!' ends the input. Run stops at the first error returned by
// fn or when ctx is cancelled.
func (c *Checker) Run(ctx context.Context, r io.Reader, fn func(*Report) error) error {
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return err
		}

		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "!") {
			return nil
		}

		if err := fn(c.CheckLine(ctx, line, text)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read equations: %w", err)
	}
	return nil
}
