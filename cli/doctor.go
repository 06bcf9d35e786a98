package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/polyeq/errors"
	"github.com/robinvdvleuten/polyeq/parser"
)

// DoctorCmd provides doctor utilities for debugging equations.
type DoctorCmd struct {
	Lex LexCmd `cmd:"" help:"Show lexical tokens of an equation file."`
}

// LexCmd shows lexical tokens of an equation file.
type LexCmd struct {
	File FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Repr bool        `help:"Dump the token values as Go syntax."`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	lexer := parser.NewLexer(content, cmd.File.Filename)
	tokens, err := lexer.ScanAll()
	if err != nil {
		if globals.Format == "json" {
			_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().Format(err))
			return NewCommandError(1)
		}
		return fmt.Errorf("lexer error: %w", err)
	}

	if cmd.Repr {
		repr.New(ctx.Stdout, repr.Indent("  ")).Println(tokens)
		return nil
	}

	if globals.Format == "json" {
		return printTokensJSON(ctx.Stdout, tokens)
	}

	// Format: TYPE line:col "content"
	for _, token := range tokens {
		pos := token.Pos()
		_, _ = fmt.Fprintf(ctx.Stdout, "%-10s %d:%d    %q\n",
			token.Type().String(),
			pos.Line,
			pos.Column,
			token.String())
	}

	return nil
}

// TokenJSON is the JSON form of one token.
type TokenJSON struct {
	Type   string `json:"type"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// printTokensJSON writes one JSON object per token.
func printTokensJSON(w io.Writer, tokens []parser.Token) error {
	enc := json.NewEncoder(w)
	for _, token := range tokens {
		pos := token.Pos()
		err := enc.Encode(TokenJSON{
			Type:   token.Type().String(),
			Line:   pos.Line,
			Column: pos.Column,
			Text:   token.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to encode token: %w", err)
		}
	}
	return nil
}
