package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/robinvdvleuten/polyeq/equation"
)

// ReplCmd checks equations one at a time until the input ends or a line
// starting with '!' is entered.
type ReplCmd struct {
	ShowTokens bool `help:"Print the token list of every equation." name:"tokens" default:"true" negatable:""`

	stdin *os.File `kong:"-"`
}

func (cmd *ReplCmd) Run(ctx *kong.Context, globals *Globals) error {
	stdin := cmd.stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr, "repl")
	defer reportTelemetry()

	printer := newReportPrinter(ctx.Stdout, ctx.Stderr, globals, cmd.ShowTokens)
	checker := equation.New()

	var err error
	if isTerminal(stdin) {
		err = cmd.interactive(runCtx, ctx.Stdout, printer, checker)
	} else {
		err = cmd.piped(runCtx, stdin, printer, checker)
	}
	if err != nil {
		return err
	}

	if !printer.json {
		_, _ = fmt.Fprintln(ctx.Stdout, "good bye")
	}
	return nil
}

// interactive prompts with an input field per equation. Ctrl+C ends the
// session like '!'.
func (cmd *ReplCmd) interactive(ctx context.Context, stdout io.Writer, printer *reportPrinter, checker *equation.Checker) error {
	for {
		text, err := promptEquation("give an equation")
		if stdErrors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read equation: %w", err)
		}

		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "!") {
			return nil
		}
		if trimmed == "" {
			continue
		}

		// The input field clears itself, so echo what was checked.
		if !printer.json {
			_, _ = fmt.Fprintf(stdout, "give an equation: %s\n", text)
		}
		if err := printer.Print(checker.Check(ctx, text)); err != nil {
			return err
		}
	}
}

// piped reads equations from a non-interactive stdin.
func (cmd *ReplCmd) piped(ctx context.Context, stdin io.Reader, printer *reportPrinter, checker *equation.Checker) error {
	return checker.Run(ctx, stdin, printer.Print)
}
