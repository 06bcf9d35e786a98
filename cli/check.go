package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/polyeq/equation"
)

type CheckCmd struct {
	File       FileOrStdin `help:"Input filename with one equation per line (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	ShowTokens bool        `help:"Print the token list of every line." name:"tokens"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr, fmt.Sprintf("check %s", cmd.File.DisplayName()))
	defer reportTelemetry()

	printer := newReportPrinter(ctx.Stdout, ctx.Stderr, globals, cmd.ShowTokens)
	printer.collect = true
	checker := equation.New(equation.WithFilename(cmd.File.Filename))

	total, invalid := 0, 0
	err = checker.Run(runCtx, bytes.NewReader(source), func(r *equation.Report) error {
		total++
		if !r.Valid {
			invalid++
		}
		return printer.Print(r)
	})
	if err != nil {
		return err
	}

	// Errors are listed after the reports, against the whole file.
	if len(printer.errs) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, strings.TrimRight(globals.errorFormatter(source).FormatAll(printer.errs), "\n"))
	}

	if globals.Format == "json" {
		if invalid > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	_, _ = fmt.Fprintln(ctx.Stdout)
	if invalid > 0 {
		printError(ctx.Stderr, fmt.Sprintf("%d of %d line(s) are not equations", invalid, total))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("%d equation(s) checked", total))
	return nil
}
