package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robinvdvleuten/polyeq/output"
	"github.com/robinvdvleuten/polyeq/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	NoColor   bool   `help:"Disable colored output." env:"POLYEQ_NO_COLOR,NO_COLOR"`
	Format    string `help:"Output format for reports." enum:"text,json" default:"text" short:"f"`
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Check every line of a file for an equation in one variable."`
	Repl   ReplCmd   `cmd:"" help:"Check equations typed interactively."`
	Watch  WatchCmd  `cmd:"" help:"Check a file again whenever it changes."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging equations."`
}

// styles returns output styles for w honoring --no-color.
func (g *Globals) styles(w io.Writer) *output.Styles {
	if g.NoColor {
		return output.NewPlainStyles(w)
	}
	return output.NewStyles(w)
}

// startTelemetry attaches a timing collector to parent when --telemetry is
// set. The returned function ends the root timer and prints the report to
// stderr; it is safe to call more than once.
func (g *Globals) startTelemetry(parent context.Context, stderr io.Writer, name string) (context.Context, func()) {
	if !g.Telemetry {
		return parent, func() {}
	}

	collector := telemetry.NewTimingCollector(telemetry.WithStyles(g.styles(stderr)))
	runCtx := telemetry.WithCollector(parent, collector)
	timer := collector.Start(name)

	var once sync.Once
	return runCtx, func() {
		once.Do(func() {
			timer.End()
			_, _ = fmt.Fprintln(stderr)
			collector.Report(stderr)
		})
	}
}
