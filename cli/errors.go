package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/polyeq/errors"
	"github.com/robinvdvleuten/polyeq/equation"
)

var errCaretStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})

// ErrorRenderer renders why a line is not an equation, pointing at the
// offending token in the line itself.
type ErrorRenderer struct {
	plain bool
}

// NewErrorRenderer creates a renderer. A plain renderer leaves the caret
// unstyled.
func NewErrorRenderer(plain bool) *ErrorRenderer {
	return &ErrorRenderer{plain: plain}
}

// Render formats the error attached to a report, or "" if there is none.
func (r *ErrorRenderer) Render(report *equation.Report) string {
	if report.Err == nil {
		return ""
	}

	opts := []errors.TextFormatterOption{
		errors.WithSource([]byte(report.Source)),
		errors.WithFirstLine(report.Line),
	}
	if !r.plain {
		opts = append(opts, errors.WithCaretStyle(func(s string) string { return errCaretStyle.Render(s) }))
	}
	return errors.NewTextFormatter(opts...).Format(report.Err)
}

// errorFormatter returns the formatter for a summary of the errors found in
// source, matching --format and --no-color.
func (g *Globals) errorFormatter(source []byte) errors.Formatter {
	if g.Format == "json" {
		return errors.NewJSONFormatter()
	}

	opts := []errors.TextFormatterOption{errors.WithSource(source)}
	if !g.NoColor {
		opts = append(opts, errors.WithCaretStyle(func(s string) string { return errCaretStyle.Render(s) }))
	}
	return errors.NewTextFormatter(opts...)
}
