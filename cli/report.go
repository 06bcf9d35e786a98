package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/polyeq/equation"
	"github.com/robinvdvleuten/polyeq/errors"
	"github.com/robinvdvleuten/polyeq/output"
	"github.com/robinvdvleuten/polyeq/parser"
)

// ReportJSON is the JSON form of one checked line.
type ReportJSON struct {
	Line      int               `json:"line"`
	Source    string            `json:"source"`
	Equation  bool              `json:"equation"`
	Variables string            `json:"variables,omitempty"`
	Names     []string          `json:"names,omitempty"`
	Degree    *int64            `json:"degree,omitempty"`
	Tokens    []string          `json:"tokens,omitempty"`
	Error     *errors.ErrorJSON `json:"error,omitempty"`
}

// reportPrinter writes reports as styled text or as JSON lines.
type reportPrinter struct {
	stdout     io.Writer
	stderr     io.Writer
	styles     *output.Styles
	json       bool
	showTokens bool
	renderer   *ErrorRenderer

	// collect holds errors back in errs instead of rendering each one
	// under its line.
	collect bool
	errs    []error
}

func newReportPrinter(stdout, stderr io.Writer, globals *Globals, showTokens bool) *reportPrinter {
	return &reportPrinter{
		stdout:     stdout,
		stderr:     stderr,
		styles:     globals.styles(stdout),
		json:       globals.Format == "json",
		showTokens: showTokens,
		renderer:   NewErrorRenderer(globals.NoColor),
	}
}

func (p *reportPrinter) Print(r *equation.Report) error {
	if p.json {
		return p.printJSON(r)
	}
	p.printText(r)
	return nil
}

func (p *reportPrinter) printText(r *equation.Report) {
	if p.showTokens && r.Tokens != nil {
		_, _ = fmt.Fprintf(p.stdout, "%s %s\n", p.styles.Dim("the token list is"), tokenList(r.Tokens))
	}

	location := p.styles.Dim(fmt.Sprintf("%d:", r.Line))

	if !r.Valid {
		_, _ = fmt.Fprintf(p.stdout, "%s %s %s\n", errorStyle.Render(errorSymbol), location, p.styles.Error(r.Summary()))
		if p.collect && r.Err != nil {
			p.errs = append(p.errs, r.Err)
		} else if detail := p.renderer.Render(r); detail != "" {
			_, _ = fmt.Fprintln(p.stderr, detail)
		}
		return
	}

	var summary string
	if r.InOneVariable() {
		summary = fmt.Sprintf("%s in 1 variable (%s) of degree %s",
			p.styles.Success("this is an equation"),
			p.styles.Variable(r.Names[0]),
			p.styles.Number(fmt.Sprint(r.Degree())),
		)
	} else {
		summary = p.styles.Warning(r.Summary())
		if len(r.Names) > 0 {
			vars := make([]string, len(r.Names))
			for i, name := range r.Names {
				vars[i] = p.styles.Variable(name)
			}
			summary += p.styles.Dim(" (") + strings.Join(vars, p.styles.Dim(", ")) + p.styles.Dim(")")
		}
	}

	_, _ = fmt.Fprintf(p.stdout, "%s %s %s\n", successStyle.Render(successSymbol), location, summary)
}

func (p *reportPrinter) printJSON(r *equation.Report) error {
	out := ReportJSON{
		Line:     r.Line,
		Source:   r.Source,
		Equation: r.Valid,
	}

	if r.Valid {
		out.Variables = r.Variables.String()
		out.Names = r.Names
		if r.InOneVariable() {
			degree := r.Degree()
			out.Degree = &degree
		}
	}
	if p.showTokens {
		for _, tok := range r.Tokens {
			out.Tokens = append(out.Tokens, tok.String())
		}
	}
	if r.Err != nil {
		errJSON := errors.NewJSONFormatter().ToJSON(r.Err)
		out.Error = &errJSON
		if p.collect {
			p.errs = append(p.errs, r.Err)
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(p.stdout, string(data))
	return err
}

// tokenList renders tokens separated by spaces, e.g. "x ^ 3 + x = 5".
func tokenList(tokens []parser.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}
