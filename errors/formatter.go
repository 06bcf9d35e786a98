// Package errors renders lexer and recognizer errors for different
// consumers. Error types stay in the parser package; this package only deals
// with presentation:
//   - TextFormatter: message followed by the offending source line and a caret
//   - JSONFormatter: structured JSON for scripts and editors
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/polyeq/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by *parser.LexError and *parser.SyntaxError.
type positioned interface {
	GetPosition() parser.Position
	Error() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte
	firstLine     int
	caret         func(string) string
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source the error positions refer to. Without it only
// the message is printed.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// WithFirstLine sets the line number of the first line of the source, for
// sources that are an excerpt such as a single line of a larger file.
func WithFirstLine(line int) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.firstLine = line
	}
}

// WithCaretStyle styles the caret line, e.g. with a lipgloss style's Render.
func WithCaretStyle(style func(string) string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.caret = style
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{firstLine: 1}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(positioned); ok && tf.sourceContent != nil {
		return tf.formatWithSourceContext(e.GetPosition(), e.Error())
	}
	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext writes the message, the source line holding pos
// and a caret under the offending column.
func (tf *TextFormatter) formatWithSourceContext(pos parser.Position, message string) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	lines := strings.Split(string(tf.sourceContent), "\n")
	idx := pos.Line - tf.firstLine
	if idx < 0 || idx >= len(lines) {
		return strings.TrimRight(buf.String(), "\n")
	}
	line := strings.TrimRight(lines[idx], "\r")

	buf.WriteString("   ")
	buf.WriteString(line)
	buf.WriteByte('\n')

	buf.WriteString("   ")
	buf.WriteString(caretIndent(line, pos.Column))
	caret := "^"
	if tf.caret != nil {
		caret = tf.caret(caret)
	}
	buf.WriteString(caret)
	buf.WriteByte('\n')

	return buf.String()
}

// caretIndent returns the padding that puts a caret under the given 1-based
// byte column of line. Tabs are kept so the caret lines up in any terminal,
// and wide characters take as many cells as they are displayed with.
func caretIndent(line string, column int) string {
	prefix := line
	if column-1 < len(line) {
		prefix = line[:max(column-1, 0)]
	}

	var buf strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			buf.WriteByte('\t')
			continue
		}
		buf.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	if column-1 > len(line) {
		buf.WriteString(strings.Repeat(" ", column-1-len(line)))
	}
	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a source position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.ToJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.ToJSON(err))
	}
	return result
}

// ToJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    errorType(err),
		Message: err.Error(),
	}

	if e, ok := err.(positioned); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}

func errorType(err error) string {
	switch err.(type) {
	case *parser.LexError:
		return "lex"
	case *parser.SyntaxError:
		return "syntax"
	default:
		return fmt.Sprintf("%T", err)
	}
}
