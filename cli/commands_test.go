package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/polyeq/errors"
)

const sampleEquations = `# from the exercise sheet
x^3+x=5
x+5=0
x+y=3
x^-2=0
3+4=7
`

type testCLI struct {
	Commands
}

// run parses args against the command tree and runs the selected command,
// returning what it wrote to stdout and stderr.
func run(t *testing.T, args []string, setup func(*testCLI)) (string, string, error) {
	t.Helper()

	var app testCLI
	var stdout, stderr bytes.Buffer

	parser, err := kong.New(&app,
		kong.Name("polyeq"),
		kong.Writers(&stdout, &stderr),
		kong.Bind(&app.Globals),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	if setup != nil {
		setup(&app)
	}

	err = ctx.Run()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equations.txt")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCheckCmd(t *testing.T) {
	t.Run("ReportsEveryLine", func(t *testing.T) {
		path := writeFile(t, sampleEquations)

		stdout, stderr, err := run(t, []string{"--no-color", "check", path}, nil)

		var cmdErr *CommandError
		assert.True(t, stdErrors.As(err, &cmdErr))
		assert.Equal(t, 1, cmdErr.ExitCode())

		assert.Contains(t, stdout, "2: this is an equation in 1 variable (x) of degree 3")
		assert.Contains(t, stdout, "3: this is an equation in 1 variable (x) of degree 1")
		assert.Contains(t, stdout, "4: this is an equation, but not in 1 variable (x, y)")
		assert.Contains(t, stdout, "5: this is not an equation")
		assert.Contains(t, stdout, "6: this is an equation, but not in 1 variable")

		assert.Contains(t, stderr, "negative exponents are not allowed")
		assert.Contains(t, stderr, "   x^-2=0\n     ^")
		assert.Contains(t, stderr, "1 of 5 line(s) are not equations")
	})

	t.Run("AllEquations", func(t *testing.T) {
		path := writeFile(t, "x^2 = 4\n2x - 1 = x\n")

		stdout, _, err := run(t, []string{"--no-color", "check", path}, nil)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "2 equation(s) checked")
	})

	t.Run("ShowTokens", func(t *testing.T) {
		path := writeFile(t, "x^3 + x = 5\n")

		stdout, _, err := run(t, []string{"--no-color", "check", "--tokens", path}, nil)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "the token list is x ^ 3 + x = 5")
	})

	t.Run("JSONFormat", func(t *testing.T) {
		path := writeFile(t, sampleEquations)

		stdout, stderr, err := run(t, []string{"--format=json", "check", path}, nil)
		assert.Error(t, err)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, 5, len(lines))

		var reports []ReportJSON
		for _, line := range lines {
			var report ReportJSON
			assert.NoError(t, json.Unmarshal([]byte(line), &report))
			reports = append(reports, report)
		}

		assert.True(t, reports[0].Equation)
		assert.Equal(t, "1", reports[0].Variables)
		assert.Equal(t, int64(3), *reports[0].Degree)

		assert.Equal(t, ">1", reports[2].Variables)
		assert.Zero(t, reports[2].Degree)

		assert.False(t, reports[3].Equation)
		assert.Equal(t, "syntax", reports[3].Error.Type)
		assert.Equal(t, 5, reports[3].Error.Position.Line)

		assert.Equal(t, "0", reports[4].Variables)

		// The errors are summarized on stderr as one JSON array.
		var errs []errors.ErrorJSON
		assert.NoError(t, json.Unmarshal([]byte(stderr), &errs))
		assert.Equal(t, 1, len(errs))
		assert.Equal(t, "syntax", errs[0].Type)
		assert.Equal(t, 3, errs[0].Position.Column)
	})

	t.Run("ErrorsFollowReports", func(t *testing.T) {
		path := writeFile(t, "x^-2=0\nx = 1\nx = 1 = 2\n")

		stdout, stderr, err := run(t, []string{"--no-color", "check", path}, nil)
		assert.Error(t, err)

		assert.Contains(t, stdout, "1: this is not an equation")
		assert.Contains(t, stdout, "2: this is an equation in 1 variable (x) of degree 1")
		assert.Contains(t, stdout, "3: this is not an equation")

		// Both errors are rendered against their own line of the file.
		first := strings.Index(stderr, "   x^-2=0\n     ^")
		second := strings.Index(stderr, `3:7: unexpected "=" after the equation`)
		assert.True(t, first >= 0, stderr)
		assert.True(t, second > first, stderr)
		assert.Contains(t, stderr, "   x = 1 = 2\n         ^")
		assert.Contains(t, stderr, "2 of 3 line(s) are not equations")
	})

	t.Run("Telemetry", func(t *testing.T) {
		path := writeFile(t, "x = 1\n")

		_, stderr, err := run(t, []string{"--no-color", "--telemetry", "check", path}, nil)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "check equations.txt: ")
		assert.Contains(t, stderr, "line 1: ")
	})
}

func TestReplCmdPiped(t *testing.T) {
	path := writeFile(t, "x^2 + 1 = 0\nx^-1 = 2\n!\nx = 1\n")

	stdin, err := os.Open(path)
	assert.NoError(t, err)
	defer stdin.Close()

	stdout, stderr, err := run(t, []string{"--no-color", "repl"}, func(app *testCLI) {
		app.Repl.stdin = stdin
	})
	assert.NoError(t, err)

	assert.Contains(t, stdout, "the token list is x ^ 2 + 1 = 0")
	assert.Contains(t, stdout, "1: this is an equation in 1 variable (x) of degree 2")
	assert.Contains(t, stdout, "2: this is not an equation")
	assert.NotContains(t, stdout, "3:")
	assert.True(t, strings.HasSuffix(stdout, "good bye\n"))
	assert.Contains(t, stderr, "negative exponents are not allowed")
}

func TestLexCmd(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		path := writeFile(t, "2x^3 = 1.5")

		stdout, _, err := run(t, []string{"doctor", "lex", path}, nil)
		assert.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, 6, len(lines))
		assert.Equal(t, `NUMBER     1:1    "2"`, lines[0])
		assert.Equal(t, `IDENT      1:2    "x"`, lines[1])
		assert.Equal(t, `SYMBOL     1:3    "^"`, lines[2])
		assert.Equal(t, `NUMBER     1:8    "1.5"`, lines[5])
	})

	t.Run("Repr", func(t *testing.T) {
		path := writeFile(t, "x = y")

		stdout, _, err := run(t, []string{"doctor", "lex", "--repr", path}, nil)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "parser.Identifier")
		assert.Contains(t, stdout, `Name: "x"`)
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeFile(t, "x^2 = 1")

		stdout, _, err := run(t, []string{"--format=json", "doctor", "lex", path}, nil)
		assert.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, 5, len(lines))

		var token TokenJSON
		assert.NoError(t, json.Unmarshal([]byte(lines[1]), &token))
		assert.Equal(t, TokenJSON{Type: "SYMBOL", Line: 1, Column: 2, Text: "^"}, token)
	})

	t.Run("JSONLexError", func(t *testing.T) {
		path := writeFile(t, "x = 1 $ é")

		stdout, _, err := run(t, []string{"--format=json", "doctor", "lex", path}, nil)

		var cmdErr *CommandError
		assert.True(t, stdErrors.As(err, &cmdErr))
		assert.Equal(t, 1, cmdErr.ExitCode())

		var lexErr errors.ErrorJSON
		assert.NoError(t, json.Unmarshal([]byte(stdout), &lexErr))
		assert.Equal(t, "lex", lexErr.Type)
		assert.Equal(t, 9, lexErr.Position.Column)
	})

	t.Run("LexError", func(t *testing.T) {
		path := writeFile(t, "x = 1 $ é")

		_, _, err := run(t, []string{"doctor", "lex", path}, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lexer error")
	})
}

func TestWatchReactsToWrites(t *testing.T) {
	path := writeFile(t, "x = 1\n")

	watcher, err := fsnotify.NewWatcher()
	assert.NoError(t, err)
	defer watcher.Close()
	assert.NoError(t, watcher.Add(filepath.Dir(path)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, watcher, path, func() { changed <- struct{}{} })
	}()

	// Unrelated files in the same directory are ignored.
	assert.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("y"), 0o644))
	assert.NoError(t, os.WriteFile(path, []byte("x^2 = 1\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestStartTelemetryKeepsParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())

	var stderr bytes.Buffer
	globals := &Globals{Telemetry: true, NoColor: true}
	runCtx, report := globals.startTelemetry(parent, &stderr, "watch pass")

	assert.NoError(t, runCtx.Err())
	cancel()
	assert.IsError(t, runCtx.Err(), context.Canceled)

	report()
	report()
	assert.Equal(t, 1, strings.Count(stderr.String(), "watch pass: "))
}

func TestCommandError(t *testing.T) {
	var err error = NewCommandError(42)

	cmdErr, ok := err.(*CommandError)
	assert.True(t, ok)
	assert.Equal(t, 42, cmdErr.ExitCode())
	assert.Equal(t, "command failed", err.Error())
}
