package cli

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/polyeq/equation"
)

// debounceDelay coalesces the several events editors emit for one save.
const debounceDelay = 100 * time.Millisecond

// WatchCmd checks a file and checks it again on every change.
type WatchCmd struct {
	File       string `help:"Input filename with one equation per line." arg:"" type:"existingfile"`
	ShowTokens bool   `help:"Print the token list of every line." name:"tokens"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := newReportPrinter(ctx.Stdout, ctx.Stderr, globals, cmd.ShowTokens)

	var mu sync.Mutex
	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := cmd.check(runCtx, ctx, globals, printer); err != nil {
			printError(ctx.Stderr, err.Error())
		}
	}
	check()

	// Later passes replace the previous output on a terminal.
	recheck := func() {
		if f, ok := ctx.Stdout.(*os.File); ok && isTerminal(f) && !printer.json {
			printer.styles.Output().ClearScreen()
		}
		check()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: atomic saves replace the file, which drops a
	// watch on the file itself.
	if err := watcher.Add(filepath.Dir(cmd.File)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	printInfof(ctx.Stderr, "watching %s", globals.styles(ctx.Stderr).FilePath(cmd.File))

	return watch(runCtx, watcher, cmd.File, recheck)
}

// check runs one pass over the file.
func (cmd *WatchCmd) check(runCtx context.Context, ctx *kong.Context, globals *Globals, printer *reportPrinter) error {
	source, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if globals.Telemetry {
		var reportTelemetry func()
		runCtx, reportTelemetry = globals.startTelemetry(runCtx, ctx.Stderr, fmt.Sprintf("check %s", filepath.Base(cmd.File)))
		defer reportTelemetry()
	}

	checker := equation.New(equation.WithFilename(cmd.File))

	invalid := 0
	err = checker.Run(runCtx, bytes.NewReader(source), func(r *equation.Report) error {
		if !r.Valid {
			invalid++
		}
		return printer.Print(r)
	})
	if err != nil {
		return err
	}

	if !printer.json {
		if invalid > 0 {
			printError(ctx.Stdout, fmt.Sprintf("%d line(s) are not equations", invalid))
		} else {
			printSuccess(ctx.Stdout, "all lines are equations")
		}
	}
	return nil
}

// watch calls onChange, debounced, whenever file is written, created,
// removed or renamed, until ctx is done.
func watch(ctx context.Context, watcher *fsnotify.Watcher, file string, onChange func()) error {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	target := filepath.Clean(file)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}
