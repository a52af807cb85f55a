// Package watch reruns a command whenever one of its input files changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Result summarizes one run.
type Result struct {
	Matched int
	Total   int
}

// RunFunc is called once up front and again after every debounced change.
// Calls never overlap and all happen on the goroutine that called Run.
type RunFunc func(ctx context.Context) (Result, error)

type Options struct {
	// Files are the inputs to watch. Their directories are watched so that
	// editors replacing a file by rename are noticed.
	Files []string

	Debounce time.Duration

	Logger *slog.Logger

	// Out receives one status line per run.
	Out io.Writer
}

func DefaultOptions() Options {
	return Options{
		Debounce: 300 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      io.Discard,
	}
}

// Run blocks until ctx is done or the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	files, err := absolute(opts.Files)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range directories(files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %q: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Files, ", "), opts.Debounce)

	run(ctx, opts, runFn, "(initial)")

	// the debouncer fires on a timer goroutine, runs stay on this one
	changed := make(chan []string, 1)
	debouncer := NewDebouncer(opts.Debounce, opts.Logger, func(paths []string) {
		select {
		case changed <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(opts.Out, "shutting down watcher")
			return nil

		case paths := <-changed:
			run(ctx, opts, runFn, trigger(paths))

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if isRelevant(event, files) {
				debouncer.Trigger(event.Name)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

func run(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		opts.Logger.Debug("run failed", slog.String("trigger", trigger), slog.Any("error", err))
		fmt.Fprintf(opts.Out, "[%s] %s: ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s: OK (%d of %d items)\n", now, trigger, result.Matched, result.Total)
}

// trigger names the changed files by their base name.
func trigger(paths []string) string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}

	return strings.Join(names, ", ")
}

func absolute(files []string) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}
		out = append(out, abs)
	}

	return out, nil
}

func directories(files []string) []string {
	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}

	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// isRelevant keeps content changes of the watched files.
func isRelevant(event fsnotify.Event, files []string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return slices.Contains(files, filepath.Clean(event.Name))
}
