// Package logging builds the process logger from the configuration and
// carries it through contexts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/AnatoleLucet/sift/internal/config"
)

type ctxKey struct{}

// Attribute keys added to every line logged about a command or a filter tree.
const (
	CommandKey = "command"
	TreeKey    = "tree"
)

// Setup installs a logger writing to stderr as the slog default.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter installs a logger writing to w as the slog default.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.EffectiveLogLevel())}

	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithCommand tags logger with the name of the running command.
func WithCommand(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String(CommandKey, name))
}

// WithTree tags logger with the title of the filter tree it reports on.
func WithTree(logger *slog.Logger, title string) *slog.Logger {
	return logger.With(slog.String(TreeKey, title))
}

// ParseLevel maps a config level to its slog level, info when unknown.
func ParseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}
