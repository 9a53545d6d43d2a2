package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/config"
)

type contextKey struct{}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWriter(os.Stdout, cfg), nil
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, cfg config.ServerConfig) *slog.Logger {
	level, ok := parseLevel(cfg.LogLevel)
	if !ok {
		// The main logger does not exist yet, so warn on stderr.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// parseLevel maps a case-insensitive level name to a slog.Level.
// Unknown names yield slog.LevelInfo and false.
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// the context carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
