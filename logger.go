package whitedew

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with whitedew-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogStartup logs the outcome of App.Run.
func (l *Logger) LogStartup(ctx context.Context, language string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "startup failed",
			"language", language,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "startup completed",
			"language", language,
		)
	}
}

// LogShutdown logs the outcome of App.Close.
func (l *Logger) LogShutdown(ctx context.Context, documents int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "shutdown failed",
			"documents", documents,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "shutdown completed",
			"documents", documents,
		)
	}
}

// LogOpen logs a document open.
func (l *Logger) LogOpen(ctx context.Context, path string, lines int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "document opened",
			"path", path,
			"lines", lines,
		)
	}
}

// LogSave logs a document save.
func (l *Logger) LogSave(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "document saved",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogAllocFailure logs an arena that ran out of capacity or budget.
func (l *Logger) LogAllocFailure(ctx context.Context, op string, stats ArenaStats) {
	l.WarnContext(ctx, "arena allocation failed",
		"op", op,
		"capacity", stats.Capacity,
		"committed", stats.Committed,
		"offset", stats.Offset,
	)
}
