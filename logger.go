package kmeanspp

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSeed logs a seeding operation.
func (l *Logger) LogSeed(ctx context.Context, k int, ids []uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"k", k,
			"ids", ids,
		)
	}
}

// LogIteration logs one assignment+update step.
func (l *Logger) LogIteration(ctx context.Context, it Iteration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", it.Index,
		"inertia", it.Inertia,
		"shift", it.Shift,
		"state", it.State.String(),
	)
}

// LogFit logs a fit operation.
func (l *Logger) LogFit(ctx context.Context, res *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"error", err,
		)
		return
	}
	if !res.Converged {
		l.WarnContext(ctx, "fit stopped without converging",
			"iterations", res.Iterations,
			"inertia", res.Inertia,
		)
		return
	}
	l.InfoContext(ctx, "fit converged",
		"iterations", res.Iterations,
		"inertia", res.Inertia,
	)
}

// LogLoad logs loading and joining the input tables.
func (l *Logger) LogLoad(ctx context.Context, rows, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"rows", rows,
			"dimension", dimension,
		)
	}
}
