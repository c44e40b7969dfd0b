package multiomics

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pipeline-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithModality adds a modality field to the logger.
func (l *Logger) WithModality(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("modality", name),
	}
}

// LogValidate logs the validation of one modality.
func (l *Logger) LogValidate(ctx context.Context, modality string, samples, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "validation failed",
			"modality", modality,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "modality validated",
			"modality", modality,
			"samples", samples,
			"features", features,
		)
	}
}

// LogReduce logs one per-modality reduction.
func (l *Logger) LogReduce(ctx context.Context, modality string, components int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduction failed",
			"modality", modality,
			"components", components,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reduction completed",
			"modality", modality,
			"components", components,
		)
	}
}

// LogClamp logs a recorded dimensionality clamp.
func (l *Logger) LogClamp(ctx context.Context, w ClampWarning) {
	l.WarnContext(ctx, "component count clamped",
		"stage", w.Stage,
		"requested", w.Requested,
		"effective", w.Effective,
	)
}

// LogIntegrate logs the joint integration stage.
func (l *Logger) LogIntegrate(ctx context.Context, retained, width, components int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "integration failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "integration completed",
			"retained_samples", retained,
			"concatenated_width", width,
			"components", components,
		)
	}
}
