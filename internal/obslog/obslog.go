// Package obslog provides the structured logging wrapper used by the
// tokenizer orchestrator, in the style of rice-search's logger package:
// a thin *slog.Logger wrapper adding a handful of With* helpers for the
// attributes this package's callers actually attach.
package obslog

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tokenizer-pipeline-specific context
// helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger at the given level ("debug", "info", "warn",
// "error"), writing text-formatted records to stderr unless format is
// "json".
func New(level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Default returns the package's default logger: info level, text format.
func Default() *Logger {
	return New("info", "text")
}

// WithRun returns a Logger tagging every record with a training-run
// correlation id.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.With("run_id", runID)}
}

// WithStage returns a Logger tagging every record with the pipeline stage
// currently executing (normalizer, pre_tokenizer, model, ...).
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{Logger: l.With("stage", stage)}
}

// WithError returns a Logger tagging every record with an error's message.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err.Error())}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
