package ecs

import (
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with a couple of ecs-specific convenience
// constructors, the same shape hupe1980/vecgo uses for its own Logger
// wrapper. The default World logger discards everything; callers opt
// in with WithLogger.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps an existing slog.Handler.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable lines to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger that writes JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger discards everything logged through it.
func NoopLogger() *Logger {
	return NewLogger(nil)
}
