package facmat

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with facmat-specific context. It provides
// structured logging with consistent field names for loaders and block
// processing.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// uses a default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithDims adds the logical shape to the logger.
func (l *Logger) WithDims(rows, cols int) *Logger {
	return &Logger{Logger: l.Logger.With("rows", rows, "cols", cols)}
}

// WithSource adds a data-source field (path or object key) to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{Logger: l.Logger.With("source", source)}
}

// LogLoad logs the result of loading the two factor arrays.
func (l *Logger) LogLoad(ctx context.Context, weights, nodes string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "factor load failed",
			"weights", weights,
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "factors loaded",
			"weights", weights,
			"nodes", nodes,
		)
	}
}

// LogBlocks logs a completed block-processing run.
func (l *Logger) LogBlocks(ctx context.Context, nBlocks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "block processing failed",
			"blocks", nBlocks,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "block processing completed",
			"blocks", nBlocks,
		)
	}
}
