// Package logging provides structured logging configuration using log/slog.
//
// Request IDs set by chi's RequestID middleware and import IDs set with
// WithImport are attached to every entry logged through FromContext, so all
// entries for one statement import can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup configures the global slog logger based on level and format.
// Entries are written to stderr so command output on stdout stays parseable.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New builds a logger writing to w with the given level and format.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns a logger enriched with request context.
//
// When ctx carries a chi RequestID or an import ID, the returned logger
// includes request_id and import_id in all log entries.
//
// Usage:
//
//	ctx = logging.WithImport(ctx, importID)
//	logging.FromContext(ctx).Info("statement parsed", "rows", parsed.RowCount)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	// Chi's RequestID middleware stores the ID in context
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	if importID := ImportID(ctx); importID != "" {
		logger = logger.With("import_id", importID)
	}

	return logger
}

type importIDKey struct{}

// WithImport returns a context carrying importID. Loggers obtained from it via
// FromContext or WithFields include an import_id attribute.
func WithImport(ctx context.Context, importID string) context.Context {
	return context.WithValue(ctx, importIDKey{}, importID)
}

// ImportID returns the import ID stored by WithImport, or "".
func ImportID(ctx context.Context) string {
	id, _ := ctx.Value(importIDKey{}).(string)
	return id
}

// WithFields returns a logger with additional structured fields.
//
// This is useful for creating operation-specific loggers that carry
// consistent context through a multi-step process.
//
// Usage:
//
//	logger := logging.WithFields(ctx,
//	    "account_id", accountID,
//	    "preset", result.PresetID,
//	)
//	logger.Info("mapping detected", "confidence", result.Confidence)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
