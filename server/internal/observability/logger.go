// Package observability carries request-scoped logging and lightweight
// in-process metrics for the scheduler. There is no external metrics stack;
// counters are exposed through a JSON endpoint and logs through slog.
package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogFieldRequestID is the field name for the request ID.
const LogFieldRequestID = "request_id"

// NewRequestID generates a unique request ID.
func NewRequestID() string {
	return uuid.New().String()
}

type loggerKey struct{}

// WithLogger stores a request-scoped logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request-scoped logger, or the process default when
// the request carries none (background runners, tests).
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
