package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardloop/cardloop/server/internal/observability"
)

// RequestLogger tags every request with a generated request ID, stores a
// request-scoped logger in the context, and records the request outcome in
// the process metrics.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := observability.NewRequestID()
			logger := slog.Default().With(slog.String(observability.LogFieldRequestID, requestID))

			ctx := observability.WithLogger(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			status := c.Response().Status
			observability.GlobalMetrics().RecordRequest(duration, status >= 500)

			logger.Debug("http request",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				slog.Int("status", status),
				slog.Int64("duration_ms", duration.Milliseconds()))
			return err
		}
	}
}
