package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger returns middleware that tags every request with an ID and
// logs it once completed: method, path, status, latency, remote IP and
// request ID. An incoming X-Request-ID is kept; otherwise a UUID is issued.
// Health checks are logged at debug level.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			res.Header().Set(echo.HeaderXRequestID, id)

			err := next(c)
			if err != nil {
				// Write the error response now so its status is logged.
				c.Error(err)
			}

			attrs := []slog.Attr{
				slog.String("request_id", id),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}

			level := slog.LevelInfo
			switch {
			case res.Status >= 500:
				level = slog.LevelError
			case res.Status >= 400:
				level = slog.LevelWarn
			case req.URL.Path == "/healthz":
				level = slog.LevelDebug
			}
			slog.LogAttrs(req.Context(), level, "request", attrs...)

			return nil
		}
	}
}
