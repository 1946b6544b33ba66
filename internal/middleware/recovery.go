package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

// Recovery returns middleware that turns a handler panic into an internal
// AppError, so the client gets the usual JSON error body and the server
// keeps running. The stack is logged with the request ID.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				slog.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
					slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				)
				returnErr = apperror.NewInternal(fmt.Errorf("panic: %v", r))
			}()

			return next(c)
		}
	}
}
