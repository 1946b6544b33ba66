package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security-related HTTP headers
// on every response. tileOrigins are added to img-src so the map surface can
// load base-map tiles.
func SecurityHeaders(tileOrigins []string) echo.MiddlewareFunc {
	imgSrc := "img-src 'self' data: blob: https:"
	if len(tileOrigins) > 0 {
		imgSrc = "img-src 'self' data: blob: " + strings.Join(tileOrigins, " ") + " https://cdn.poehali.dev"
	}
	csp := "default-src 'self'; " +
		"script-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		imgSrc + "; " +
		"connect-src 'self'; " +
		"frame-ancestors 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Popup fragments carry inline styles from catalog text.
			h.Set("Content-Security-Policy", csp)

			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy",
				"camera=(), microphone=(), geolocation=(), payment=()",
			)

			return next(c)
		}
	}
}
