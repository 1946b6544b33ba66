package middleware

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a Templ component to the response as HTML with the given
// status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	return RenderAs(c, statusCode, "text/html; charset=utf-8", component)
}

// RenderAs writes a Templ component with an explicit content type, e.g.
// image/svg+xml for marker icons.
func RenderAs(c echo.Context, statusCode int, contentType string, component templ.Component) error {
	c.Response().Header().Set("Content-Type", contentType)
	c.Response().WriteHeader(statusCode)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
