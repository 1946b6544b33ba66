package maps

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the read-only catalog routes. JSON endpoints live
// on the API group; the SVG icon and popup fragments are served outside it
// so map surfaces can reference them directly as image and HTML sources.
func RegisterRoutes(e *echo.Echo, api *echo.Group, h *Handler) {
	api.GET("/maps", h.ListMaps)
	api.GET("/maps/:id", h.SelectMap)
	api.GET("/maps/:id/render", h.Render)
	api.GET("/maps/:id/events", h.Events)
	api.GET("/maps/:id/categories", h.Categories)
	api.GET("/maps/:id/objects/:oid", h.Object)
	api.GET("/maps/:id/objects/:oid/events", h.ObjectEvents)
	api.GET("/maps/:id/events/:eid", h.Event)
	api.GET("/styles", h.Styles)

	e.GET("/maps/:id/objects/:oid/icon.svg", h.Icon)
	e.GET("/maps/:id/objects/:oid/popup", h.Popup)
}
