package viewer

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the viewer session routes on the API group.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.POST("/viewer/sessions", h.Create)

	s := api.Group("/viewer/sessions/:sid")
	s.GET("", h.Get)
	s.DELETE("", h.Delete)
	s.POST("/map", h.SelectMap)
	s.POST("/year", h.SetYear)
	s.POST("/step", h.Step)
	s.POST("/unit", h.SetUnit)
	s.POST("/filter", h.SetFilter)
	s.POST("/object", h.SelectObject)
	s.DELETE("/object", h.ClearObject)
	s.POST("/event", h.SelectEvent)
	s.DELETE("/event", h.ClearEvent)
	s.POST("/style", h.SetStyle)
	s.POST("/related", h.SetRelated)
}
