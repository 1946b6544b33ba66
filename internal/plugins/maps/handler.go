package maps

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/atlas/internal/apperror"
	"github.com/keyxmakerx/atlas/internal/basemaps"
	"github.com/keyxmakerx/atlas/internal/middleware"
)

// Handler processes HTTP requests for the maps plugin.
type Handler struct {
	svc MapService
}

// NewHandler creates a new maps Handler.
func NewHandler(svc MapService) *Handler {
	return &Handler{svc: svc}
}

// notModified stamps the catalog fingerprint on the response and reports
// whether the client already holds this version.
func (h *Handler) notModified(c echo.Context) bool {
	fp := h.svc.Fingerprint()
	if fp == "" {
		return false
	}
	etag := `"` + fp + `"`
	c.Response().Header().Set("ETag", etag)
	c.Response().Header().Set("X-Catalog-Fingerprint", fp)
	return c.Request().Header.Get("If-None-Match") == etag
}

// jsonCached writes v as JSON unless the client's ETag is current.
func (h *Handler) jsonCached(c echo.Context, v any) error {
	if h.notModified(c) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSON(http.StatusOK, v)
}

// parseYear reads the optional year query parameter.
func parseYear(c echo.Context) (*int, error) {
	raw := c.QueryParam("year")
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.NewBadRequest("year must be an integer")
	}
	return &y, nil
}

// ListMaps returns every selectable map.
// GET /api/v1/maps
func (h *Handler) ListMaps(c echo.Context) error {
	return h.jsonCached(c, h.svc.ListMaps(c.Request().Context()))
}

// SelectMap returns a map's year bounds with the initial year.
// GET /api/v1/maps/:id
func (h *Handler) SelectMap(c echo.Context) error {
	sel, err := h.svc.SelectMap(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.jsonCached(c, sel)
}

// Render returns the resolved markers and viewport of a map at a year.
// GET /api/v1/maps/:id/render?year=&selected=
func (h *Handler) Render(c echo.Context) error {
	year, err := parseYear(c)
	if err != nil {
		return err
	}
	state, err := h.svc.RenderState(c.Request().Context(), c.Param("id"), RenderInput{
		Year:       year,
		SelectedID: c.QueryParam("selected"),
	})
	if err != nil {
		return err
	}
	return h.jsonCached(c, state)
}

// Events lists a map's events filtered by mode and category.
// GET /api/v1/maps/:id/events?mode=&category=
func (h *Handler) Events(c echo.Context) error {
	mode, err := ParseFilterMode(c.QueryParam("mode"))
	if err != nil {
		return apperror.NewBadRequest(err.Error())
	}
	events, err := h.svc.EventList(c.Request().Context(), c.Param("id"), EventQuery{
		Mode:     mode,
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	return h.jsonCached(c, events)
}

// Categories lists a map's event categories.
// GET /api/v1/maps/:id/categories
func (h *Handler) Categories(c echo.Context) error {
	categories, err := h.svc.Categories(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.jsonCached(c, categories)
}

// Object returns an object's detail panel at a year.
// GET /api/v1/maps/:id/objects/:oid?year=
func (h *Handler) Object(c echo.Context) error {
	year, err := parseYear(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.ObjectDetail(c.Request().Context(), c.Param("id"), c.Param("oid"), year)
	if err != nil {
		return err
	}
	return h.jsonCached(c, detail)
}

// ObjectEvents returns the events anchored to an object.
// GET /api/v1/maps/:id/objects/:oid/events
func (h *Handler) ObjectEvents(c echo.Context) error {
	events, err := h.svc.RelatedEvents(c.Request().Context(), c.Param("id"), c.Param("oid"))
	if err != nil {
		return err
	}
	return h.jsonCached(c, events)
}

// Event returns an event with its anchor objects.
// GET /api/v1/maps/:id/events/:eid
func (h *Handler) Event(c echo.Context) error {
	detail, err := h.svc.EventDetail(c.Request().Context(), c.Param("id"), c.Param("eid"))
	if err != nil {
		return err
	}
	return h.jsonCached(c, detail)
}

// Icon renders an object's marker icon as SVG.
// GET /maps/:id/objects/:oid/icon.svg?year=&selected=
func (h *Handler) Icon(c echo.Context) error {
	year, err := parseYear(c)
	if err != nil {
		return err
	}
	m, err := h.svc.Marker(c.Request().Context(), c.Param("id"), c.Param("oid"), RenderInput{
		Year:       year,
		SelectedID: c.QueryParam("selected"),
	})
	if err != nil {
		return err
	}
	if h.notModified(c) {
		return c.NoContent(http.StatusNotModified)
	}
	return middleware.RenderAs(c, http.StatusOK, "image/svg+xml", MarkerIcon(*m))
}

// Popup renders an object's popup fragment.
// GET /maps/:id/objects/:oid/popup?year=
func (h *Handler) Popup(c echo.Context) error {
	year, err := parseYear(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.ObjectDetail(c.Request().Context(), c.Param("id"), c.Param("oid"), year)
	if err != nil {
		return err
	}
	if h.notModified(c) {
		return c.NoContent(http.StatusNotModified)
	}
	return middleware.Render(c, http.StatusOK, ObjectPopup(detail))
}

// Styles lists the available base-map styles.
// GET /api/v1/styles
func (h *Handler) Styles(c echo.Context) error {
	return c.JSON(http.StatusOK, basemaps.Registry())
}
