package viewer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/atlas/internal/apperror"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

// Handler processes HTTP requests for viewer sessions.
type Handler struct {
	svc ViewerService
}

// NewHandler creates a new viewer Handler.
func NewHandler(svc ViewerService) *Handler {
	return &Handler{svc: svc}
}

// bind decodes the JSON body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	return nil
}

// Create starts a session.
// POST /api/v1/viewer/sessions
func (h *Handler) Create(c echo.Context) error {
	v, err := h.svc.Create(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// Get returns a session's view.
// GET /api/v1/viewer/sessions/:sid
func (h *Handler) Get(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), c.Param("sid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Delete ends a session.
// DELETE /api/v1/viewer/sessions/:sid
func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("sid")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SelectMap opens a map, or closes it when mapId is empty.
// POST /api/v1/viewer/sessions/:sid/map
func (h *Handler) SelectMap(c echo.Context) error {
	var req struct {
		MapID string `json:"mapId"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.SelectMap(c.Request().Context(), c.Param("sid"), req.MapID))
}

// SetYear moves the session to a year.
// POST /api/v1/viewer/sessions/:sid/year
func (h *Handler) SetYear(c echo.Context) error {
	var req struct {
		Year *int `json:"year"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Year == nil {
		return apperror.NewValidation("year is required")
	}
	return h.respond(c)(h.svc.SetYear(c.Request().Context(), c.Param("sid"), *req.Year))
}

// Step moves one time unit forwards or backwards.
// POST /api/v1/viewer/sessions/:sid/step
func (h *Handler) Step(c echo.Context) error {
	var req struct {
		Direction string `json:"direction"`
		Unit      string `json:"unit"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	dir, err := ParseDirection(req.Direction)
	if err != nil {
		return apperror.NewValidation(err.Error())
	}
	var unit TimeUnit
	if req.Unit != "" {
		if unit, err = ParseTimeUnit(req.Unit); err != nil {
			return apperror.NewValidation(err.Error())
		}
	}
	return h.respond(c)(h.svc.StepTime(c.Request().Context(), c.Param("sid"), dir, unit))
}

// SetUnit changes the step unit.
// POST /api/v1/viewer/sessions/:sid/unit
func (h *Handler) SetUnit(c echo.Context) error {
	var req struct {
		Unit string `json:"unit"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	unit, err := ParseTimeUnit(req.Unit)
	if err != nil {
		return apperror.NewValidation(err.Error())
	}
	return h.respond(c)(h.svc.SetTimeUnit(c.Request().Context(), c.Param("sid"), unit))
}

// SetFilter changes the event filter.
// POST /api/v1/viewer/sessions/:sid/filter
func (h *Handler) SetFilter(c echo.Context) error {
	var req struct {
		Mode     string `json:"mode"`
		Category string `json:"category"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	mode, err := maps.ParseFilterMode(req.Mode)
	if err != nil {
		return apperror.NewValidation(err.Error())
	}
	return h.respond(c)(h.svc.SetFilter(c.Request().Context(), c.Param("sid"), mode, req.Category))
}

// SelectObject selects an object. With fromEvent the object must anchor
// the selected event, which is closed.
// POST /api/v1/viewer/sessions/:sid/object
func (h *Handler) SelectObject(c echo.Context) error {
	var req struct {
		ObjectID  string `json:"objectId"`
		FromEvent bool   `json:"fromEvent"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ObjectID == "" {
		return apperror.NewValidation("objectId is required")
	}
	ctx, sid := c.Request().Context(), c.Param("sid")
	if req.FromEvent {
		return h.respond(c)(h.svc.FocusAnchor(ctx, sid, req.ObjectID))
	}
	return h.respond(c)(h.svc.SelectObject(ctx, sid, req.ObjectID))
}

// ClearObject closes the object panel.
// DELETE /api/v1/viewer/sessions/:sid/object
func (h *Handler) ClearObject(c echo.Context) error {
	return h.respond(c)(h.svc.ClearObject(c.Request().Context(), c.Param("sid")))
}

// SelectEvent selects an event.
// POST /api/v1/viewer/sessions/:sid/event
func (h *Handler) SelectEvent(c echo.Context) error {
	var req struct {
		EventID string `json:"eventId"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.EventID == "" {
		return apperror.NewValidation("eventId is required")
	}
	return h.respond(c)(h.svc.SelectEvent(c.Request().Context(), c.Param("sid"), req.EventID))
}

// ClearEvent closes the event panel.
// DELETE /api/v1/viewer/sessions/:sid/event
func (h *Handler) ClearEvent(c echo.Context) error {
	return h.respond(c)(h.svc.ClearEvent(c.Request().Context(), c.Param("sid")))
}

// SetStyle switches the base map.
// POST /api/v1/viewer/sessions/:sid/style
func (h *Handler) SetStyle(c echo.Context) error {
	var req struct {
		Style string `json:"style"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.SetMapStyle(c.Request().Context(), c.Param("sid"), req.Style))
}

// SetRelated opens or closes the related-events disclosure.
// POST /api/v1/viewer/sessions/:sid/related
func (h *Handler) SetRelated(c echo.Context) error {
	var req struct {
		Show bool `json:"show"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.SetShowRelatedEvents(c.Request().Context(), c.Param("sid"), req.Show))
}

// respond writes the view of a completed transition.
func (h *Handler) respond(c echo.Context) func(*View, error) error {
	return func(v *View, err error) error {
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, v)
	}
}
