package maps

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

// newTestServer wires the maps routes on a bare Echo with an error handler
// that mirrors the application's JSON error shape.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.JSON(apperror.SafeCode(err), map[string]string{"message": apperror.SafeMessage(err)})
	}
	RegisterRoutes(e, e.Group("/api/v1"), NewHandler(newTestService(t)))
	return e
}

func get(e *echo.Echo, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListMaps(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/api/v1/maps")
	require.Equal(t, http.StatusOK, rec.Code)

	var maps []MapInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &maps))
	assert.Len(t, maps, 2)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Header().Get("X-Catalog-Fingerprint"))
}

func TestHandler_NotModified(t *testing.T) {
	e := newTestServer(t)
	etag := get(e, "/api/v1/maps").Header().Get("ETag")

	rec := get(e, "/api/v1/maps", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandler_Render(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/api/v1/maps/lower-don/render?year=1805&selected=don-2")
	require.Equal(t, http.StatusOK, rec.Code)

	var state RenderState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 1805, state.Year)
	assert.NotEmpty(t, state.Markers)
	assert.Contains(t, rec.Body.String(), `"colorResult"`)
	assert.Contains(t, rec.Body.String(), `"viewport"`)
}

func TestHandler_RenderBadYear(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/api/v1/maps/lower-don/render?year=soon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UnknownMap(t *testing.T) {
	e := newTestServer(t)
	for _, path := range []string{
		"/api/v1/maps/atlantis",
		"/api/v1/maps/atlantis/render",
		"/api/v1/maps/atlantis/events",
		"/api/v1/maps/atlantis/categories",
		"/api/v1/maps/lower-don/objects/none",
		"/api/v1/maps/lower-don/events/none",
	} {
		assert.Equal(t, http.StatusNotFound, get(e, path).Code, path)
	}
}

func TestHandler_Events(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/api/v1/maps/lower-don/events?mode=category&category=Administration")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Equal(t, []string{"ev-4", "ev-8"}, eventIDs(events))

	assert.Equal(t, http.StatusBadRequest, get(e, "/api/v1/maps/lower-don/events?mode=weird").Code)
}

func TestHandler_ObjectEvents(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/api/v1/maps/lower-don/objects/don-5/events")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Equal(t, []string{"ev-2"}, eventIDs(events))
}

func TestHandler_Icon(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/maps/lower-don/objects/don-6/icon.svg?year=1700")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "<path"))

	rec = get(e, "/maps/lower-don/objects/don-13/icon.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<image")
}

func TestHandler_Popup(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/maps/lower-don/objects/don-5/popup")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "First mention: 1571")
	assert.Contains(t, rec.Body.String(), "Razdorskaya stanitsa")
}

func TestHandler_Styles(t *testing.T) {
	e := newTestServer(t)
	rec := get(e, "/api/v1/styles")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "satellite")
}
