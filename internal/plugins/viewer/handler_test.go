package viewer

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

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.JSON(apperror.SafeCode(err), map[string]string{"message": apperror.SafeMessage(err)})
	}
	svc, _ := newTestViewerService(t, true)
	RegisterRoutes(e.Group("/api/v1"), NewHandler(svc))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/viewer/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, "no_map_selected", v["status"])
	return v["id"].(string)
}

func TestHandler_SessionLifecycle(t *testing.T) {
	e := newTestServer(t)
	sid := createSession(t, e)
	base := "/api/v1/viewer/sessions/" + sid

	rec := do(e, http.MethodPost, base+"/map", `{"mapId":"short"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, "map_selected", v["status"])
	assert.Equal(t, float64(1600), v["year"])

	rec = do(e, http.MethodPost, base+"/step", `{"direction":"forward","unit":"decade"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1605), decodeView(t, rec)["year"])

	rec = do(e, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Validation(t *testing.T) {
	e := newTestServer(t)
	base := "/api/v1/viewer/sessions/" + createSession(t, e)

	tests := []struct {
		name, path, body string
	}{
		{"missing year", "/year", `{}`},
		{"bad direction", "/step", `{"direction":"sideways"}`},
		{"bad unit", "/step", `{"direction":"forward","unit":"eon"}`},
		{"bad set unit", "/unit", `{"unit":"fortnight"}`},
		{"bad filter mode", "/filter", `{"mode":"regex"}`},
		{"missing object", "/object", `{}`},
		{"missing event", "/event", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, base+tt.path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}

	rec := do(e, http.MethodPost, base+"/year", `{"year":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, base+"/style", `{"style":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, base+"/object", `{"objectId":"a"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "no map selected")
}

func TestHandler_EventAndObjectFlow(t *testing.T) {
	e := newTestServer(t)
	base := "/api/v1/viewer/sessions/" + createSession(t, e)

	require.Equal(t, http.StatusOK, do(e, http.MethodPost, base+"/map", `{"mapId":"long"}`).Code)

	rec := do(e, http.MethodPost, base+"/event", `{"eventId":"e1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	assert.Equal(t, float64(1650), v["year"])
	assert.Equal(t, "a", v["selectedObjectId"])
	assert.NotNil(t, v["selectedEvent"])

	rec = do(e, http.MethodPost, base+"/object", `{"objectId":"b","fromEvent":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Equal(t, "b", v["selectedObjectId"])
	assert.Nil(t, v["selectedEvent"])

	rec = do(e, http.MethodPost, base+"/related", `{"show":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Equal(t, true, v["showRelatedEvents"])
	assert.Len(t, v["relatedEvents"], 1)

	rec = do(e, http.MethodDelete, base+"/object", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeView(t, rec)["selectedObjectId"])

	rec = do(e, http.MethodPost, base+"/filter", `{"mode":"category","category":"War"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeView(t, rec)["events"], 2)

	rec = do(e, http.MethodDelete, base+"/event", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
