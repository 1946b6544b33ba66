package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsBurstThenBlocks(t *testing.T) {
	l := NewRateLimiter(3, time.Minute)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimiter_Refills(t *testing.T) {
	l := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))

	now = now.Add(31 * time.Second)
	assert.True(t, l.Allow("ip"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(3 * time.Minute)
	l.Allow("fresh")
	l.Sweep()

	assert.NotContains(t, l.clients, "old")
	assert.Contains(t, l.clients, "fresh")
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	l := NewRateLimiter(1, time.Hour)
	e.GET("/api/v1/maps", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, l.Middleware())

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/maps", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
