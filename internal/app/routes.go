package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/atlas/internal/middleware"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
	"github.com/keyxmakerx/atlas/internal/plugins/viewer"
)

// RegisterRoutes sets up all application routes. The API group is rate
// limited per client IP; the limiter's sweeper stops when ctx is cancelled.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes(ctx context.Context) {
	e := a.Echo

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.healthz)

	api := e.Group("/api/v1", middleware.RateLimit(ctx, a.Config.RateLimit.Requests, a.Config.RateLimit.Window))

	maps.RegisterRoutes(e, api, maps.NewHandler(a.Maps))
	viewer.RegisterRoutes(api, viewer.NewHandler(a.Viewer))
}

// healthz reports the catalog fingerprint and pings the optional backends.
// GET /healthz
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}
	if a.DB != nil {
		checks["mariadb"] = "ok"
		if err := a.DB.PingContext(ctx); err != nil {
			checks["mariadb"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	if a.Redis != nil {
		checks["redis"] = "ok"
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	return c.JSON(status, map[string]any{
		"status":      state,
		"fingerprint": a.Maps.Fingerprint(),
		"checks":      checks,
	})
}
