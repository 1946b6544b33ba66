// Package main is the entry point for the Atlas server. It loads
// configuration, loads the map library from the configured catalog source,
// opens the optional MariaDB and Redis connections, and starts the HTTP
// server.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/atlas/internal/app"
	"github.com/keyxmakerx/atlas/internal/config"
	"github.com/keyxmakerx/atlas/internal/database"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	setupLogging(cfg)

	slog.Info("starting Atlas",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to MariaDB (catalog source only) ---
	var db *sql.DB
	if cfg.Catalog.Source == config.SourceMariaDB {
		db, err = database.NewMariaDB(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to MariaDB", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("connected to MariaDB")

		if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			slog.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// --- Load Catalog ---
	repo, err := app.CatalogRepository(cfg.Catalog, db)
	if err != nil {
		slog.Error("failed to open catalog", slog.Any("error", err))
		os.Exit(1)
	}
	lib, _, err := maps.LoadLibrary(ctx, repo, maps.LoadOptions{Strict: cfg.Catalog.Strict})
	if err != nil {
		slog.Error("failed to load catalog",
			slog.String("source", cfg.Catalog.Source),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	mapSvc := maps.NewMapService(lib)

	// --- Connect to Redis (optional session store) ---
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		slog.Info("connected to Redis")
	}

	viewerSvc, mem := app.NewViewerService(cfg.Viewer, mapSvc, rdb)
	if mem != nil {
		go sweepSessions(ctx, mem)
	}

	// --- Create Application ---
	application := app.New(cfg, db, rdb, mapSvc, viewerSvc)
	application.RegisterRoutes(ctx)

	// --- Graceful Shutdown ---
	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")

		// Give in-flight requests 10 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		// Echo returns http.ErrServerClosed on graceful shutdown, which is expected.
		slog.Info("server stopped", slog.Any("reason", err))
	}
}

// sweepSessions drops expired in-memory viewer sessions every minute.
func sweepSessions(ctx context.Context, mem interface{ Sweep() }) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mem.Sweep()
		}
	}
}

// setupLogging configures the global slog logger. Development uses text
// format for readability; other environments use JSON for log aggregation.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
