package app

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/atlas/internal/config"
	"github.com/keyxmakerx/atlas/internal/plugins/maps"
	"github.com/keyxmakerx/atlas/internal/plugins/viewer"
)

// CatalogRepository returns the repository for the configured catalog
// source. The MariaDB source needs an open pool.
func CatalogRepository(cfg config.CatalogConfig, db *sql.DB) (maps.CatalogRepository, error) {
	switch cfg.Source {
	case config.SourceEmbedded:
		return maps.NewEmbeddedRepository(), nil
	case config.SourceFile:
		return maps.NewFileRepository(cfg.Path), nil
	case config.SourceMariaDB:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q needs a database connection", cfg.Source)
		}
		return maps.NewMariaDBRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// NewViewerService builds the viewer session service over mapSvc. Sessions
// are kept in Redis when rdb is set and in process memory otherwise; the
// memory store is returned so the caller can sweep it.
func NewViewerService(cfg config.ViewerConfig, mapSvc maps.MapService, rdb *redis.Client) (viewer.ViewerService, *viewer.MemoryStore) {
	coord := viewer.NewCoordinator(mapSvc, viewer.CoordinatorConfig{
		FollowEvents: cfg.FollowEvents,
		DefaultStyle: cfg.DefaultStyle,
		DefaultUnit:  viewer.TimeUnit(cfg.DefaultUnit),
	})
	if rdb != nil {
		return viewer.NewViewerService(coord, viewer.NewRedisStore(rdb, cfg.SessionTTL)), nil
	}
	mem := viewer.NewMemoryStore(cfg.SessionTTL)
	return viewer.NewViewerService(coord, mem), mem
}
