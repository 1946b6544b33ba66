// Package database opens the optional MariaDB and Redis connections. MariaDB
// backs the catalog tables; Redis shares viewer sessions between instances.
// Both are created once at startup and closed by the caller.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MariaDB driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/atlas/internal/config"
)

// pingRetries bounds the startup wait for MariaDB.
const pingRetries = 10

// NewMariaDB opens a connection pool and pings it with exponential backoff
// until the server answers, the retries run out or ctx is cancelled.
func NewMariaDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pingWithBackoff(ctx, db.PingContext, pingRetries, time.Second); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// pingWithBackoff calls ping until it succeeds, doubling the wait between
// attempts up to 30 seconds. MariaDB may still be starting when the
// container launches.
func pingWithBackoff(ctx context.Context, ping func(context.Context) error, retries int, backoff time.Duration) error {
	var pingErr error
	for attempt := 1; attempt <= retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr = ping(attemptCtx)
		cancel()
		if pingErr == nil {
			return nil
		}
		if attempt == retries {
			break
		}

		slog.Warn("mariadb not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", retries),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for mariadb: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}
	return fmt.Errorf("pinging mariadb after %d attempts: %w", retries, pingErr)
}
