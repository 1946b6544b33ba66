// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

// Catalog source constants.
const (
	// SourceEmbedded serves the dataset compiled into the binary.
	SourceEmbedded = "embedded"
	// SourceFile reads a JSON or YAML library file from CatalogConfig.Path.
	SourceFile = "file"
	// SourceMariaDB reads catalogs from the MariaDB catalog tables.
	SourceMariaDB = "mariadb"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string `env:"ENV" envDefault:"development"`

	// Port is the HTTP listen port (default: 8080).
	Port int `env:"PORT" envDefault:"8080"`

	// BaseURL is the public-facing URL used for CORS and links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	// CORSOrigins lists extra origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	Catalog   CatalogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Viewer    ViewerConfig
	RateLimit RateLimitConfig
}

// CatalogConfig selects where map catalogs are loaded from.
type CatalogConfig struct {
	// Source is one of "embedded", "file" or "mariadb".
	Source string `env:"CATALOG_SOURCE" envDefault:"embedded"`

	// Path is the library file used when Source is "file".
	Path string `env:"CATALOG_PATH"`

	// Strict rejects catalogs with integrity errors instead of logging them.
	Strict bool `env:"CATALOG_STRICT" envDefault:"true"`
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so
// container orchestrators can manage each independently.
// If DATABASE_URL is set, it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string `env:"DB_HOST" envDefault:"localhost:3306"`

	User     string `env:"DB_USER" envDefault:"atlas"`
	Password string `env:"DB_PASSWORD" envDefault:"atlas"`
	Name     string `env:"DB_NAME" envDefault:"atlas"`

	// URL is a full DSN that bypasses the individual fields.
	URL string `env:"DATABASE_URL"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	// MigrationsPath is the directory holding the catalog schema migrations.
	MigrationsPath string `env:"DB_MIGRATIONS_PATH" envDefault:"db/migrations"`
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// fields using the driver's Config.FormatDSN() to safely handle special
// characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	// Empty keeps viewer sessions in process memory.
	URL string `env:"REDIS_URL"`
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

// ViewerConfig holds defaults for interactive viewer sessions.
type ViewerConfig struct {
	// SessionTTL is how long an idle viewer session is kept.
	SessionTTL time.Duration `env:"VIEWER_SESSION_TTL" envDefault:"24h"`

	// FollowEvents moves the year to an event's date and focuses its first
	// anchor object when the event is selected.
	FollowEvents bool `env:"VIEWER_FOLLOW_EVENTS" envDefault:"true"`

	// DefaultStyle is the base-map style of new sessions.
	DefaultStyle string `env:"VIEWER_DEFAULT_STYLE" envDefault:"satellite"`

	// DefaultUnit is the step unit of new sessions.
	DefaultUnit string `env:"VIEWER_DEFAULT_UNIT" envDefault:"year"`
}

// RateLimitConfig bounds API requests per client IP.
type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"120"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if values cannot be parsed or are inconsistent.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.Catalog.Source {
	case SourceEmbedded, SourceMariaDB:
	case SourceFile:
		if strings.TrimSpace(cfg.Catalog.Path) == "" {
			return nil, fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be one of embedded, file, mariadb (got %q)", cfg.Catalog.Source)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535 (got %d)", cfg.Port)
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if cfg.Viewer.SessionTTL <= 0 {
		return nil, fmt.Errorf("VIEWER_SESSION_TTL must be positive")
	}

	return &cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AllowedOrigins returns BaseURL followed by any extra CORS origins.
func (c *Config) AllowedOrigins() []string {
	origins := []string{c.BaseURL}
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
