package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, SourceEmbedded, cfg.Catalog.Source)
	assert.True(t, cfg.Catalog.Strict)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Viewer.SessionTTL)
	assert.True(t, cfg.Viewer.FollowEvents)
	assert.Equal(t, "satellite", cfg.Viewer.DefaultStyle)
	assert.Equal(t, "year", cfg.Viewer.DefaultUnit)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("CATALOG_PATH", "/data/maps.yaml")
	t.Setenv("CATALOG_STRICT", "false")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("VIEWER_SESSION_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/data/maps.yaml", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Strict)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Viewer.SessionTTL)
	assert.Equal(t, []string{"http://localhost:8080", "https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown source", map[string]string{"CATALOG_SOURCE": "s3"}},
		{"file without path", map[string]string{"CATALOG_SOURCE": "file"}},
		{"bad port", map[string]string{"PORT": "70000"}},
		{"unparsable duration", map[string]string{"VIEWER_SESSION_TTL": "soon"}},
		{"zero rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p@ss", Name: "atlas"}
	dsn := d.DSN()
	assert.Contains(t, dsn, "tcp(db:3306)")
	assert.Contains(t, dsn, "/atlas")
	assert.Contains(t, dsn, "parseTime=true")

	d.URL = "root:root@tcp(localhost:3307)/other"
	assert.Equal(t, "root:root@tcp(localhost:3307)/other", d.DSN())
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
