package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyxmakerx/atlas/internal/config"
)

func TestPingWithBackoff_EventuallySucceeds(t *testing.T) {
	calls := 0
	ping := func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}
	require.NoError(t, pingWithBackoff(context.Background(), ping, 5, time.Millisecond))
	assert.Equal(t, 3, calls)
}

func TestPingWithBackoff_GivesUp(t *testing.T) {
	calls := 0
	ping := func(context.Context) error {
		calls++
		return errors.New("connection refused")
	}
	err := pingWithBackoff(context.Background(), ping, 3, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestPingWithBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ping := func(context.Context) error { return errors.New("connection refused") }

	err := pingWithBackoff(ctx, ping, 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()
	assert.NoError(t, rdb.Ping(context.Background()).Err())
}

func TestNewRedis_NotConfigured(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{})
	assert.Error(t, err)

	_, err = NewRedis(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
