package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

// sessionKeyPrefix is the Redis key prefix for viewer sessions.
const sessionKeyPrefix = "viewer:"

// RedisStore keeps sessions as JSON values in Redis with a TTL, so several
// server instances can share them.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: rdb, ttl: ttl}
}

// Get loads a session.
func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := r.redis.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, errSessionNotFound()
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading viewer session from Redis: %w", err))
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("unmarshaling viewer session: %w", err))
	}
	return &s, nil
}

// Save stores a session and resets its TTL.
func (r *RedisStore) Save(ctx context.Context, s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("marshaling viewer session: %w", err))
	}
	if err := r.redis.Set(ctx, sessionKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("storing viewer session in Redis: %w", err))
	}
	return nil
}

// Delete removes a session.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting viewer session from Redis: %w", err))
	}
	return nil
}
