package cache

import (
	"context"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Store is a byte cache with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore keeps entries in Redis under a fixed key prefix.
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

// NewRedisStore wraps pool; keys are stored as prefix + key.
func NewRedisStore(pool *redis.Pool, prefix string) *RedisStore {
	return &RedisStore{pool: pool, prefix: prefix}
}

// Get returns the cached value; ok is false on a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, false, err
	}
	defer conn.Close()

	b, err := redis.Bytes(conn.Do("GET", s.prefix+key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores value with the given expiry. A non-positive ttl stores nothing.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	secs := int(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	_, err = conn.Do("SET", s.prefix+key, value, "EX", secs)
	return err
}

// Ping checks that Redis answers.
func (s *RedisStore) Ping(ctx context.Context) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("PING")
	return err
}
