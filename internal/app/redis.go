package app

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/guttosm/valuelens/config"
)

// dialer is an indirection for unit testing; defaults to redis.Dial.
var dialer = redis.Dial

// InitRedis builds a Redis connection pool for cfg.Redis.Addr and verifies it
// with a PING before returning.
//
// Returns:
//   - *redis.Pool: a pool safe for concurrent use; the caller closes it.
//   - error: if the first connection or the PING fails.
func InitRedis(cfg config.Config) (*redis.Pool, error) {
	addr := cfg.Redis.Addr
	pool := &redis.Pool{
		MaxIdle:     5,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return dialer("tcp", addr,
				redis.DialConnectTimeout(2*time.Second),
				redis.DialReadTimeout(time.Second),
				redis.DialWriteTimeout(time.Second),
			)
		},
	}

	conn := pool.Get()
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return pool, nil
}

// redisOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var redisOpener = InitRedis
