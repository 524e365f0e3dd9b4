package app

import (
	"errors"
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/guttosm/valuelens/config"
)

// stubConn answers PING with pingErr and every other command with nil.
type stubConn struct {
	pingErr error
}

func (c *stubConn) Close() error { return nil }
func (c *stubConn) Err() error   { return nil }
func (c *stubConn) Do(cmd string, _ ...interface{}) (interface{}, error) {
	if cmd == "PING" {
		if c.pingErr != nil {
			return nil, c.pingErr
		}
		return "PONG", nil
	}
	return nil, nil
}
func (c *stubConn) Send(string, ...interface{}) error { return nil }
func (c *stubConn) Flush() error                      { return nil }
func (c *stubConn) Receive() (interface{}, error)     { return nil, nil }

func withDialer(t *testing.T, fn func(network, address string, options ...redis.DialOption) (redis.Conn, error)) {
	t.Helper()
	old := dialer
	dialer = fn
	t.Cleanup(func() { dialer = old })
}

func TestInitRedis_DialError(t *testing.T) {
	withDialer(t, func(string, string, ...redis.DialOption) (redis.Conn, error) {
		return nil, errors.New("connection refused")
	})
	if _, err := InitRedis(config.Config{Redis: config.RedisConfig{Addr: "127.0.0.1:1"}}); err == nil {
		t.Fatalf("expected dial error from InitRedis")
	}
}

func TestInitRedis_PingError(t *testing.T) {
	withDialer(t, func(string, string, ...redis.DialOption) (redis.Conn, error) {
		return &stubConn{pingErr: errors.New("NOAUTH")}, nil
	})
	if _, err := InitRedis(config.Config{Redis: config.RedisConfig{Addr: "cache:6379"}}); err == nil {
		t.Fatalf("expected ping error from InitRedis")
	}
}

func TestInitRedis_OK(t *testing.T) {
	var gotAddr string
	withDialer(t, func(_ string, addr string, _ ...redis.DialOption) (redis.Conn, error) {
		gotAddr = addr
		return &stubConn{}, nil
	})
	pool, err := InitRedis(config.Config{Redis: config.RedisConfig{Addr: "cache:6379"}})
	if err != nil {
		t.Fatalf("InitRedis: %v", err)
	}
	defer pool.Close()
	if gotAddr != "cache:6379" {
		t.Fatalf("dialed %q", gotAddr)
	}
}
