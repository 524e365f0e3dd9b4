package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the valuation backend and the optional search cache.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	BACKEND_BASE_URL=http://127.0.0.1:8000
//	BACKEND_TIMEOUT=30s
//	SUGGEST_MIN_CHARS=2
//	REDIS_ADDR=localhost:6379
//	SEARCH_CACHE_TTL=5m
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Backend BackendConfig // Remote valuation API
	Suggest SuggestConfig // Type-ahead search behaviour
	Redis   RedisConfig   // Search result cache (optional)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// BackendConfig describes how to reach the valuation backend.
//
// Fields:
//   - BaseURL: scheme + host (+ optional path prefix) of the backend, e.g. "http://127.0.0.1:8000".
//   - Timeout: per-request timeout; zero disables it.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SuggestConfig controls when a search request is issued.
type SuggestConfig struct {
	MinChars int // Minimum typed characters before searching
}

// RedisConfig defines the optional search cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() will terminate
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("BACKEND_BASE_URL", "http://127.0.0.1:8000")
	viper.SetDefault("BACKEND_TIMEOUT", "30s")

	viper.SetDefault("SUGGEST_MIN_CHARS", 2)

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("SEARCH_CACHE_TTL", "5m")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/"),
			Timeout: viper.GetDuration("BACKEND_TIMEOUT"),
		},
		Suggest: SuggestConfig{
			MinChars: viper.GetInt("SUGGEST_MIN_CHARS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			CacheTTL: viper.GetDuration("SEARCH_CACHE_TTL"),
		},
	}

	validateConfig()
}

// problems lists every missing or malformed field of cfg.
func problems(cfg Config) []string {
	var out []string

	if cfg.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if cfg.Backend.BaseURL == "" {
		out = append(out, "BACKEND_BASE_URL")
	} else if err := CheckBaseURL(cfg.Backend.BaseURL); err != nil {
		out = append(out, fmt.Sprintf("BACKEND_BASE_URL (%v)", err))
	}
	if cfg.Backend.Timeout < 0 {
		out = append(out, "BACKEND_TIMEOUT")
	}
	if cfg.Suggest.MinChars < 1 {
		out = append(out, "SUGGEST_MIN_CHARS")
	}
	return out
}

// validateConfig ensures required variables are present and well formed and
// terminates the application otherwise.
func validateConfig() {
	if missing := problems(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}

// CheckBaseURL reports whether raw is a single, well-formed http(s) base URL.
//
// A doubled scheme such as "http://https://host" parses as host "https:" and is
// rejected here rather than producing requests against a bogus host.
func CheckBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" || strings.HasSuffix(u.Host, ":") {
		return fmt.Errorf("malformed host %q", u.Host)
	}
	if strings.Contains(strings.TrimPrefix(raw, u.Scheme+"://"), "://") {
		return fmt.Errorf("embedded scheme in %q", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("query or fragment not allowed")
	}
	return nil
}
