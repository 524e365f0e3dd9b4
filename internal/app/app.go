package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/valuelens/config"
	"github.com/guttosm/valuelens/internal/api"
	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/cache"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/render"
)

// cacheKeyPrefix namespaces every key this service writes to Redis.
const cacheKeyPrefix = "valuelens/"

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to Redis using InitRedis() when REDIS_ADDR is set.
//   - Builds the backend client with timeout and optional search cache.
//   - Parses the page templates and creates the HTTP handler layer.
//   - Configures the Gin router with all routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., the Redis pool).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	opts := []backend.Option{backend.WithTimeout(cfg.Backend.Timeout)}
	checks := map[string]api.Check{}
	cleanup := func() {}

	// Optional search cache
	if cfg.Redis.Addr != "" {
		// indirection for unit testing
		pool, err := redisOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		store := cache.NewRedisStore(pool, cacheKeyPrefix)
		opts = append(opts, backend.WithSearchCache(store, cfg.Redis.CacheTTL))
		checks["cache"] = store.Ping
		cleanup = func() { _ = pool.Close() }
		logger.L().Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("search cache enabled")
	}

	client, err := backend.NewClient(cfg.Backend.BaseURL, opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	checks["backend"] = client.Ping

	html, err := render.NewHTML()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize HTTP handler layer (valuation and suggestion flows to HTTP mapping)
	handler := api.NewHandler(client, html, cfg.Suggest.MinChars)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(checks)
	healthHandler.Register(router)

	return router, cleanup, nil
}
