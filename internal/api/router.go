package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/valuelens/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// requestTimeout bounds page, API and chart requests. The suggestion socket is
// long-lived and is mounted outside it.
const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all dependencies already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (10 seconds) to request/response routes.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the page, API v1, chart and websocket routes.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Ops ──────────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── Websocket (no timeout) ───────────────────
	router.GET("/ws/suggest", middleware.RateLimiter(30, time.Minute), handler.SuggestSocket)

	// ─── Request/response routes ──────────────────
	timed := router.Group("/", withTimeout(requestTimeout))
	{
		pages := timed.Group("/", middleware.RateLimiter(60, time.Minute))
		pages.GET("/", handler.Index)
		pages.GET("/chart/fcf", handler.FCFChart)

		v1 := timed.Group("/api/v1")
		v1.GET("/valuation", middleware.RateLimiter(60, time.Minute), handler.GetValuation)
		v1.GET("/search", middleware.RateLimiter(600, time.Minute), handler.Search)
	}

	return router
}

func withTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
