package main

//
//  @title           valuelens API
//  @version         1.0
//  @description     Stock valuation dashboard: intrinsic value verdict, free cash flow history and ticker type-ahead.
//  @termsOfService  https://github.com/guttosm/valuelens
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/valuelens
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        valuation
//  @tag.description Valuation dashboard and free cash flow chart
//
//  @tag.name        search
//  @tag.description Ticker type-ahead
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/valuelens/config"
	_ "github.com/guttosm/valuelens/docs" // swagger docs
	"github.com/guttosm/valuelens/internal/app"
	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/render"
	"github.com/guttosm/valuelens/internal/suggest"
	"github.com/guttosm/valuelens/internal/valuation"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Backend lookups may take up to BACKEND_TIMEOUT; pages are capped by the router.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., the Redis pool).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runLookup fetches one ticker and prints the alert, error or dashboard to out.
func runLookup(ctx context.Context, src valuation.Source, ticker string, out io.Writer, colors bool) error {
	term := &render.Terminal{Out: out, Colors: colors}
	return valuation.NewFetcher(src, render.TextInput(ticker), term).Run(ctx)
}

// runSearch lists the suggestions for query. A pick >= 0 selects that row,
// which writes its symbol back like a click in the dropdown.
func runSearch(ctx context.Context, src suggest.Searcher, query string, minChars, pick int, out io.Writer, colors bool) error {
	term := &render.Terminal{Out: out, Colors: colors}
	suggest.NewFetcher(src, term, term, minChars).OnInput(ctx, query)
	if pick < 0 {
		return nil
	}
	if pick >= len(term.Rows) {
		return fmt.Errorf("no suggestion at index %d (%d listed)", pick, len(term.Rows))
	}
	term.Rows[pick].Select()
	return nil
}

// main is the entry point of the valuelens application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the web dashboard and REST API.
//   - lookup: Prints the valuation dashboard for --ticker and exits.
//   - search: Prints ticker suggestions for --query and exits.
//
// Flags:
//   - --mode:   Execution mode ("api", "lookup" or "search"). Default: "api".
//   - --ticker: Ticker for lookup mode.
//   - --query:  Typed text for search mode.
//   - --pick:   Suggestion index to select in search mode (-1 lists only).
//   - --color:  ANSI colors in CLI output.
//   - --port:   Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, lookup or search")
	ticker := flag.String("ticker", "", "Ticker for lookup mode")
	query := flag.String("query", "", "Typed text for search mode")
	pick := flag.Int("pick", -1, "Suggestion index to select in search mode")
	colors := flag.Bool("color", os.Getenv("NO_COLOR") == "", "Colorize CLI output")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	cfg := config.AppConfig

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "lookup", "search":
		// CLI modes keep stdout for results
		logger.SetOutput(os.Stderr)

		client, err := backend.NewClient(cfg.Backend.BaseURL, backend.WithTimeout(cfg.Backend.Timeout))
		if err != nil {
			logger.L().Fatal().Err(err).Msg("backend client error")
		}

		if *mode == "lookup" {
			err = runLookup(ctx, client, *ticker, os.Stdout, *colors)
		} else {
			err = runSearch(ctx, client, *query, cfg.Suggest.MinChars, *pick, os.Stdout, *colors)
		}
		if err != nil {
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
