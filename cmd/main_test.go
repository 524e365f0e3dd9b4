package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/shopspring/decimal"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

type fakeSource struct {
	valErr error
	items  []models.SuggestionItem
}

func (f fakeSource) CashFlow(_ context.Context, ticker string) (*models.CashFlowSeries, error) {
	return &models.CashFlowSeries{Ticker: ticker, FreeCashFlow: []models.CashFlowPoint{
		{Period: "2023", Amount: decimal.NewFromInt(1000000)},
	}}, nil
}

func (f fakeSource) Valuation(_ context.Context, ticker string) (*models.ValuationResult, error) {
	if f.valErr != nil {
		return nil, f.valErr
	}
	return &models.ValuationResult{Ticker: ticker, CurrentPrice: decimal.NewFromInt(250), IntrinsicValue: decimal.NewFromInt(200)}, nil
}

func (f fakeSource) Search(context.Context, string) ([]models.SuggestionItem, error) {
	return f.items, nil
}

func TestRunLookup(t *testing.T) {
	var buf bytes.Buffer
	if err := runLookup(context.Background(), fakeSource{}, " MSFT ", &buf, false); err != nil {
		t.Fatalf("runLookup: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "OVERVALUED (SELL)") || !strings.Contains(out, "2023: 1,000,000") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	buf.Reset()
	apiErr := &backend.APIError{Endpoint: backend.EndpointValuation, StatusCode: 404, Detail: "Ticker not found"}
	if err := runLookup(context.Background(), fakeSource{valErr: apiErr}, "ZZZZ", &buf, false); err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(buf.String(), "Error: Ticker not found") {
		t.Fatalf("error not printed: %q", buf.String())
	}

	buf.Reset()
	if err := runLookup(context.Background(), fakeSource{}, "", &buf, false); err == nil {
		t.Fatalf("expected empty ticker error")
	}
}

func TestRunSearch(t *testing.T) {
	src := fakeSource{items: []models.SuggestionItem{{Symbol: "AAPL", Name: "Apple Inc."}, {Symbol: "AAPU", Name: "Direxion"}}}

	var buf bytes.Buffer
	if err := runSearch(context.Background(), src, "AA", 2, 1, &buf, false); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "selected AAPU\n") {
		t.Fatalf("picked symbol not printed: %q", buf.String())
	}

	buf.Reset()
	if err := runSearch(context.Background(), src, "A", 2, 0, &buf, false); err == nil {
		t.Fatalf("expected pick error on short query")
	}
	if buf.Len() != 0 {
		t.Fatalf("short query must list nothing: %q", buf.String())
	}
}
