// Package valuation drives a single ticker lookup: read the ticker, fetch the
// cash-flow history and the valuation together, then hand the joined result
// (or one error message) to a view.
package valuation

import (
	"context"
	"errors"
	"strings"

	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// User-facing messages.
const (
	MsgEmptyTicker   = "Please enter a stock ticker."
	MsgConnectFailed = "Failed to connect to the valuation server."
)

// ErrEmptyTicker is returned by Run when the input holds no ticker.
var ErrEmptyTicker = errors.New("ticker is required")

// Input is the ticker text box.
type Input interface {
	Value() string
}

// View receives the outcome of a lookup.
type View interface {
	SetLoading(visible bool)
	Alert(msg string)
	ShowError(msg string)
	ShowDashboard(d Dashboard)
}

// Source is the backend pair a lookup needs; *backend.Client satisfies it.
type Source interface {
	CashFlow(ctx context.Context, ticker string) (*models.CashFlowSeries, error)
	Valuation(ctx context.Context, ticker string) (*models.ValuationResult, error)
}

// Fetcher runs lookups for one input/view pair.
type Fetcher struct {
	src   Source
	input Input
	view  View
	log   zerolog.Logger
}

// NewFetcher wires a Fetcher to its ports.
func NewFetcher(src Source, input Input, view View) *Fetcher {
	return &Fetcher{src: src, input: input, view: view, log: logger.With("valuation")}
}

// Run performs one lookup. The view is always left in a final state (alert,
// error or dashboard); the returned error mirrors what was shown.
//
// Both backend calls are awaited even when one fails early, so nothing is
// rendered until the pair has settled.
func (f *Fetcher) Run(ctx context.Context) error {
	ticker := strings.TrimSpace(f.input.Value())
	if ticker == "" {
		f.view.Alert(MsgEmptyTicker)
		return ErrEmptyTicker
	}

	f.view.SetLoading(true)

	var (
		series         *models.CashFlowSeries
		val            *models.ValuationResult
		fcfErr, valErr error
		g              errgroup.Group
	)
	g.Go(func() error {
		series, fcfErr = f.src.CashFlow(ctx, ticker)
		return fcfErr
	})
	g.Go(func() error {
		val, valErr = f.src.Valuation(ctx, ticker)
		return valErr
	})
	waitErr := g.Wait()

	f.view.SetLoading(false)

	if waitErr != nil {
		// Report the cash-flow failure first so the message does not depend on timing.
		err := fcfErr
		if err == nil {
			err = valErr
		}
		f.log.Warn().Err(err).Str("ticker", ticker).Msg("lookup failed")
		f.view.ShowError(Message(err))
		return err
	}

	d := NewDashboard(ticker, *series, *val)
	f.log.Info().
		Str("ticker", d.Ticker).
		Str("verdict", d.Verdict.Label).
		Int("fcf_points", len(d.CashFlow)).
		Msg("lookup complete")
	f.view.ShowDashboard(d)
	return nil
}

// Message turns a lookup error into the text shown to the user: the backend's
// own detail for application errors, a generic connection message otherwise.
func Message(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Detail
	}
	return MsgConnectFailed
}
