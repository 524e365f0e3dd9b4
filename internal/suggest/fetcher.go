// Package suggest implements the type-ahead ticker search.
//
// Every keystroke takes a new token. Only the response to the most recent
// token may touch the view; older responses are dropped when they arrive,
// which keeps a slow early search from overwriting a newer list.
package suggest

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/metrics"
	"github.com/rs/zerolog"
)

// DefaultMinChars is the shortest query that triggers a search.
const DefaultMinChars = 2

// Input is the text box a selected symbol is written back to.
type Input interface {
	SetValue(v string)
}

// Row is one selectable suggestion.
type Row struct {
	Item   models.SuggestionItem
	Select func()
}

// View is the suggestion dropdown.
type View interface {
	Show(rows []Row)
	Hide()
}

// Searcher runs a backend search; *backend.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SuggestionItem, error)
}

// Fetcher owns one dropdown. It is safe to call OnInput concurrently.
type Fetcher struct {
	src      Searcher
	input    Input
	view     View
	minChars int
	log      zerolog.Logger

	mu     sync.Mutex
	latest uint64
}

// NewFetcher wires a Fetcher to its ports. minChars < 1 uses DefaultMinChars.
func NewFetcher(src Searcher, input Input, view View, minChars int) *Fetcher {
	if minChars < 1 {
		minChars = DefaultMinChars
	}
	return &Fetcher{src: src, input: input, view: view, minChars: minChars, log: logger.With("suggest")}
}

// OnInput handles the current text of the input after a keystroke.
// It blocks until the search settles; callers wanting fire-and-forget run it
// in a goroutine.
func (f *Fetcher) OnInput(ctx context.Context, text string) {
	f.mu.Lock()
	f.latest++
	token := f.latest
	if utf8.RuneCountInString(text) < f.minChars {
		f.view.Hide()
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	items, err := f.src.Search(ctx, text)

	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.latest {
		metrics.StaleSuggestions.Inc()
		f.log.Debug().Str("query", text).Uint64("token", token).Uint64("latest", f.latest).Msg("stale search response dropped")
		return
	}
	if err != nil {
		f.log.Warn().Err(err).Str("query", text).Msg("search failed")
		f.view.Hide()
		return
	}
	if len(items) == 0 {
		f.view.Hide()
		return
	}

	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Item: it, Select: f.selectFunc(it.Symbol)}
	}
	f.view.Show(rows)
}

// selectFunc writes symbol into the input, hides the list and invalidates any
// search still in flight so it cannot reopen the list.
func (f *Fetcher) selectFunc(symbol string) func() {
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.latest++
		f.input.SetValue(symbol)
		f.view.Hide()
	}
}

// Dismiss hides the list and invalidates in-flight searches, e.g. on blur.
func (f *Fetcher) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest++
	f.view.Hide()
}
