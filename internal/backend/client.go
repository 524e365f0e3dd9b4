package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/valuelens/config"
	"github.com/guttosm/valuelens/internal/cache"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/metrics"
	"github.com/rs/zerolog"
)

// Endpoint names used in errors, logs and metrics.
const (
	EndpointFCF       = "fcf"
	EndpointValuation = "valuation"
	EndpointSearch    = "search"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the valuation backend over plain HTTP GETs.
//
// It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Store
	cacheTTL time.Duration
	timeout  *time.Duration
	log      zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. A WithTimeout option
// applies to a copy, so hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithSearchCache caches search results in store for ttl.
func WithSearchCache(store cache.Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// NewClient builds a Client for baseURL, which must be a single well-formed
// http(s) URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if err := config.CheckBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     logger.With("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// CashFlow fetches the historical free-cash-flow series for ticker.
func (c *Client) CashFlow(ctx context.Context, ticker string) (*models.CashFlowSeries, error) {
	var out models.CashFlowSeries
	if err := c.getJSON(ctx, EndpointFCF, "/fcf/"+url.PathEscape(ticker), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Valuation fetches the computed valuation for ticker.
func (c *Client) Valuation(ctx context.Context, ticker string) (*models.ValuationResult, error) {
	var out models.ValuationResult
	if err := c.getJSON(ctx, EndpointValuation, "/valuation/"+url.PathEscape(ticker), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns the backend's ticker matches for query, in backend order.
func (c *Client) Search(ctx context.Context, query string) ([]models.SuggestionItem, error) {
	key := "search/" + query
	if c.cache != nil {
		started := time.Now()
		b, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("search cache read failed")
		}
		if ok {
			var items []models.SuggestionItem
			if err := json.Unmarshal(b, &items); err == nil {
				metrics.ObserveBackend(EndpointSearch, metrics.OutcomeCacheHit, started)
				c.log.Debug().Str("key", key).Msg("search cache hit")
				return items, nil
			}
		}
	}

	var out models.SearchResponse
	if err := c.getJSON(ctx, EndpointSearch, "/search/"+url.PathEscape(query), &out); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if b, err := json.Marshal(out.Results); err == nil {
			if err := c.cache.Set(ctx, key, b, c.cacheTTL); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("search cache write failed")
			}
		}
	}
	return out.Results, nil
}

// Ping reports whether the backend answers HTTP at all; any status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return resp.Body.Close()
}

// getJSON issues GET base+path and decodes a 2xx body into out.
// Non-2xx answers become *APIError; everything else is a wrapped transport
// or decode error.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	started := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		metrics.ObserveBackend(endpoint, outcome, started)
		c.log.Debug().
			Str("endpoint", endpoint).
			Str("path", path).
			Str("outcome", outcome).
			Dur("elapsed", time.Since(started)).
			Msg("backend request")
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: read body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeAPIError
		return newAPIError(endpoint, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		outcome = metrics.OutcomeDecode
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
