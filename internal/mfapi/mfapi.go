// Package mfapi provides a client for the MFAPI.in mutual fund NAV service
// with a file-based response cache. The cache keeps repeated portfolio
// valuations from hammering the API: NAVs only change once per day.
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

const (
	defaultBaseURL  = "https://api.mfapi.in"
	defaultCacheTTL = 24 * time.Hour

	// navDateLayout is MFAPI's DD-MM-YYYY date format.
	navDateLayout = "02-01-2006"

	// batchConcurrency bounds parallel scheme fetches during a batch NAV
	// refresh.
	batchConcurrency = 5
)

// Client fetches mutual fund scheme data from MFAPI.in.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *diskCache
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates an MFAPI client caching responses under cacheDir with
// the given TTL (defaultCacheTTL when ttl is zero).
func NewClient(cacheDir string, ttl time.Duration, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache, err := newDiskCache(cacheDir, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create NAV cache: %w", err)
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetScheme fetches a scheme's metadata and full NAV history, serving from
// the disk cache when fresh.
func (c *Client) GetScheme(ctx context.Context, schemeCode string) (SchemeResponse, error) {
	raw, err := c.get(ctx, "/mf/"+schemeCode, true)
	if err != nil {
		return SchemeResponse{}, err
	}

	var response SchemeResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return SchemeResponse{}, fmt.Errorf("failed to parse scheme %s response: %w", schemeCode, err)
	}
	return response, nil
}

// LatestNAV returns the most recent NAV for a scheme.
// Returns apperrors.ErrNAVUnavailable when the scheme has no NAV data or the
// values cannot be parsed.
func (c *Client) LatestNAV(ctx context.Context, schemeCode string) (model.NAV, error) {
	scheme, err := c.GetScheme(ctx, schemeCode)
	if err != nil {
		return model.NAV{}, err
	}

	if len(scheme.Data) == 0 {
		return model.NAV{}, fmt.Errorf("%w: scheme %s has no NAV data", apperrors.ErrNAVUnavailable, schemeCode)
	}

	latest := scheme.Data[0]
	value, err := strconv.ParseFloat(latest.NAV, 64)
	if err != nil {
		return model.NAV{}, fmt.Errorf("%w: scheme %s nav %q: %v", apperrors.ErrNAVUnavailable, schemeCode, latest.NAV, err)
	}

	date, err := time.Parse(navDateLayout, latest.Date)
	if err != nil {
		return model.NAV{}, fmt.Errorf("%w: scheme %s date %q: %v", apperrors.ErrNAVUnavailable, schemeCode, latest.Date, err)
	}

	return model.NAV{Date: date, Value: value}, nil
}

// LatestNAVs fetches the latest NAV for every given scheme concurrently,
// bounded by batchConcurrency. Schemes whose NAV is unavailable are logged
// and omitted from the result rather than failing the whole batch; only
// context cancellation aborts it.
func (c *Client) LatestNAVs(ctx context.Context, schemeCodes []string) (map[string]model.NAV, error) {
	navs := make(map[string]model.NAV, len(schemeCodes))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for _, code := range schemeCodes {
		code := code
		g.Go(func() error {
			nav, err := c.LatestNAV(ctx, code)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Warn().Str("scheme_code", code).Err(err).Msg("nav fetch failed")
				return nil
			}

			mu.Lock()
			navs[code] = nav
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return navs, nil
}

// SearchSchemes returns all schemes whose name contains the query,
// case-insensitive, from the full scheme listing.
func (c *Client) SearchSchemes(ctx context.Context, query string) ([]SchemeSummary, error) {
	raw, err := c.get(ctx, "/mf", true)
	if err != nil {
		return nil, err
	}

	var all []SchemeSummary
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("failed to parse scheme listing: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []SchemeSummary
	for _, scheme := range all {
		if strings.Contains(strings.ToLower(scheme.SchemeName), needle) {
			matches = append(matches, scheme)
		}
	}
	return matches, nil
}

// ClearCache drops every cached response, forcing fresh fetches.
func (c *Client) ClearCache() error {
	return c.cache.clear()
}

// get fetches an endpoint, consulting and populating the disk cache.
func (c *Client) get(ctx context.Context, endpoint string, useCache bool) ([]byte, error) {
	if useCache {
		if raw, ok := c.cache.get(endpoint); ok {
			c.logger.Debug().Str("endpoint", endpoint).Msg("nav cache hit")
			return raw, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mf-portfolio-tracker/1.0")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Msg("fetching from mfapi")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mfapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mfapi returned status %d for %s", resp.StatusCode, endpoint)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read mfapi response: %w", err)
	}

	if useCache {
		if err := c.cache.put(endpoint, raw); err != nil {
			c.logger.Warn().Str("endpoint", endpoint).Err(err).Msg("nav cache write failed")
		}
	}
	return raw, nil
}
