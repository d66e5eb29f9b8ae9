// Package search holds the provider adapters that turn a query string
// into raw results. Providers are independent and interchangeable; a
// failing provider never blocks the others.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mkarpov/rolefinder/internal/model"
	"github.com/mkarpov/rolefinder/internal/util"
	"github.com/mkarpov/rolefinder/internal/worker"
)

// Provider is one search backend. Search must return an empty slice for
// "no results"; only transport-level failures are errors.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.RawSearchResult, error)
}

// Fetcher is the shared outbound HTTP client for all providers: one
// place for the user agent, body limits, per-host rate limiting, the
// robots check, and the short-TTL response cache.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	robots     *util.RobotsChecker // nil disables the robots check
	cache      *responseCache      // nil disables caching
}

// NewFetcher builds a fetcher from config.
func NewFetcher(cfg *model.Config) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	var cache *responseCache
	if cfg.Providers.CacheTTL > 0 {
		cache = newResponseCache(cfg.Providers.CacheTTL)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   worker.NewLimiter(cfg.Providers.RequestsPerSec, cfg.Providers.Burst),
		robots:    robots,
		cache:     cache,
	}
}

// Get fetches rawURL with the optional extra headers, honoring the
// rate limit, robots rules, and cache.
func (f *Fetcher) Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.get(rawURL); ok {
			return body, nil
		}
	}

	if f.robots != nil && !f.robots.Allowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		f.cache.set(rawURL, body)
	}
	return body, nil
}

// Providers assembles the enabled provider set from config. Brave is
// included only when an API key is configured.
func Providers(cfg *model.Config, fetcher *Fetcher) []Provider {
	var providers []Provider
	if cfg.Providers.BraveAPIKey != "" {
		providers = append(providers, NewBrave(fetcher, cfg.Providers.BraveAPIKey, cfg.Providers.BraveResults))
	}
	if cfg.Providers.DuckDuckGo {
		providers = append(providers, NewDuckDuckGo(fetcher))
	}
	if cfg.Providers.Bing {
		providers = append(providers, NewBing(fetcher, cfg.Providers.BingResults))
	}
	return providers
}
