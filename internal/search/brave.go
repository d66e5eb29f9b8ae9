package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mkarpov/rolefinder/internal/model"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave queries the Brave Web Search API. It needs a subscription
// token; without one the provider is not constructed at all.
type Brave struct {
	fetcher    *Fetcher
	apiKey     string
	maxResults int
	endpoint   string
}

// NewBrave creates the Brave adapter.
func NewBrave(fetcher *Fetcher, apiKey string, maxResults int) *Brave {
	if maxResults <= 0 {
		maxResults = 8
	}
	return &Brave{
		fetcher:    fetcher,
		apiKey:     apiKey,
		maxResults: maxResults,
		endpoint:   braveEndpoint,
	}
}

// Name implements Provider.
func (b *Brave) Name() string { return "brave" }

// braveResponse is the subset of the API answer we read.
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search implements Provider.
func (b *Brave) Search(ctx context.Context, query string) ([]model.RawSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", b.maxResults))
	params.Set("safesearch", "moderate")

	header := http.Header{}
	header.Set("X-Subscription-Token", b.apiKey)
	header.Set("Accept", "application/json")

	body, err := b.fetcher.Get(ctx, b.endpoint+"?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}

	var decoded braveResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	results := make([]model.RawSearchResult, 0, len(decoded.Web.Results))
	for _, item := range decoded.Web.Results {
		if item.URL == "" {
			continue
		}
		results = append(results, model.RawSearchResult{
			Provider: b.Name(),
			Title:    item.Title,
			URL:      item.URL,
			Snippet:  item.Description,
		})
	}
	return results, nil
}
