package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"golang.org/x/net/html"

	"github.com/mkarpov/rolefinder/internal/model"
)

const bingEndpoint = "https://www.bing.com/search"

// Bing scrapes the Bing results page as a second keyless source that is
// structurally independent of DuckDuckGo.
type Bing struct {
	fetcher    *Fetcher
	maxResults int
	endpoint   string
}

// NewBing creates the Bing adapter.
func NewBing(fetcher *Fetcher, maxResults int) *Bing {
	if maxResults <= 0 {
		maxResults = 6
	}
	return &Bing{fetcher: fetcher, maxResults: maxResults, endpoint: bingEndpoint}
}

// Name implements Provider.
func (b *Bing) Name() string { return "bing" }

// Search implements Provider.
func (b *Bing) Search(ctx context.Context, query string) ([]model.RawSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", b.maxResults))

	body, err := b.fetcher.Get(ctx, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("bing: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bing: parse page: %w", err)
	}

	var results []model.RawSearchResult
	for _, li := range findAll(doc, func(n *html.Node) bool { return isElement(n, "li") && hasClass(n, "b_algo") }) {
		h2 := findFirst(li, func(n *html.Node) bool { return isElement(n, "h2") })
		if h2 == nil {
			continue
		}
		anchor := findFirst(h2, func(n *html.Node) bool { return isElement(n, "a") })
		if anchor == nil {
			continue
		}
		href := attr(anchor, "href")
		if href == "" {
			continue
		}

		snippet := ""
		if p := findFirst(li, func(n *html.Node) bool { return isElement(n, "p") }); p != nil {
			snippet = nodeText(p)
		}

		results = append(results, model.RawSearchResult{
			Provider: b.Name(),
			Title:    nodeText(anchor),
			URL:      href,
			Snippet:  snippet,
		})
		if len(results) >= b.maxResults {
			break
		}
	}
	return results, nil
}
