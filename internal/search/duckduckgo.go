package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/mkarpov/rolefinder/internal/model"
)

const duckduckgoEndpoint = "https://duckduckgo.com/html/"

// DuckDuckGo scrapes the HTML results page at duckduckgo.com/html/,
// which stays within free public access and needs no API key.
type DuckDuckGo struct {
	fetcher  *Fetcher
	endpoint string
}

// NewDuckDuckGo creates the DuckDuckGo adapter.
func NewDuckDuckGo(fetcher *Fetcher) *DuckDuckGo {
	return &DuckDuckGo{fetcher: fetcher, endpoint: duckduckgoEndpoint}
}

// Name implements Provider.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search implements Provider.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]model.RawSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)

	body, err := d.fetcher.Get(ctx, d.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: parse page: %w", err)
	}

	var results []model.RawSearchResult
	for _, res := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "result__body") }) {
		anchor := findFirst(res, func(n *html.Node) bool { return hasClass(n, "result__a") })
		if anchor == nil {
			continue
		}
		href := resolveDuckDuckGoHref(attr(anchor, "href"))
		if href == "" {
			continue
		}

		snippet := ""
		if el := findFirst(res, func(n *html.Node) bool { return hasClass(n, "result__snippet") }); el != nil {
			snippet = nodeText(el)
		}

		results = append(results, model.RawSearchResult{
			Provider: d.Name(),
			Title:    nodeText(anchor),
			URL:      href,
			Snippet:  snippet,
		})
	}
	return results, nil
}

// resolveDuckDuckGoHref unwraps the /l/?uddg=<encoded> redirect links
// the HTML SERP uses, returning the target URL.
func resolveDuckDuckGoHref(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	if parsed.Scheme == "" {
		return ""
	}
	return href
}
