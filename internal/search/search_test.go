package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mkarpov/rolefinder/internal/model"
)

func testFetcher() *Fetcher {
	cfg := model.DefaultConfig()
	cfg.Providers.RequestsPerSec = 1000
	cfg.Providers.Burst = 100
	cfg.Providers.CacheTTL = 0
	return NewFetcher(cfg)
}

const duckduckgoPage = `<!DOCTYPE html>
<html><body>
<div class="results">
  <div class="result">
    <div class="result__body">
      <h2 class="result__title">
        <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fjanesmith&amp;rut=abc">Jane Smith – CEO – Meta | LinkedIn</a>
      </h2>
      <a class="result__snippet" href="https://www.linkedin.com/in/janesmith">Jane Smith serves as Chief Executive Officer at Meta.</a>
    </div>
  </div>
  <div class="result">
    <div class="result__body">
      <h2 class="result__title">
        <a class="result__a" href="https://example.com/about">About us</a>
      </h2>
    </div>
  </div>
  <div class="result">
    <div class="result__body">
      <h2 class="result__title"><a class="result__a">no href</a></h2>
    </div>
  </div>
</div>
</body></html>`

func TestDuckDuckGo_ParsesSERP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("Expected q parameter")
		}
		_, _ = w.Write([]byte(duckduckgoPage))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(testFetcher())
	d.endpoint = srv.URL + "/html/"

	results, err := d.Search(context.Background(), `"Meta" "CEO"`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Provider != "duckduckgo" {
		t.Errorf("Expected provider duckduckgo, got %q", first.Provider)
	}
	if first.URL != "https://www.linkedin.com/in/janesmith" {
		t.Errorf("Expected unwrapped redirect URL, got %q", first.URL)
	}
	if first.Title != "Jane Smith – CEO – Meta | LinkedIn" {
		t.Errorf("Unexpected title %q", first.Title)
	}
	if first.Snippet == "" {
		t.Error("Expected non-empty snippet")
	}
}

const bingPage = `<!DOCTYPE html>
<html><body>
<ol id="b_results">
  <li class="b_algo">
    <h2><a href="https://www.crunchbase.com/person/jane-smith">Jane Smith - CEO - Meta - Crunchbase</a></h2>
    <div class="b_caption"><p>Jane Smith is the CEO of Meta Platforms.</p></div>
  </li>
  <li class="b_algo">
    <h2><a href="https://news.example.com/story">Meta names new executive</a></h2>
    <div class="b_caption"><p>Coverage of the announcement.</p></div>
  </li>
  <li class="b_ad">
    <h2><a href="https://ads.example.com">Sponsored</a></h2>
  </li>
</ol>
</body></html>`

func TestBing_ParsesSERP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bingPage))
	}))
	defer srv.Close()

	b := NewBing(testFetcher(), 6)
	b.endpoint = srv.URL + "/search"

	results, err := b.Search(context.Background(), `"Meta" "CEO"`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 organic results (ads skipped), got %d", len(results))
	}
	if results[0].URL != "https://www.crunchbase.com/person/jane-smith" {
		t.Errorf("Unexpected first URL %q", results[0].URL)
	}
	if results[0].Snippet != "Jane Smith is the CEO of Meta Platforms." {
		t.Errorf("Unexpected snippet %q", results[0].Snippet)
	}
}

func TestBrave_ParsesAPIResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "test-key" {
			t.Errorf("Expected subscription token header, got %q", r.Header.Get("X-Subscription-Token"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"web": {"results": [
				{"title": "Jane Smith - CEO - Meta", "url": "https://www.linkedin.com/in/janesmith", "description": "Chief Executive Officer at Meta"},
				{"title": "missing url", "url": "", "description": "dropped"}
			]}
		}`))
	}))
	defer srv.Close()

	b := NewBrave(testFetcher(), "test-key", 8)
	b.endpoint = srv.URL

	results, err := b.Search(context.Background(), `"Meta" "CEO"`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Provider != "brave" {
		t.Errorf("Expected provider brave, got %q", results[0].Provider)
	}
}

func TestFetcher_TransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDuckDuckGo(testFetcher())
	d.endpoint = srv.URL

	if _, err := d.Search(context.Background(), "anything"); err == nil {
		t.Error("Expected error for non-2xx response")
	}
}

func TestFetcher_CachesResponses(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(bingPage))
	}))
	defer srv.Close()

	cfg := model.DefaultConfig()
	cfg.Providers.RequestsPerSec = 1000
	cfg.Providers.Burst = 100
	cfg.Providers.CacheTTL = time.Minute
	fetcher := NewFetcher(cfg)

	b := NewBing(fetcher, 6)
	b.endpoint = srv.URL + "/search"

	for i := 0; i < 3; i++ {
		if _, err := b.Search(context.Background(), "same query"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected 1 upstream hit with caching, got %d", got)
	}
}

func TestProviders_BraveRequiresKey(t *testing.T) {
	cfg := model.DefaultConfig()
	fetcher := NewFetcher(cfg)

	withoutKey := Providers(cfg, fetcher)
	for _, p := range withoutKey {
		if p.Name() == "brave" {
			t.Error("Brave must not be enabled without an API key")
		}
	}

	cfg.Providers.BraveAPIKey = "k"
	withKey := Providers(cfg, fetcher)
	found := false
	for _, p := range withKey {
		if p.Name() == "brave" {
			found = true
		}
	}
	if !found {
		t.Error("Expected Brave with an API key configured")
	}
}
