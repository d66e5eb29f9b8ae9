package extract

import (
	"testing"

	"github.com/mkarpov/rolefinder/internal/model"
)

func TestExtract_DelimitedTitle(t *testing.T) {
	e := NewExtractor(nil)

	result := model.RawSearchResult{
		Provider: "duckduckgo",
		Title:    "Jane Smith – CEO – Meta",
		URL:      "https://www.linkedin.com/in/janesmith",
		Snippet:  "Jane Smith serves as CEO of Meta.",
	}

	cand, ok := e.Extract(result, "Meta", []string{"CEO", "Chief Executive Officer"})
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}

	if cand.FullName != "Jane Smith" {
		t.Errorf("Expected full name 'Jane Smith', got %q", cand.FullName)
	}
	if cand.FirstName != "Jane" || cand.LastName != "Smith" {
		t.Errorf("Expected split Jane/Smith, got %q/%q", cand.FirstName, cand.LastName)
	}
	if cand.CurrentTitle != "CEO" {
		t.Errorf("Expected title 'CEO', got %q", cand.CurrentTitle)
	}
	if cand.SourceType != model.SourceLinkedIn {
		t.Errorf("Expected linkedin source type, got %q", cand.SourceType)
	}
	if cand.Heuristic != "delimiter" {
		t.Errorf("Expected delimiter heuristic, got %q", cand.Heuristic)
	}
	if len(cand.SupportingSources) != 1 {
		t.Errorf("Expected one supporting source, got %d", len(cand.SupportingSources))
	}
}

func TestExtract_PipeDelimiter(t *testing.T) {
	e := NewExtractor(nil)

	result := model.RawSearchResult{
		Provider: "bing",
		Title:    "John Doe | Chief Executive Officer at Acme",
		URL:      "https://example.com/about",
	}

	cand, ok := e.Extract(result, "Acme", []string{"CEO", "Chief Executive Officer"})
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	if cand.FullName != "John Doe" {
		t.Errorf("Expected 'John Doe', got %q", cand.FullName)
	}
	if cand.CurrentTitle == model.TitleUnavailable {
		t.Error("Expected a recovered title, got unavailable")
	}
}

func TestExtract_TitleBeforeSnippet(t *testing.T) {
	e := NewExtractor(nil)

	result := model.RawSearchResult{
		Provider: "duckduckgo",
		Title:    "Alice Wong – CFO – Acme",
		URL:      "https://example.com",
		Snippet:  "Bob Brown – CFO – Acme is an older record.",
	}

	cand, ok := e.Extract(result, "Acme", []string{"CFO"})
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	if cand.FullName != "Alice Wong" {
		t.Errorf("Title text should win over snippet, got %q", cand.FullName)
	}
}

func TestExtract_KeywordFallback(t *testing.T) {
	e := NewExtractor(nil)

	result := model.RawSearchResult{
		Provider: "bing",
		Title:    "Acme leadership",
		URL:      "https://example.com/team",
		Snippet:  "The CEO role at Acme is held by Maria Garcia Lopez according to filings.",
	}

	cand, ok := e.Extract(result, "Acme", []string{"CEO"})
	if !ok {
		t.Fatal("Expected extraction to succeed via keyword rule")
	}
	if cand.Heuristic != "title-keyword" {
		t.Errorf("Expected title-keyword heuristic, got %q", cand.Heuristic)
	}
}

func TestExtract_NoMatchReturnsNothing(t *testing.T) {
	e := NewExtractor(nil)

	cases := []model.RawSearchResult{
		{Provider: "bing", Title: "", Snippet: "", URL: "https://example.com"},
		{Provider: "bing", Title: "lowercase only text without names", URL: "https://example.com"},
		{Provider: "bing", Title: "ACME 2024 annual report pdf", URL: "https://example.com"},
	}

	for _, r := range cases {
		if cand, ok := e.Extract(r, "Acme", []string{"CEO"}); ok {
			t.Errorf("Expected no candidate for %q, got %q", r.Title, cand.FullName)
		}
	}
}

func TestExtract_RejectsSingleToken(t *testing.T) {
	e := NewExtractor(nil)

	result := model.RawSearchResult{
		Provider: "bing",
		Title:    "Prince – CEO – Acme",
		URL:      "https://example.com",
	}

	// "Prince" alone is not a valid two-token name; the delimiter rule
	// needs two capitalized tokens so nothing is extracted from a
	// single-token lead.
	if cand, ok := e.Extract(result, "Acme", []string{"CEO"}); ok && cand.FullName == "Prince" {
		t.Errorf("Expected single-token name rejection, got %q", cand.FullName)
	}
}

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Jane Smith", true},
		{"Maria Garcia Lopez", true},
		{"Jane", false},
		{"jane smith", false},
		{"Jane Sm1th", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := validName(tc.name); got != tc.want {
			t.Errorf("validName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
