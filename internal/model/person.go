package model

// RawSearchResult is one entry from a search provider's result page.
// It is immutable once produced and consumed exactly once by extraction.
type RawSearchResult struct {
	Provider string `json:"provider"` // Which provider surfaced it
	Title    string `json:"title"`    // Result title, free text, possibly empty
	URL      string `json:"url"`      // Result URL
	Snippet  string `json:"snippet"`  // Result snippet, free text, possibly empty
}

// SourceType categorizes where a result came from.
// Exactly one tag per result, derived from the URL host.
type SourceType string

const (
	SourceLinkedIn   SourceType = "linkedin"
	SourceWikipedia  SourceType = "wikipedia"
	SourceCrunchbase SourceType = "crunchbase"
	SourceNews       SourceType = "news"
	SourceGenericWeb SourceType = "generic_web"
)

// Trusted reports whether the source type counts as higher-reliability
// evidence for person/title claims.
func (t SourceType) Trusted() bool {
	return t != SourceGenericWeb && t != ""
}

// TitleUnavailable is the sentinel value for a candidate whose current
// title could not be recovered from the result text.
const TitleUnavailable = "unavailable"

// SupportingSource is one provider+URL pair that independently produced
// an equivalent name. The set grows only via merging.
type SupportingSource struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// PersonCandidate is a structured, scored guess at a person extracted
// from one or more search results.
type PersonCandidate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`

	CurrentTitle string `json:"current_title"` // TitleUnavailable when not recoverable
	Company      string `json:"company,omitempty"`

	SourceURL      string     `json:"source_url"`
	SourceType     SourceType `json:"source_type"`
	SearchProvider string     `json:"search_provider"`

	EvidenceSnippet string  `json:"evidence_snippet,omitempty"`
	Confidence      float64 `json:"confidence"` // Always in [0,1]

	SupportingSources []SupportingSource `json:"supporting_sources"`

	// Signals is the transparent scoring breakdown that produced
	// Confidence. Recomputed whenever the candidate is rescored.
	Signals []Signal `json:"signals,omitempty"`

	// Heuristic records which extraction rule matched (e.g. "delimiter").
	Heuristic string `json:"heuristic,omitempty"`

	// SourceText is the combined title+snippet the candidate was pulled
	// from; kept for scoring, not part of the wire format.
	SourceText string `json:"-"`

	// SeenOrder is the position of the originating raw result in the
	// deterministic collection order. Used only as a ranking tiebreak.
	SeenOrder int `json:"-"`
}

// Providers returns the distinct providers across the candidate's own
// result and all supporting sources.
func (c *PersonCandidate) Providers() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	add(c.SearchProvider)
	for _, s := range c.SupportingSources {
		add(s.Provider)
	}
	return out
}

// Signal is one additive scoring increment with its rationale.
type Signal struct {
	Type        SignalType `json:"type"`
	Description string     `json:"description"`
	Delta       float64    `json:"delta"`
}

// SignalType classifies a scoring signal.
type SignalType string

const (
	SignalBase           SignalType = "base"
	SignalTrustedDomain  SignalType = "trusted_domain"
	SignalCompanyMention SignalType = "company_mention"
	SignalAliasMention   SignalType = "alias_mention"
	SignalCorroboration  SignalType = "corroboration"
	SignalMissingTitle   SignalType = "missing_title"
)
