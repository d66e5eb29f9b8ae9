// Package extract turns raw search results into structured person
// candidates using an ordered list of pattern heuristics.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mkarpov/rolefinder/internal/model"
)

// namePattern matches two to four capitalized tokens, the usual shape
// of a Latin-script person name in result text.
var namePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})\b`)

// delimPattern matches "Name – Title ..." / "Name | Title ..." /
// "Name, Title ..." / "Name at Company" layouts. The second group stops
// at the next delimiter but keeps hyphens so titles like "Co-founder"
// survive.
var delimPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})\s*(?:[–—|]|\s-\s|,|\bat\b)\s*([^–—|,]+)`)

// matchResult is the structured output of one matcher rule.
type matchResult struct {
	FullName string
	Title    string // empty when the rule found no usable title
}

// matcher is one pure pattern rule. Rules are tried in priority order
// and extraction stops at the first success.
type matcher struct {
	name string
	fn   func(text string, aliases []string) (matchResult, bool)
}

// Extractor extracts person candidates from raw results. It is a pure
// function of its inputs; the trusted-domain table is fixed at
// construction.
type Extractor struct {
	trusted  map[string]model.SourceType
	matchers []matcher
}

// NewExtractor creates an extractor using the given trusted-domain
// table (nil means the built-in defaults).
func NewExtractor(trusted map[string]model.SourceType) *Extractor {
	if trusted == nil {
		trusted = model.DefaultTrustedDomains()
	}
	e := &Extractor{trusted: trusted}
	e.matchers = []matcher{
		{name: "delimiter", fn: matchDelimited},
		{name: "title-keyword", fn: matchNearKeyword},
	}
	return e
}

// Extract attempts to pull a person candidate out of one raw result.
// The title text is tried before the snippet since titles are denser
// and more reliable. A result that yields nothing returns (nil, false);
// that is an expected miss, not an error.
func (e *Extractor) Extract(result model.RawSearchResult, company string, aliases []string) (*model.PersonCandidate, bool) {
	texts := []string{result.Title, result.Snippet}

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, m := range e.matchers {
			res, ok := m.fn(text, aliases)
			if !ok || !validName(res.FullName) {
				continue
			}

			title := strings.TrimSpace(res.Title)
			if title == "" {
				title = model.TitleUnavailable
			}

			first, last := splitName(res.FullName)
			evidence := result.Snippet
			if evidence == "" {
				evidence = result.Title
			}

			return &model.PersonCandidate{
				FirstName:       first,
				LastName:        last,
				FullName:        res.FullName,
				CurrentTitle:    title,
				Company:         company,
				SourceURL:       result.URL,
				SourceType:      ClassifySource(result.URL, e.trusted),
				SearchProvider:  result.Provider,
				EvidenceSnippet: evidence,
				Heuristic:       m.name,
				SourceText:      result.Title + " " + result.Snippet,
				SupportingSources: []model.SupportingSource{
					{Provider: result.Provider, URL: result.URL},
				},
			}, true
		}
	}

	return nil, false
}

// matchDelimited handles "Name – Title – Company" style layouts.
func matchDelimited(text string, aliases []string) (matchResult, bool) {
	m := delimPattern.FindStringSubmatch(text)
	if m == nil {
		return matchResult{}, false
	}

	fullName := strings.TrimSpace(m[1])
	segment := strings.TrimSpace(m[2])

	// The segment after the delimiter is only a title if it reads like
	// one of the designation aliases; otherwise it is probably the
	// company or arbitrary prose.
	title := ""
	if a := aliasIn(segment, aliases); a != "" {
		title = segment
	} else if a := aliasIn(text, aliases); a != "" {
		title = a
	}

	return matchResult{FullName: fullName, Title: title}, true
}

// matchNearKeyword falls back to the first capitalized multi-token
// sequence in text that also mentions a known title keyword.
func matchNearKeyword(text string, aliases []string) (matchResult, bool) {
	hit := aliasIn(text, aliases)
	if hit == "" {
		return matchResult{}, false
	}

	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return matchResult{}, false
	}

	return matchResult{FullName: strings.TrimSpace(m[1]), Title: hit}, true
}

// aliasIn returns the first alias present in text as a case-insensitive
// substring, or "".
func aliasIn(text string, aliases []string) string {
	lower := strings.ToLower(text)
	for _, a := range aliases {
		if a != "" && strings.Contains(lower, strings.ToLower(a)) {
			return a
		}
	}
	return ""
}

// validName requires at least two whitespace-separated tokens, each
// starting with an uppercase letter and containing no digits.
func validName(name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return false
	}
	for _, tok := range tokens {
		runes := []rune(tok)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// splitName splits a full name into first and last parts.
func splitName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
