// Package merge de-duplicates person candidates that refer to the same
// individual across providers and results, aggregating their evidence.
package merge

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mkarpov/rolefinder/internal/model"
	"github.com/mkarpov/rolefinder/internal/score"
)

// Merger groups candidates by normalized full name and rescores the
// surviving representative with the final corroboration count.
type Merger struct {
	scorer *score.Scorer
}

// NewMerger creates a merger that rescores through the given scorer.
func NewMerger(scorer *score.Scorer) *Merger {
	return &Merger{scorer: scorer}
}

// Merge collapses equal-key candidates into one representative each and
// returns the merged set ranked for output. The result is independent
// of input ordering: grouping happens before any count-dependent
// scoring, representatives are chosen by pre-merge confidence (ties by
// earliest seen), and supporting sources are sorted.
func (m *Merger) Merge(candidates []model.PersonCandidate, company string, aliases []string) []model.PersonCandidate {
	if len(candidates) == 0 {
		return []model.PersonCandidate{}
	}

	groups := make(map[string][]model.PersonCandidate)
	var keys []string
	for _, c := range candidates {
		key := NormalizeName(c.FullName)
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], c)
	}
	sort.Strings(keys)

	merged := make([]model.PersonCandidate, 0, len(keys))
	for _, key := range keys {
		merged = append(merged, m.mergeGroup(groups[key], company, aliases))
	}

	rank(merged)
	return merged
}

// mergeGroup collapses one same-person group into its representative.
func (m *Merger) mergeGroup(group []model.PersonCandidate, company string, aliases []string) model.PersonCandidate {
	rep := group[0]
	for _, c := range group[1:] {
		if c.Confidence > rep.Confidence ||
			(c.Confidence == rep.Confidence && c.SeenOrder < rep.SeenOrder) {
			rep = c
		}
	}

	// Absorb every member's provider+URL pair, dropping duplicates.
	seen := make(map[model.SupportingSource]bool)
	var sources []model.SupportingSource
	for _, c := range group {
		for _, s := range c.SupportingSources {
			if !seen[s] {
				seen[s] = true
				sources = append(sources, s)
			}
		}
		if c.SeenOrder < rep.SeenOrder {
			rep.SeenOrder = c.SeenOrder
		}
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Provider != sources[j].Provider {
			return sources[i].Provider < sources[j].Provider
		}
		return sources[i].URL < sources[j].URL
	})
	rep.SupportingSources = sources

	// Rescore with the now-known corroboration count.
	extra := len(rep.Providers()) - 1
	if extra < 0 {
		extra = 0
	}
	rep.Confidence, rep.Signals = m.scorer.Score(&rep, company, aliases, extra)

	return rep
}

// rank orders merged candidates deterministically: confidence
// descending, trusted sources first, earlier first-seen order, then
// lexicographic full name.
func rank(candidates []model.PersonCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.SourceType.Trusted() != b.SourceType.Trusted() {
			return a.SourceType.Trusted()
		}
		if a.SeenOrder != b.SeenOrder {
			return a.SeenOrder < b.SeenOrder
		}
		return a.FullName < b.FullName
	})
}

// accentStripper removes combining marks after NFD decomposition, so
// "José" and "Jose" produce the same merge key.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName produces the merge key for a full name: lowercased,
// trimmed, internal whitespace collapsed, accents stripped.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(accentStripper, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
