// Package alias expands a designation string into the set of equivalent
// title phrasings used for searching and matching.
package alias

import (
	"sort"
	"strings"
)

// defaultTable maps a lowercased designation fragment to its known
// equivalent phrasings. Matching is substring-based so "Acting CEO"
// still picks up the ceo row.
var defaultTable = map[string][]string{
	"ceo":                 {"CEO", "Chief Executive Officer", "Founder & CEO", "Co-founder & CEO"},
	"cto":                 {"CTO", "Chief Technology Officer", "VP Engineering"},
	"cfo":                 {"CFO", "Chief Financial Officer"},
	"coo":                 {"COO", "Chief Operating Officer"},
	"cmo":                 {"CMO", "Chief Marketing Officer"},
	"head of engineering": {"Head of Engineering", "Director of Engineering", "VP Engineering"},
	"head of hr":          {"Head of HR", "Head of Human Resources", "HR Director"},
	"head of sales":       {"Head of Sales", "VP Sales", "Sales Director"},
}

// Expander maps designations to alias sets. It is a pure lookup with no
// state beyond its immutable table.
type Expander struct {
	table map[string][]string
}

// NewExpander creates an expander with the built-in table.
func NewExpander() *Expander {
	return &Expander{table: defaultTable}
}

// Expand returns the alias set for a designation. The trimmed original
// designation always comes first; the result is non-empty and free of
// case-insensitive duplicates.
func (e *Expander) Expand(designation string) []string {
	trimmed := strings.TrimSpace(designation)
	base := strings.ToLower(trimmed)

	keys := make([]string, 0, len(e.table))
	for key := range e.table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	aliases := []string{trimmed}
	for _, key := range keys {
		if strings.Contains(base, key) {
			aliases = append(aliases, e.table[key]...)
		}
	}

	// Title-cased fallback variant so "head of hr" still matches
	// prose like "Head Of Hr" pages.
	aliases = append(aliases, titleCase(trimmed))

	return dedupe(aliases)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// dedupe removes case-insensitive duplicates preserving first-seen order.
func dedupe(aliases []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range aliases {
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if !seen[key] {
			seen[key] = true
			out = append(out, a)
		}
	}
	return out
}
