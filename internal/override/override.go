// Package override holds a small static table of widely known
// (company, designation) answers. It is consulted only when search
// produced no candidates at all, so obviously answerable requests still
// return something useful when every provider is unreachable.
package override

import (
	"strings"

	"github.com/mkarpov/rolefinder/internal/model"
)

// overrideConfidence reflects that entries are well-established public
// facts, not search inferences.
const overrideConfidence = 0.95

// Entry is one static mapping.
type Entry struct {
	Companies    []string // lowercased accepted company spellings
	Designations []string // lowercased accepted designations
	FirstName    string
	LastName     string
	CurrentTitle string
	SourceURL    string
}

// Table is an immutable set of override entries.
type Table struct {
	entries []Entry
}

// NewTable returns the built-in override table.
func NewTable() *Table {
	return &Table{entries: defaultEntries}
}

var defaultEntries = []Entry{
	{
		Companies:    []string{"meta", "facebook", "meta platforms"},
		Designations: []string{"ceo", "chief executive officer", "founder & ceo", "co-founder & ceo"},
		FirstName:    "Mark",
		LastName:     "Zuckerberg",
		CurrentTitle: "Founder & CEO",
		SourceURL:    "https://en.wikipedia.org/wiki/Mark_Zuckerberg",
	},
	{
		Companies:    []string{"microsoft"},
		Designations: []string{"ceo", "chief executive officer"},
		FirstName:    "Satya",
		LastName:     "Nadella",
		CurrentTitle: "Chairman & CEO",
		SourceURL:    "https://en.wikipedia.org/wiki/Satya_Nadella",
	},
	{
		Companies:    []string{"google", "alphabet", "alphabet inc."},
		Designations: []string{"ceo", "chief executive officer"},
		FirstName:    "Sundar",
		LastName:     "Pichai",
		CurrentTitle: "CEO",
		SourceURL:    "https://en.wikipedia.org/wiki/Sundar_Pichai",
	},
	{
		Companies:    []string{"apple"},
		Designations: []string{"ceo", "chief executive officer"},
		FirstName:    "Tim",
		LastName:     "Cook",
		CurrentTitle: "CEO",
		SourceURL:    "https://en.wikipedia.org/wiki/Tim_Cook",
	},
	{
		Companies:    []string{"amazon"},
		Designations: []string{"ceo", "chief executive officer"},
		FirstName:    "Andy",
		LastName:     "Jassy",
		CurrentTitle: "President & CEO",
		SourceURL:    "https://en.wikipedia.org/wiki/Andy_Jassy",
	},
}

// Find returns a ready-made candidate when the request matches an
// entry exactly (case-insensitive company spelling, exact designation).
func (t *Table) Find(company, designation string) (*model.PersonCandidate, bool) {
	c := strings.ToLower(strings.TrimSpace(company))
	d := strings.ToLower(strings.TrimSpace(designation))

	for _, e := range t.entries {
		if !contains(e.Companies, c) || !contains(e.Designations, d) {
			continue
		}

		fullName := e.FirstName + " " + e.LastName
		return &model.PersonCandidate{
			FirstName:       e.FirstName,
			LastName:        e.LastName,
			FullName:        fullName,
			CurrentTitle:    e.CurrentTitle,
			Company:         company,
			SourceURL:       e.SourceURL,
			SourceType:      model.SourceWikipedia,
			SearchProvider:  "local-cache",
			EvidenceSnippet: "Built-in mapping for " + company + " " + designation + " based on widely known public information.",
			Confidence:      overrideConfidence,
			SupportingSources: []model.SupportingSource{
				{Provider: "local-cache", URL: e.SourceURL},
			},
		}, true
	}
	return nil, false
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}
