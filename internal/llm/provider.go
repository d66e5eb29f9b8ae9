// Package llm generates an optional narrative summary of a finished
// search response. Summaries are produced after scoring and can never
// change a confidence value or the ranking.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkarpov/rolefinder/internal/model"
)

// Provider is one summary backend.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, resp model.SearchResponse) (*model.LLMSummary, error)
}

// BuildPrompt renders the outcome for the model. The instructions keep
// the summary probabilistic: the pipeline produces best guesses with
// confidence scores, never certainties, and the narration must say so.
func BuildPrompt(resp model.SearchResponse) string {
	var b strings.Builder

	b.WriteString("You are summarizing the outcome of a people-search over public web results.\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Only reference the candidates and sources listed below.\n")
	b.WriteString("2. Describe confidence as probabilistic (\"the strongest candidate\", \"weak evidence\"), never as certainty.\n")
	b.WriteString("3. If no candidate was found, say so plainly.\n\n")

	fmt.Fprintf(&b, "Request: who holds %q at %q\n", resp.Designation, resp.Company)
	fmt.Fprintf(&b, "Aliases searched: %s\n", strings.Join(resp.NormalizedDesignationAliases, ", "))

	if resp.BestMatch != nil {
		fmt.Fprintf(&b, "Best match: %s (title: %s, confidence %.2f, source %s via %s)\n",
			resp.BestMatch.FullName, resp.BestMatch.CurrentTitle, resp.BestMatch.Confidence,
			resp.BestMatch.SourceURL, resp.BestMatch.SearchProvider)
	} else {
		b.WriteString("Best match: none\n")
	}

	for i, c := range resp.Candidates {
		if i >= 5 {
			fmt.Fprintf(&b, "... and %d more candidates\n", len(resp.Candidates)-5)
			break
		}
		fmt.Fprintf(&b, "- %s, confidence %.2f, %d supporting source(s)\n",
			c.FullName, c.Confidence, len(c.SupportingSources))
	}

	b.WriteString("\nWrite 2-3 sentences on who most likely holds the role and how strong the evidence is.")
	return b.String()
}
