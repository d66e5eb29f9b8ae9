// Package score computes candidate confidence from weighted additive
// signals, with a transparent per-signal breakdown.
package score

import (
	"fmt"
	"strings"

	"github.com/mkarpov/rolefinder/internal/model"
)

// Scorer computes confidence values. All weights are injected at
// construction so tuning lives in one place.
type Scorer struct {
	weights model.Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights model.Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the confidence for one candidate. extraProviders is
// the number of additional distinct providers (beyond the first) that
// independently produced an equivalent name; it is the only piece of
// cross-candidate state, so the result depends on nothing but the
// candidate's own text/source and that count.
func (s *Scorer) Score(c *model.PersonCandidate, company string, aliases []string, extraProviders int) (float64, []model.Signal) {
	w := s.weights
	var signals []model.Signal

	total := w.Base
	signals = append(signals, model.Signal{
		Type:        model.SignalBase,
		Description: "successfully extracted candidate",
		Delta:       w.Base,
	})

	if c.SourceType.Trusted() {
		total += w.TrustedDomain
		signals = append(signals, model.Signal{
			Type:        model.SignalTrustedDomain,
			Description: fmt.Sprintf("source classified as %s", c.SourceType),
			Delta:       w.TrustedDomain,
		})
	}

	text := strings.ToLower(c.SourceText)
	if company != "" && strings.Contains(text, strings.ToLower(company)) {
		total += w.CompanyMention
		signals = append(signals, model.Signal{
			Type:        model.SignalCompanyMention,
			Description: "company name present in result text",
			Delta:       w.CompanyMention,
		})
	}

	if a := aliasIn(text, aliases); a != "" {
		total += w.AliasMention
		signals = append(signals, model.Signal{
			Type:        model.SignalAliasMention,
			Description: fmt.Sprintf("designation alias %q present in result text", a),
			Delta:       w.AliasMention,
		})
	}

	if extraProviders > 0 {
		boost := w.Corroboration * float64(extraProviders)
		if boost > w.CorroborationCap {
			boost = w.CorroborationCap
		}
		total += boost
		signals = append(signals, model.Signal{
			Type:        model.SignalCorroboration,
			Description: fmt.Sprintf("corroborated by %d additional provider(s)", extraProviders),
			Delta:       boost,
		})
	}

	if c.CurrentTitle == model.TitleUnavailable || c.CurrentTitle == "" {
		total -= w.MissingTitlePenalty
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingTitle,
			Description: "no title to cross-check against the requested designation",
			Delta:       -w.MissingTitlePenalty,
		})
	}

	return clamp(total), signals
}

// aliasIn returns the first alias present in lowered text, or "".
func aliasIn(lowerText string, aliases []string) string {
	for _, a := range aliases {
		if a != "" && strings.Contains(lowerText, strings.ToLower(a)) {
			return a
		}
	}
	return ""
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
