package score

import (
	"testing"

	"github.com/mkarpov/rolefinder/internal/model"
)

func testCandidate() *model.PersonCandidate {
	return &model.PersonCandidate{
		FullName:       "Jane Smith",
		CurrentTitle:   "CEO",
		SourceURL:      "https://www.linkedin.com/in/janesmith",
		SourceType:     model.SourceLinkedIn,
		SearchProvider: "duckduckgo",
		SourceText:     "Jane Smith – CEO – Meta Jane Smith serves as CEO of Meta.",
	}
}

func TestScore_FullSignalStack(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	conf, signals := s.Score(testCandidate(), "Meta", []string{"CEO"}, 0)

	// base 0.1 + trusted 0.35 + company 0.2 + alias 0.2 = 0.85
	if conf < 0.75 {
		t.Errorf("Expected confidence >= 0.75 for trusted fully-matching candidate, got %f", conf)
	}
	if conf > 1.0 || conf < 0.0 {
		t.Errorf("Confidence out of range: %f", conf)
	}
	if len(signals) < 4 {
		t.Errorf("Expected at least 4 signals, got %d", len(signals))
	}
}

func TestScore_TrustedBeatsUntrusted(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	trusted := testCandidate()
	untrusted := testCandidate()
	untrusted.SourceURL = "https://randomblog.example.com/post"
	untrusted.SourceType = model.SourceGenericWeb

	trustedConf, _ := s.Score(trusted, "Meta", []string{"CEO"}, 0)
	untrustedConf, _ := s.Score(untrusted, "Meta", []string{"CEO"}, 0)

	if trustedConf <= untrustedConf {
		t.Errorf("Trusted source must score strictly higher: %f vs %f", trustedConf, untrustedConf)
	}
}

func TestScore_CorroborationMonotonic(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	c := testCandidate()
	c.SourceType = model.SourceGenericWeb

	alone, _ := s.Score(c, "Meta", []string{"CEO"}, 0)
	corroborated, _ := s.Score(c, "Meta", []string{"CEO"}, 1)

	if corroborated <= alone {
		t.Errorf("Corroborated candidate must score strictly higher: %f vs %f", corroborated, alone)
	}
}

func TestScore_CorroborationCapped(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	c := testCandidate()
	c.SourceType = model.SourceGenericWeb

	atCap, _ := s.Score(c, "Meta", []string{"CEO"}, 3)
	overCap, _ := s.Score(c, "Meta", []string{"CEO"}, 10)

	if atCap != overCap {
		t.Errorf("Corroboration boost must cap: %f vs %f", atCap, overCap)
	}
}

func TestScore_MissingTitlePenalty(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	titled := testCandidate()
	untitled := testCandidate()
	untitled.CurrentTitle = model.TitleUnavailable

	titledConf, _ := s.Score(titled, "Meta", []string{"CEO"}, 0)
	untitledConf, _ := s.Score(untitled, "Meta", []string{"CEO"}, 0)

	if untitledConf >= titledConf {
		t.Errorf("Missing title must lower confidence: %f vs %f", untitledConf, titledConf)
	}
}

func TestScore_ClampedToUnitInterval(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	c := testCandidate()
	conf, _ := s.Score(c, "Meta", []string{"CEO"}, 10)
	if conf > 1.0 {
		t.Errorf("Confidence must clamp at 1.0, got %f", conf)
	}

	bare := &model.PersonCandidate{
		FullName:     "John Doe",
		CurrentTitle: model.TitleUnavailable,
		SourceType:   model.SourceGenericWeb,
		SourceText:   "unrelated text",
	}
	conf, _ = s.Score(bare, "Meta", []string{"CEO"}, 0)
	if conf < 0.0 {
		t.Errorf("Confidence must clamp at 0.0, got %f", conf)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Scoring)

	c := testCandidate()
	first, _ := s.Score(c, "Meta", []string{"CEO"}, 2)
	for i := 0; i < 20; i++ {
		again, _ := s.Score(c, "Meta", []string{"CEO"}, 2)
		if again != first {
			t.Fatalf("Score must be deterministic: %f vs %f", again, first)
		}
	}
}
