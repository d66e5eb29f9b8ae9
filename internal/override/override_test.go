package override

import "testing"

func TestFind_KnownCase(t *testing.T) {
	table := NewTable()

	cand, ok := table.Find("Meta", "CEO")
	if !ok {
		t.Fatal("Expected override hit for Meta CEO")
	}
	if cand.FullName != "Mark Zuckerberg" {
		t.Errorf("Expected Mark Zuckerberg, got %q", cand.FullName)
	}
	if cand.Confidence < 0.9 {
		t.Errorf("Expected high confidence, got %f", cand.Confidence)
	}
	if cand.SearchProvider != "local-cache" {
		t.Errorf("Expected local-cache provider, got %q", cand.SearchProvider)
	}
}

func TestFind_CaseInsensitive(t *testing.T) {
	table := NewTable()

	if _, ok := table.Find("  microsoft ", "Chief Executive Officer"); !ok {
		t.Error("Expected case-insensitive trimmed match")
	}
}

func TestFind_Miss(t *testing.T) {
	table := NewTable()

	if _, ok := table.Find("Meta", "Head of HR"); ok {
		t.Error("Expected no override for unlisted designation")
	}
	if _, ok := table.Find("Unknown Startup", "CEO"); ok {
		t.Error("Expected no override for unknown company")
	}
}
