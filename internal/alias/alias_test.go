package alias

import (
	"strings"
	"testing"
)

func TestExpand_OriginalFirst(t *testing.T) {
	e := NewExpander()

	aliases := e.Expand("  CEO  ")
	if len(aliases) == 0 {
		t.Fatal("Expected non-empty alias set")
	}
	if aliases[0] != "CEO" {
		t.Errorf("Expected trimmed original first, got %q", aliases[0])
	}
}

func TestExpand_KnownDesignation(t *testing.T) {
	e := NewExpander()

	aliases := e.Expand("CEO")

	found := false
	for _, a := range aliases {
		if a == "Chief Executive Officer" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'Chief Executive Officer' in aliases, got %v", aliases)
	}
}

func TestExpand_SubstringMatch(t *testing.T) {
	e := NewExpander()

	aliases := e.Expand("Head of HR operations")

	found := false
	for _, a := range aliases {
		if a == "HR Director" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'HR Director' via substring match, got %v", aliases)
	}
}

func TestExpand_NoDuplicates(t *testing.T) {
	e := NewExpander()

	aliases := e.Expand("CEO")

	seen := make(map[string]bool)
	for _, a := range aliases {
		key := strings.ToLower(a)
		if seen[key] {
			t.Errorf("Duplicate alias %q", a)
		}
		seen[key] = true
	}
}

func TestExpand_UnknownDesignation(t *testing.T) {
	e := NewExpander()

	aliases := e.Expand("principal basket weaver")
	if len(aliases) == 0 {
		t.Fatal("Expected non-empty alias set for unknown designation")
	}
	if aliases[0] != "principal basket weaver" {
		t.Errorf("Expected original designation first, got %q", aliases[0])
	}

	// Title-cased fallback should be present
	found := false
	for _, a := range aliases {
		if a == "Principal Basket Weaver" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected title-cased variant, got %v", aliases)
	}
}

func TestExpand_Deterministic(t *testing.T) {
	e := NewExpander()

	first := e.Expand("CEO and CTO")
	for i := 0; i < 10; i++ {
		again := e.Expand("CEO and CTO")
		if len(again) != len(first) {
			t.Fatalf("Alias count changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Alias order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
