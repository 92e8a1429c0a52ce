package stdlibtable

import "testing"

func TestLookupKnownEntry(t *testing.T) {
	tbl := New()
	e := tbl.Lookup("Array", "sort", 0)
	if e.Provenance != ProvenanceDocumented {
		t.Errorf("Provenance = %v, want Documented", e.Provenance)
	}
	if got := e.Complexity.Render(); got != "O(n log n)" {
		t.Errorf("Complexity.Render() = %v, want O(n log n)", got)
	}
}

func TestLookupMissingFallsBackToHeuristicLinear(t *testing.T) {
	tbl := New()
	e := tbl.Lookup("Widget", "frobnicate", 3)
	if e.Provenance != ProvenanceHeuristic {
		t.Errorf("Provenance = %v, want Heuristic", e.Provenance)
	}
	if got := e.Complexity.Render(); got != "O(n)" {
		t.Errorf("Complexity.Render() = %v, want O(n)", got)
	}
}

func TestHasDistinguishesFallbackFromRealEntry(t *testing.T) {
	tbl := New()
	if !tbl.Has("Map", "get", 1) {
		t.Error("expected Map.get/1 to have a real entry")
	}
	if tbl.Has("Widget", "frobnicate", 3) {
		t.Error("expected no real entry for an unknown call shape")
	}
}

func TestAmortizedFlagOnArrayPush(t *testing.T) {
	tbl := New()
	e := tbl.Lookup("Array", "push", 1)
	if !e.Flags[FlagAmortized] {
		t.Error("expected Array.push/1 to be flagged Amortized")
	}
}
