package callgraph

import "testing"

func TestTopoSortAcyclic(t *testing.T) {
	g := New()
	g.AddEdge("main", "helper")
	g.AddEdge("helper", "leaf")

	order, ok := g.TopoSort()
	if !ok {
		t.Fatalf("expected acyclic graph to sort")
	}
	pos := make(map[string]int)
	for i, n := range order {
		pos[n] = i
	}
	if pos["leaf"] > pos["helper"] || pos["helper"] > pos["main"] {
		t.Errorf("expected leaves-first order, got %v", order)
	}
}

func TestTopoSortDetectsCycle(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	_, ok := g.TopoSort()
	if ok {
		t.Errorf("expected cyclic graph to fail topo sort")
	}
}

func TestSCCsFindsMutualRecursionPair(t *testing.T) {
	g := New()
	g.AddEdge("isEven", "isOdd")
	g.AddEdge("isOdd", "isEven")
	g.AddNode("isolated")

	sccs := g.SCCs()
	var found bool
	for _, c := range sccs {
		if len(c) == 2 && g.IsCyclicSCC(c) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a 2-node cyclic SCC among %v", sccs)
	}
	for _, c := range sccs {
		if len(c) == 1 && c[0] == "isolated" && g.IsCyclicSCC(c) {
			t.Errorf("isolated node with no self-loop should not be cyclic")
		}
	}
}

func TestSelfLoopIsCyclic(t *testing.T) {
	g := New()
	g.AddEdge("factorial", "factorial")
	sccs := g.SCCs()
	for _, c := range sccs {
		if len(c) == 1 && c[0] == "factorial" {
			if !g.IsCyclicSCC(c) {
				t.Errorf("self-loop should be reported cyclic")
			}
			return
		}
	}
	t.Fatalf("expected factorial in SCCs, got %v", sccs)
}

func TestLeavesAndEntryPoints(t *testing.T) {
	g := New()
	g.AddEdge("main", "helper")
	g.AddEdge("helper", "leaf")

	leaves := g.Leaves()
	if len(leaves) != 1 || leaves[0] != "leaf" {
		t.Errorf("Leaves() = %v, want [leaf]", leaves)
	}
	entries := g.EntryPoints()
	if len(entries) != 1 || entries[0] != "main" {
		t.Errorf("EntryPoints() = %v, want [main]", entries)
	}
}

func TestResultCache(t *testing.T) {
	c := NewResultCache()
	if _, ok := c.Get("foo"); ok {
		t.Errorf("expected empty cache miss")
	}
	c.Put("foo", 42)
	v, ok := c.Get("foo")
	if !ok || v.(int) != 42 {
		t.Errorf("Get(foo) = %v, %v; want 42, true", v, ok)
	}
	c.Invalidate("foo")
	if _, ok := c.Get("foo"); ok {
		t.Errorf("expected invalidated entry to miss")
	}
}
