package domain_test

import (
	"testing"

	"weft/internal/modules/graph/domain"
)

func countEdges(view domain.View, kind domain.Kind) int {
	total := 0
	for _, edge := range view.Edges {
		if edge.Kind == kind {
			total++
		}
	}
	return total
}

func TestBuildViewDeduplicatesSymmetricEdges(t *testing.T) {
	t.Parallel()
	// Both sides declare the pair independently; the view emits it once.
	graph := domain.Build([]domain.Page{
		{Slug: "a", Title: "A", Declared: domain.Declared{EQ: []string{"b"}}},
		{Slug: "b", Title: "B", Declared: domain.Declared{EQ: []string{"a"}}},
	})
	view := domain.BuildView(graph)
	if got := countEdges(view, domain.KindEQ); got != 1 {
		t.Fatalf("eq edges: got %d want 1", got)
	}
}

func TestBuildViewCollapsesNextPrevPairs(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "one", Declared: domain.Declared{Next: "two"}},
		{Slug: "two", Declared: domain.Declared{Prev: "one"}},
	})
	view := domain.BuildView(graph)
	if got := countEdges(view, domain.KindNext); got != 1 {
		t.Fatalf("next edges: got %d want 1", got)
	}
	edge := view.Edges[0]
	if edge.Source != "one" || edge.Target != "two" {
		t.Fatalf("next edge orientation: got %s->%s", edge.Source, edge.Target)
	}
}

func TestBuildViewDirectedEdgesPerDirection(t *testing.T) {
	t.Parallel()
	// Mutual body links are two distinct directed r edges.
	graph := domain.Build([]domain.Page{
		{Slug: "a", Body: "[b](/b)"},
		{Slug: "b", Body: "[a](/a)"},
	})
	view := domain.BuildView(graph)
	if got := countEdges(view, domain.KindRef); got != 2 {
		t.Fatalf("r edges: got %d want 2", got)
	}
}

func TestBuildViewSkipsUnknownTargets(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Declared: domain.Declared{NTPP: []string{"ghost"}}},
	})
	view := domain.BuildView(graph)
	if len(view.Edges) != 0 {
		t.Fatalf("edges to unknown pages must not be emitted, got %v", view.Edges)
	}
}

func TestBuildViewNodeConnections(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "hub", Title: "Hub", Body: "[a](/a)", Declared: domain.Declared{NTPP: []string{"a"}, Next: "a"}},
		{Slug: "a", Title: "A"},
	})
	view := domain.BuildView(graph)
	for _, node := range view.Nodes {
		if node.ID != "hub" {
			continue
		}
		// ntpp + r + next = 3
		if node.Connections != 3 {
			t.Fatalf("hub connections: got %d want 3", node.Connections)
		}
		return
	}
	t.Fatalf("hub node missing from view")
}

func chainFixture(t *testing.T) domain.View {
	t.Helper()
	graph := domain.Build([]domain.Page{
		{Slug: "r", Title: "R", Declared: domain.Declared{EQ: []string{"a"}}},
		{Slug: "a", Title: "A", Declared: domain.Declared{EQ: []string{"b"}}},
		{Slug: "b", Title: "B"},
	})
	return domain.BuildView(graph)
}

func TestSubgraphDepthBound(t *testing.T) {
	t.Parallel()
	view := chainFixture(t)
	sub := domain.Subgraph(view, "r", []domain.Kind{domain.KindEQ}, 1)
	if len(sub.Nodes) != 2 {
		t.Fatalf("depth 1 nodes: got %d want 2", len(sub.Nodes))
	}
	for _, node := range sub.Nodes {
		if node.ID == "b" {
			t.Fatalf("b is two hops away and must be excluded")
		}
	}
	if len(sub.Edges) != 1 {
		t.Fatalf("depth 1 edges: got %d want 1", len(sub.Edges))
	}
}

func TestSubgraphDepthZeroIsRootOnly(t *testing.T) {
	t.Parallel()
	view := chainFixture(t)
	sub := domain.Subgraph(view, "r", []domain.Kind{domain.KindEQ}, 0)
	if len(sub.Nodes) != 1 || sub.Nodes[0].ID != "r" {
		t.Fatalf("depth 0 should return only the root, got %v", sub.Nodes)
	}
	if len(sub.Edges) != 0 {
		t.Fatalf("depth 0 should return no edges, got %v", sub.Edges)
	}
}

func TestSubgraphFiltersKinds(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "r", Declared: domain.Declared{EQ: []string{"a"}, PO: []string{"b"}}},
		{Slug: "a"},
		{Slug: "b"},
	})
	view := domain.BuildView(graph)
	sub := domain.Subgraph(view, "r", []domain.Kind{domain.KindEQ}, 3)
	for _, node := range sub.Nodes {
		if node.ID == "b" {
			t.Fatalf("b is only reachable over a filtered-out kind")
		}
	}
	if len(sub.Edges) != 1 || sub.Edges[0].Kind != domain.KindEQ {
		t.Fatalf("only eq edges should remain, got %v", sub.Edges)
	}
}

func TestSubgraphTreatsEdgesAsUndirected(t *testing.T) {
	t.Parallel()
	// leaf -> mid is a directed ntpp edge; BFS from mid must still reach leaf.
	graph := domain.Build([]domain.Page{
		{Slug: "mid"},
		{Slug: "leaf", Declared: domain.Declared{NTPP: []string{"mid"}}},
	})
	view := domain.BuildView(graph)
	sub := domain.Subgraph(view, "mid", []domain.Kind{domain.KindNTPP}, 1)
	if len(sub.Nodes) != 2 {
		t.Fatalf("directed edges are undirected for reachability, got nodes %v", sub.Nodes)
	}
}

func TestSubgraphUnknownRoot(t *testing.T) {
	t.Parallel()
	view := chainFixture(t)
	sub := domain.Subgraph(view, "missing", []domain.Kind{domain.KindEQ}, 2)
	if len(sub.Nodes) != 0 || len(sub.Edges) != 0 {
		t.Fatalf("unknown root should yield an empty view")
	}
}

func TestSubgraphTerminatesOnCycles(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Declared: domain.Declared{EC: []string{"b"}}},
		{Slug: "b", Declared: domain.Declared{EC: []string{"c"}}},
		{Slug: "c", Declared: domain.Declared{EC: []string{"a"}}},
	})
	view := domain.BuildView(graph)
	sub := domain.Subgraph(view, "a", []domain.Kind{domain.KindEC}, 10)
	if len(sub.Nodes) != 3 || len(sub.Edges) != 3 {
		t.Fatalf("cyclic input: got %d nodes %d edges", len(sub.Nodes), len(sub.Edges))
	}
}
