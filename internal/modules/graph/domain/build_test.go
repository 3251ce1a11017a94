package domain_test

import (
	"reflect"
	"testing"

	"weft/internal/modules/graph/domain"
)

func TestBuildInfersDirectedInverses(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "leaf", Title: "Leaf", Declared: domain.Declared{NTPP: []string{"mid"}, TPP: []string{"side"}}},
		{Slug: "mid", Title: "Mid"},
		{Slug: "side", Title: "Side"},
	})
	if !graph.Relations["mid"].NTTPI.Has("leaf") {
		t.Fatalf("mid should carry leaf in nttpi")
	}
	if !graph.Relations["side"].TPPI.Has("leaf") {
		t.Fatalf("side should carry leaf in tppi")
	}
	if graph.Relations["leaf"].NTTPI.Len() != 0 {
		t.Fatalf("leaf nttpi should stay empty")
	}
}

func TestBuildSymmetricKindsAreMutual(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Declared: domain.Declared{PO: []string{"b"}, EC: []string{"c"}, EQ: []string{"d"}, DC: []string{"b"}}},
		{Slug: "b"},
		{Slug: "c"},
		{Slug: "d", Declared: domain.Declared{EQ: []string{"a"}}},
	})
	checks := []struct {
		kind string
		one  *domain.Set
		two  *domain.Set
		a, b string
	}{
		{"po", &graph.Relations["a"].PO, &graph.Relations["b"].PO, "b", "a"},
		{"ec", &graph.Relations["a"].EC, &graph.Relations["c"].EC, "c", "a"},
		{"eq", &graph.Relations["a"].EQ, &graph.Relations["d"].EQ, "d", "a"},
		{"dc", &graph.Relations["a"].DC, &graph.Relations["b"].DC, "b", "a"},
	}
	for _, check := range checks {
		if !check.one.Has(check.a) || !check.two.Has(check.b) {
			t.Fatalf("%s should be mutual between a and %s", check.kind, check.a)
		}
	}
	// Both sides declaring the same eq pair must not duplicate entries.
	if got := graph.Relations["a"].EQ.Len(); got != 1 {
		t.Fatalf("a.eq should hold exactly one entry, got %d", got)
	}
}

func TestBuildPopulatesBodyReferences(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Body: "see [b](/b) and [b](/b) again"},
		{Slug: "b"},
	})
	if !reflect.DeepEqual(graph.Relations["a"].Refs.Slice(), []string{"b"}) {
		t.Fatalf("a.r should be [b], got %v", graph.Relations["a"].Refs.Slice())
	}
	if !graph.Relations["b"].RefdBy.Has("a") {
		t.Fatalf("b.ri should contain a")
	}
}

func TestBuildSequentialConsistency(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "one", Declared: domain.Declared{Next: "two"}},
		{Slug: "two"},
		{Slug: "three", Declared: domain.Declared{Prev: "two"}},
	})
	if got := graph.Relations["two"].Prev; got != "one" {
		t.Fatalf("two.prev: got %q want %q", got, "one")
	}
	if got := graph.Relations["two"].Next; got != "three" {
		t.Fatalf("two.next: got %q want %q", got, "three")
	}
}

func TestBuildNeverOverwritesDeclaredSequential(t *testing.T) {
	t.Parallel()
	// "two" declares its own prev; "one" pointing at it must not replace it.
	graph := domain.Build([]domain.Page{
		{Slug: "one", Declared: domain.Declared{Next: "two"}},
		{Slug: "two", Declared: domain.Declared{Prev: "zero"}},
		{Slug: "zero"},
	})
	if got := graph.Relations["two"].Prev; got != "zero" {
		t.Fatalf("declared prev must win: got %q want %q", got, "zero")
	}
	// one.next keeps its declared value either way.
	if got := graph.Relations["one"].Next; got != "two" {
		t.Fatalf("one.next: got %q want %q", got, "two")
	}
}

func TestBuildIgnoresUnknownTargets(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Declared: domain.Declared{NTPP: []string{"ghost"}, Next: "phantom"}},
	})
	// Forward state is kept as declared; no inverse ever materializes.
	if !graph.Relations["a"].NTPP.Has("ghost") {
		t.Fatalf("declared forward relation should be retained")
	}
	if graph.Has("ghost") || graph.Has("phantom") {
		t.Fatalf("unknown targets must not become pages")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	t.Parallel()
	pages := []domain.Page{
		{Slug: "a", Title: "A", Body: "[b](/b)", Declared: domain.Declared{NTPP: []string{"b"}, PO: []string{"c"}, Next: "c"}},
		{Slug: "b", Title: "B", Declared: domain.Declared{EQ: []string{"c"}}},
		{Slug: "c", Title: "C", Declared: domain.Declared{Prev: "a"}},
	}
	first := domain.Build(pages)
	second := domain.Build(pages)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two builds over the same pages should be identical")
	}
}

func TestBuildMissingBodyExtractsNothing(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{{Slug: "a"}, {Slug: "b"}})
	if got := graph.Relations["a"].Refs.Len(); got != 0 {
		t.Fatalf("empty body should yield no refs, got %d", got)
	}
}

func TestDegreeCountsAllRelationsAndPointers(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Body: "[b](/b)", Declared: domain.Declared{NTPP: []string{"b"}, PO: []string{"c"}, Next: "b"}},
		{Slug: "b"},
		{Slug: "c"},
	})
	// a: ntpp(1) + po(1) + r(1) + next(1) = 4
	if got := graph.Relations["a"].Degree(); got != 4 {
		t.Fatalf("a degree: got %d want 4", got)
	}
	// b: nttpi(1) + ri(1) + prev(1) = 3
	if got := graph.Relations["b"].Degree(); got != 3 {
		t.Fatalf("b degree: got %d want 3", got)
	}
}
