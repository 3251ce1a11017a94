package domain_test

import (
	"reflect"
	"testing"

	"weft/internal/modules/graph/domain"
)

func refSlugs(refs []domain.PageRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Slug)
	}
	return out
}

func TestBreadcrumbsRootFirst(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "root", Title: "Root"},
		{Slug: "mid", Title: "Mid", Declared: domain.Declared{NTPP: []string{"root"}}},
		{Slug: "leaf", Title: "Leaf", Declared: domain.Declared{NTPP: []string{"mid"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "leaf"))
	want := []string{"root", "mid", "leaf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breadcrumbs: got %v want %v", got, want)
	}
}

func TestBreadcrumbsPrefersDeepContainment(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "deep"},
		{Slug: "shallow"},
		{Slug: "page", Declared: domain.Declared{NTPP: []string{"deep"}, TPP: []string{"shallow"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "page"))
	want := []string{"deep", "page"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ntpp should win over tpp: got %v want %v", got, want)
	}
}

func TestBreadcrumbsFollowsTangentialFallback(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "outer"},
		{Slug: "page", Declared: domain.Declared{TPP: []string{"outer"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "page"))
	want := []string{"outer", "page"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tpp fallback: got %v want %v", got, want)
	}
}

func TestBreadcrumbsOnlyFollowsFirstContainer(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "first"},
		{Slug: "second"},
		{Slug: "page", Declared: domain.Declared{NTPP: []string{"first", "second"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "page"))
	want := []string{"first", "page"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("only index 0 is followed: got %v want %v", got, want)
	}
}

func TestBreadcrumbsHaltsOnCycle(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "a", Declared: domain.Declared{NTPP: []string{"b"}}},
		{Slug: "b", Declared: domain.Declared{NTPP: []string{"a"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "a"))
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cycle guard: got %v want %v", got, want)
	}
}

func TestBreadcrumbsUnknownSlug(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{{Slug: "a"}})
	if got := domain.Breadcrumbs(graph, "missing"); got != nil {
		t.Fatalf("unknown slug should yield nil, got %v", got)
	}
}

func TestBreadcrumbsStopsAtUnknownParent(t *testing.T) {
	t.Parallel()
	graph := domain.Build([]domain.Page{
		{Slug: "page", Declared: domain.Declared{NTPP: []string{"ghost"}}},
	})
	got := refSlugs(domain.Breadcrumbs(graph, "page"))
	want := []string{"page"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown parent halts the walk: got %v want %v", got, want)
	}
}
