package domain_test

import (
	"testing"

	"weft/internal/modules/site/domain"
)

func TestDeriveBacklinksInvertsReferenceEdges(t *testing.T) {
	t.Parallel()
	doc := domain.GraphDoc{
		Nodes: []domain.GraphNode{
			{ID: "index", Title: "Home"},
			{ID: "go", Title: "Go"},
			{ID: "rust", Title: "Rust"},
		},
		Edges: []domain.GraphEdge{
			{Source: "index", Target: "go", Kind: "r"},
			{Source: "rust", Target: "go", Kind: "r"},
			{Source: "go", Target: "rust", Kind: "ec"},
		},
	}
	backlinks := domain.DeriveBacklinks(doc)
	got := backlinks["/go"]
	if len(got) != 2 {
		t.Fatalf("expected 2 backlinks for /go, got %+v", got)
	}
	if got[0].Path != "/" || got[0].Title != "Home" {
		t.Fatalf("unexpected first backlink: %+v", got[0])
	}
	if got[1].Path != "/rust" || got[1].Title != "Rust" {
		t.Fatalf("unexpected second backlink: %+v", got[1])
	}
	if _, ok := backlinks["/rust"]; ok {
		t.Fatal("ec edge must not produce a backlink")
	}
}

func TestDeriveBacklinksEmptyGraph(t *testing.T) {
	t.Parallel()
	backlinks := domain.DeriveBacklinks(domain.GraphDoc{})
	if len(backlinks) != 0 {
		t.Fatalf("expected empty map, got %+v", backlinks)
	}
}
