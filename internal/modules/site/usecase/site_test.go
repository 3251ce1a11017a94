package usecase_test

import (
	"context"
	"testing"
	"time"

	"weft/internal/modules/site/domain"
	"weft/internal/modules/site/service"
	"weft/internal/modules/site/usecase"
	"weft/internal/platform/tx"
)

type fakeCatalog struct {
	pages []domain.PageInfo
}

func (f *fakeCatalog) ListPages(context.Context) ([]domain.PageInfo, error) {
	return f.pages, nil
}

type fakeGraphSource struct {
	rebuilds int
	doc      domain.GraphDoc
}

func (f *fakeGraphSource) Rebuild(context.Context) error {
	f.rebuilds++
	return nil
}

func (f *fakeGraphSource) View(context.Context) (domain.GraphDoc, error) {
	return f.doc, nil
}

type fakeWriter struct {
	written []string
}

func (f *fakeWriter) Write(_ context.Context, name string, _ any) (string, error) {
	f.written = append(f.written, name)
	return "/out/" + name, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedID struct{ value string }

func (g fixedID) New() string { return g.value }

func TestExportWritesAllArtifacts(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{pages: []domain.PageInfo{
		{Path: "/", Title: "Home"},
		{Path: "/go", Title: "Go"},
	}}
	graph := &fakeGraphSource{doc: domain.GraphDoc{
		Nodes: []domain.GraphNode{{ID: "index", Title: "Home"}, {ID: "go", Title: "Go"}},
		Edges: []domain.GraphEdge{{Source: "index", Target: "go", Kind: "r"}},
	}}
	writer := &fakeWriter{}
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := service.NewSiteService(catalog, graph, writer, tx.NoopManager{}, fixedClock{at: at}, fixedID{value: "build-1"})
	uc := usecase.NewInteractor(svc)

	out, err := uc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if graph.rebuilds != 1 {
		t.Fatalf("expected one rebuild, got %d", graph.rebuilds)
	}
	want := []string{"index.json", "backlinks.json", "graph.json", "manifest.json"}
	if len(writer.written) != len(want) {
		t.Fatalf("expected %d artifacts, got %v", len(want), writer.written)
	}
	for i, name := range want {
		if writer.written[i] != name {
			t.Fatalf("artifact %d: expected %s, got %s", i, name, writer.written[i])
		}
	}
	if out.BuildID != "build-1" || !out.GeneratedAt.Equal(at) {
		t.Fatalf("unexpected manifest identity: %+v", out)
	}
	if out.PageCount != 2 || out.EdgeCount != 1 {
		t.Fatalf("unexpected manifest counts: %+v", out)
	}
}

func TestBacklinksAcceptsSlugForm(t *testing.T) {
	t.Parallel()
	graph := &fakeGraphSource{doc: domain.GraphDoc{
		Nodes: []domain.GraphNode{{ID: "index", Title: "Home"}, {ID: "go", Title: "Go"}},
		Edges: []domain.GraphEdge{{Source: "index", Target: "go", Kind: "r"}},
	}}
	svc := service.NewSiteService(&fakeCatalog{}, graph, &fakeWriter{}, tx.NoopManager{}, fixedClock{}, fixedID{})
	uc := usecase.NewInteractor(svc)

	links, err := uc.Backlinks(context.Background(), "go")
	if err != nil {
		t.Fatalf("backlinks: %v", err)
	}
	if len(links) != 1 || links[0].Path != "/" || links[0].Title != "Home" {
		t.Fatalf("unexpected backlinks: %+v", links)
	}
}

func TestBacklinksUnlinkedPageIsEmpty(t *testing.T) {
	t.Parallel()
	graph := &fakeGraphSource{doc: domain.GraphDoc{
		Nodes: []domain.GraphNode{{ID: "solo", Title: "Solo"}},
	}}
	svc := service.NewSiteService(&fakeCatalog{}, graph, &fakeWriter{}, tx.NoopManager{}, fixedClock{}, fixedID{})
	uc := usecase.NewInteractor(svc)

	links, err := uc.Backlinks(context.Background(), "solo")
	if err != nil {
		t.Fatalf("backlinks: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no backlinks, got %+v", links)
	}
}
