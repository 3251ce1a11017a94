package usecase_test

import (
	"context"
	"errors"
	"testing"

	"weft/internal/modules/graph/domain"
	graphin "weft/internal/modules/graph/port/in"
	"weft/internal/modules/graph/service"
	"weft/internal/modules/graph/usecase"
	apperrors "weft/internal/platform/errors"
)

type fakePageSource struct {
	pages []domain.Page
}

func (f *fakePageSource) ListPages(context.Context) ([]domain.Page, error) {
	return f.pages, nil
}

type fakeProjector struct {
	resets int
	nodes  int
	edges  int
}

func (f *fakeProjector) Reset(context.Context) error {
	f.resets++
	return nil
}

func (f *fakeProjector) UpsertNode(context.Context, domain.Node) error {
	f.nodes++
	return nil
}

func (f *fakeProjector) UpsertEdge(context.Context, domain.Edge) error {
	f.edges++
	return nil
}

type fakeQueryStore struct {
	hubs []domain.Node
}

func (f *fakeQueryStore) Hubs(context.Context, int) ([]domain.Node, error) {
	return f.hubs, nil
}

func (f *fakeQueryStore) Search(context.Context, string) ([]domain.Node, error) {
	return f.hubs, nil
}

func newUsecase(pages []domain.Page) (graphin.Usecase, *fakeProjector) {
	proj := &fakeProjector{}
	svc := service.NewGraphService(&fakePageSource{pages: pages}, proj, &fakeQueryStore{})
	return usecase.NewInteractor(svc), proj
}

func TestBuildProjectsEveryNodeAndEdge(t *testing.T) {
	t.Parallel()
	uc, proj := newUsecase([]domain.Page{
		{Slug: "a", Title: "A", Declared: domain.Declared{NTPP: []string{"b"}}},
		{Slug: "b", Title: "B"},
	})
	out, err := uc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if out.PageCount != 2 || out.NodeCount != 2 || out.EdgeCount != 1 {
		t.Fatalf("unexpected counts: %+v", out)
	}
	if proj.resets != 1 || proj.nodes != 2 || proj.edges != 1 {
		t.Fatalf("projector saw %d resets, %d nodes, %d edges", proj.resets, proj.nodes, proj.edges)
	}
}

func TestSubgraphRejectsUnknownRelationType(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase([]domain.Page{{Slug: "a", Title: "A"}})
	_, err := uc.Subgraph(context.Background(), graphin.SubgraphInput{Root: "a", Kinds: []string{"contains"}, Depth: 1})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRelationsReportsInferredInverse(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase([]domain.Page{
		{Slug: "a", Title: "A", Declared: domain.Declared{NTPP: []string{"b"}}},
		{Slug: "b", Title: "B"},
	})
	out, err := uc.Relations(context.Background(), "b")
	if err != nil {
		t.Fatalf("relations: %v", err)
	}
	if len(out.NTTPI) != 1 || out.NTTPI[0] != "a" {
		t.Fatalf("expected inferred nttpi [a], got %v", out.NTTPI)
	}
}

func TestRelationsAcceptsPathForm(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase([]domain.Page{{Slug: "notes/go", Title: "Go"}})
	out, err := uc.Relations(context.Background(), "/notes/go/")
	if err != nil {
		t.Fatalf("relations: %v", err)
	}
	if out.Slug != "notes/go" {
		t.Fatalf("expected slug notes/go, got %q", out.Slug)
	}
}

func TestBreadcrumbsUnknownSlugIsNotFound(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase([]domain.Page{{Slug: "a", Title: "A"}})
	_, err := uc.Breadcrumbs(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBreadcrumbPathsAreSitePaths(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase([]domain.Page{
		{Slug: "index", Title: "Home"},
		{Slug: "guides", Title: "Guides", Declared: domain.Declared{NTPP: []string{"index"}}},
	})
	crumbs, err := uc.Breadcrumbs(context.Background(), "guides")
	if err != nil {
		t.Fatalf("breadcrumbs: %v", err)
	}
	if len(crumbs) != 2 {
		t.Fatalf("expected 2 crumbs, got %d", len(crumbs))
	}
	if crumbs[0].Path != "/" || crumbs[1].Path != "/guides" {
		t.Fatalf("unexpected crumb paths: %q %q", crumbs[0].Path, crumbs[1].Path)
	}
}
