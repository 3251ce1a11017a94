package service

import (
	"context"
	"fmt"
	"strings"

	"weft/internal/modules/graph/domain"
	graphout "weft/internal/modules/graph/port/out"
	apperrors "weft/internal/platform/errors"
	"weft/internal/platform/slug"
)

type GraphService struct {
	pages     graphout.PageSource
	projector graphout.EdgeProjector
	query     graphout.GraphQueryStore
}

func NewGraphService(pages graphout.PageSource, projector graphout.EdgeProjector, query graphout.GraphQueryStore) *GraphService {
	return &GraphService{pages: pages, projector: projector, query: query}
}

func (s *GraphService) load(ctx context.Context) (domain.Graph, error) {
	pages, err := s.pages.ListPages(ctx)
	if err != nil {
		return domain.Graph{}, err
	}
	return domain.Build(pages), nil
}

// Build recomputes the relation graph from the vault and replaces the
// projected nodes and edges.
func (s *GraphService) Build(ctx context.Context) (domain.Graph, domain.View, error) {
	graph, err := s.load(ctx)
	if err != nil {
		return domain.Graph{}, domain.View{}, err
	}
	view := domain.BuildView(graph)
	if err := s.projector.Reset(ctx); err != nil {
		return domain.Graph{}, domain.View{}, err
	}
	for _, node := range view.Nodes {
		if err := s.projector.UpsertNode(ctx, node); err != nil {
			return domain.Graph{}, domain.View{}, err
		}
	}
	for _, edge := range view.Edges {
		if err := s.projector.UpsertEdge(ctx, edge); err != nil {
			return domain.Graph{}, domain.View{}, err
		}
	}
	return graph, view, nil
}

func (s *GraphService) View(ctx context.Context) (domain.View, error) {
	graph, err := s.load(ctx)
	if err != nil {
		return domain.View{}, err
	}
	return domain.BuildView(graph), nil
}

func (s *GraphService) Subgraph(ctx context.Context, root string, kinds []string, depth int) (domain.View, error) {
	root = normalizeSlug(root)
	if root == "" {
		return domain.View{}, fmt.Errorf("%w: root slug is required", apperrors.ErrInvalidInput)
	}
	if depth < 0 {
		return domain.View{}, fmt.Errorf("%w: depth must not be negative", apperrors.ErrInvalidInput)
	}
	filter := make([]domain.Kind, 0, len(kinds))
	for _, raw := range kinds {
		kind := domain.Kind(strings.TrimSpace(raw))
		if kind == "" {
			continue
		}
		if !kind.Valid() {
			return domain.View{}, fmt.Errorf("%w: unknown relation type %q", apperrors.ErrInvalidInput, raw)
		}
		filter = append(filter, kind)
	}
	if len(filter) == 0 {
		filter = domain.Kinds()
	}
	graph, err := s.load(ctx)
	if err != nil {
		return domain.View{}, err
	}
	view := domain.BuildView(graph)
	return domain.Subgraph(view, root, filter, depth), nil
}

func (s *GraphService) Breadcrumbs(ctx context.Context, pageSlug string) ([]domain.PageRef, error) {
	pageSlug = normalizeSlug(pageSlug)
	if pageSlug == "" {
		return nil, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	graph, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	crumbs := domain.Breadcrumbs(graph, pageSlug)
	if crumbs == nil {
		return nil, fmt.Errorf("page %q: %w", pageSlug, apperrors.ErrNotFound)
	}
	return crumbs, nil
}

func (s *GraphService) Relations(ctx context.Context, pageSlug string) (string, *domain.Relations, error) {
	pageSlug = normalizeSlug(pageSlug)
	if pageSlug == "" {
		return "", nil, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	graph, err := s.load(ctx)
	if err != nil {
		return "", nil, err
	}
	rel, ok := graph.Relations[pageSlug]
	if !ok {
		return "", nil, fmt.Errorf("page %q: %w", pageSlug, apperrors.ErrNotFound)
	}
	return pageSlug, rel, nil
}

func (s *GraphService) Hubs(ctx context.Context, limit int) ([]domain.Node, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query.Hubs(ctx, limit)
}

func (s *GraphService) Search(ctx context.Context, query string) ([]domain.Node, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Node{}, nil
	}
	return s.query.Search(ctx, query)
}

// normalizeSlug accepts either slug or site-path form.
func normalizeSlug(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") {
		return slug.FromPath(raw)
	}
	return raw
}
