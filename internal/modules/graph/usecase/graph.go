package usecase

import (
	"context"

	"weft/internal/modules/graph/domain"
	"weft/internal/modules/graph/dto"
	graphin "weft/internal/modules/graph/port/in"
	"weft/internal/modules/graph/service"
	"weft/internal/platform/slug"
)

type Interactor struct {
	svc *service.GraphService
}

func NewInteractor(svc *service.GraphService) graphin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Build(ctx context.Context) (dto.BuildOutput, error) {
	graph, view, err := i.svc.Build(ctx)
	if err != nil {
		return dto.BuildOutput{}, err
	}
	return dto.BuildOutput{
		PageCount: len(graph.Relations),
		NodeCount: len(view.Nodes),
		EdgeCount: len(view.Edges),
	}, nil
}

func (i *Interactor) View(ctx context.Context) (dto.GraphOutput, error) {
	view, err := i.svc.View(ctx)
	if err != nil {
		return dto.GraphOutput{}, err
	}
	return mapView(view), nil
}

func (i *Interactor) Subgraph(ctx context.Context, input graphin.SubgraphInput) (dto.GraphOutput, error) {
	view, err := i.svc.Subgraph(ctx, input.Root, input.Kinds, input.Depth)
	if err != nil {
		return dto.GraphOutput{}, err
	}
	return mapView(view), nil
}

func (i *Interactor) Breadcrumbs(ctx context.Context, pageSlug string) ([]dto.CrumbOutput, error) {
	crumbs, err := i.svc.Breadcrumbs(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CrumbOutput, 0, len(crumbs))
	for _, crumb := range crumbs {
		out = append(out, dto.CrumbOutput{
			Slug:  crumb.Slug,
			Path:  slug.Path(crumb.Slug),
			Title: crumb.Title,
		})
	}
	return out, nil
}

func (i *Interactor) Relations(ctx context.Context, pageSlug string) (dto.RelationsOutput, error) {
	resolved, rel, err := i.svc.Relations(ctx, pageSlug)
	if err != nil {
		return dto.RelationsOutput{}, err
	}
	return dto.RelationsOutput{
		Slug:   resolved,
		NTPP:   rel.NTPP.Slice(),
		NTTPI:  rel.NTTPI.Slice(),
		TPP:    rel.TPP.Slice(),
		TPPI:   rel.TPPI.Slice(),
		PO:     rel.PO.Slice(),
		EC:     rel.EC.Slice(),
		EQ:     rel.EQ.Slice(),
		DC:     rel.DC.Slice(),
		Next:   rel.Next,
		Prev:   rel.Prev,
		Refs:   rel.Refs.Slice(),
		RefdBy: rel.RefdBy.Slice(),
	}, nil
}

func (i *Interactor) Hubs(ctx context.Context, limit int) ([]dto.HubOutput, error) {
	nodes, err := i.svc.Hubs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HubOutput, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, dto.HubOutput{
			Slug:        node.ID,
			Title:       node.Title,
			Connections: node.Connections,
		})
	}
	return out, nil
}

func (i *Interactor) Search(ctx context.Context, query string) ([]dto.NodeOutput, error) {
	nodes, err := i.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapNodes(nodes), nil
}

func (i *Interactor) Kinds() []string {
	kinds := domain.Kinds()
	out := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, string(kind))
	}
	return out
}

func mapView(view domain.View) dto.GraphOutput {
	out := dto.GraphOutput{
		Nodes: mapNodes(view.Nodes),
		Edges: make([]dto.EdgeOutput, 0, len(view.Edges)),
	}
	for _, edge := range view.Edges {
		out.Edges = append(out.Edges, dto.EdgeOutput{
			Source: edge.Source,
			Target: edge.Target,
			Kind:   string(edge.Kind),
		})
	}
	return out
}

func mapNodes(nodes []domain.Node) []dto.NodeOutput {
	out := make([]dto.NodeOutput, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, dto.NodeOutput{
			ID:          node.ID,
			Title:       node.Title,
			Connections: node.Connections,
		})
	}
	return out
}
