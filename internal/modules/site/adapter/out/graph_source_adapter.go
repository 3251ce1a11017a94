package out

import (
	"context"

	graphin "weft/internal/modules/graph/port/in"
	"weft/internal/modules/site/domain"
	siteout "weft/internal/modules/site/port/out"
)

type GraphSourceAdapter struct {
	graph graphin.Usecase
}

func NewGraphSourceAdapter(graph graphin.Usecase) siteout.GraphSource {
	return &GraphSourceAdapter{graph: graph}
}

func (a *GraphSourceAdapter) Rebuild(ctx context.Context) error {
	_, err := a.graph.Build(ctx)
	return err
}

func (a *GraphSourceAdapter) View(ctx context.Context) (domain.GraphDoc, error) {
	view, err := a.graph.View(ctx)
	if err != nil {
		return domain.GraphDoc{}, err
	}
	doc := domain.GraphDoc{
		Nodes: make([]domain.GraphNode, 0, len(view.Nodes)),
		Edges: make([]domain.GraphEdge, 0, len(view.Edges)),
	}
	for _, node := range view.Nodes {
		doc.Nodes = append(doc.Nodes, domain.GraphNode{
			ID:          node.ID,
			Title:       node.Title,
			Connections: node.Connections,
		})
	}
	for _, edge := range view.Edges {
		doc.Edges = append(doc.Edges, domain.GraphEdge{
			Source: edge.Source,
			Target: edge.Target,
			Kind:   edge.Kind,
		})
	}
	return doc, nil
}
