package out

import (
	"context"

	"weft/internal/modules/graph/domain"
)

type PageSource interface {
	ListPages(ctx context.Context) ([]domain.Page, error)
}

type EdgeProjector interface {
	Reset(ctx context.Context) error
	UpsertNode(ctx context.Context, node domain.Node) error
	UpsertEdge(ctx context.Context, edge domain.Edge) error
}

type GraphQueryStore interface {
	Hubs(ctx context.Context, limit int) ([]domain.Node, error)
	Search(ctx context.Context, query string) ([]domain.Node, error)
}
