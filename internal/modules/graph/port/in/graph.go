package in

import (
	"context"

	"weft/internal/modules/graph/dto"
)

type SubgraphInput struct {
	Root  string
	Kinds []string
	Depth int
}

type Usecase interface {
	Build(ctx context.Context) (dto.BuildOutput, error)
	View(ctx context.Context) (dto.GraphOutput, error)
	Subgraph(ctx context.Context, input SubgraphInput) (dto.GraphOutput, error)
	Breadcrumbs(ctx context.Context, slug string) ([]dto.CrumbOutput, error)
	Relations(ctx context.Context, slug string) (dto.RelationsOutput, error)
	Hubs(ctx context.Context, limit int) ([]dto.HubOutput, error)
	Search(ctx context.Context, query string) ([]dto.NodeOutput, error)
	Kinds() []string
}
