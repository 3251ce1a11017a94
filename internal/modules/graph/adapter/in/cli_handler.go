package in

import (
	"context"

	"weft/internal/modules/graph/dto"
	graphin "weft/internal/modules/graph/port/in"
)

type CLIHandler struct {
	usecase graphin.Usecase
}

func NewCLIHandler(usecase graphin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Build(ctx context.Context) (dto.BuildOutput, error) {
	return h.usecase.Build(ctx)
}

func (h CLIHandler) View(ctx context.Context) (dto.GraphOutput, error) {
	return h.usecase.View(ctx)
}

func (h CLIHandler) Subgraph(ctx context.Context, root string, kinds []string, depth int) (dto.GraphOutput, error) {
	return h.usecase.Subgraph(ctx, graphin.SubgraphInput{Root: root, Kinds: kinds, Depth: depth})
}

func (h CLIHandler) Breadcrumbs(ctx context.Context, slug string) ([]dto.CrumbOutput, error) {
	return h.usecase.Breadcrumbs(ctx, slug)
}

func (h CLIHandler) Relations(ctx context.Context, slug string) (dto.RelationsOutput, error) {
	return h.usecase.Relations(ctx, slug)
}

func (h CLIHandler) Hubs(ctx context.Context, limit int) ([]dto.HubOutput, error) {
	return h.usecase.Hubs(ctx, limit)
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]dto.NodeOutput, error) {
	return h.usecase.Search(ctx, query)
}

func (h CLIHandler) Kinds() []string {
	return h.usecase.Kinds()
}
