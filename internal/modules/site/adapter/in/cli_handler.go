package in

import (
	"context"

	"weft/internal/modules/site/dto"
	sitein "weft/internal/modules/site/port/in"
)

type CLIHandler struct {
	usecase sitein.Usecase
}

func NewCLIHandler(usecase sitein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Index(ctx context.Context) ([]dto.IndexEntryOutput, error) {
	return h.usecase.Index(ctx)
}

func (h CLIHandler) Backlinks(ctx context.Context, slug string) ([]dto.BacklinkOutput, error) {
	return h.usecase.Backlinks(ctx, slug)
}
