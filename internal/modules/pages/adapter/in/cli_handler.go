package in

import (
	"context"

	"weft/internal/modules/pages/dto"
	pagesin "weft/internal/modules/pages/port/in"
)

type CLIHandler struct {
	usecase pagesin.Usecase
}

func NewCLIHandler(usecase pagesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PageOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, slug string) (dto.PageDetailOutput, error) {
	return h.usecase.Get(ctx, slug)
}

func (h CLIHandler) ImportPDF(ctx context.Context, filePath, title string) (dto.ImportPDFOutput, error) {
	return h.usecase.ImportPDF(ctx, dto.ImportPDFInput{FilePath: filePath, Title: title})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
