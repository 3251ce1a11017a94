package in

import (
	"context"

	"weft/internal/modules/pages/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PageOutput, error)
	ListDetails(ctx context.Context) ([]dto.PageDetailOutput, error)
	Get(ctx context.Context, slug string) (dto.PageDetailOutput, error)
	ImportPDF(ctx context.Context, input dto.ImportPDFInput) (dto.ImportPDFOutput, error)
	Reindex(ctx context.Context) error
}
