package in

import (
	"context"

	"weft/internal/modules/site/dto"
)

type Usecase interface {
	Export(ctx context.Context) (dto.ExportOutput, error)
	Index(ctx context.Context) ([]dto.IndexEntryOutput, error)
	Backlinks(ctx context.Context, slug string) ([]dto.BacklinkOutput, error)
}
