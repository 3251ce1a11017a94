package out

import (
	"context"

	"weft/internal/modules/site/domain"
)

type PageCatalog interface {
	ListPages(ctx context.Context) ([]domain.PageInfo, error)
}

type GraphSource interface {
	Rebuild(ctx context.Context) error
	View(ctx context.Context) (domain.GraphDoc, error)
}

type ArtifactWriter interface {
	Write(ctx context.Context, name string, doc any) (string, error)
}
