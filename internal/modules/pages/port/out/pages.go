package out

import (
	"context"

	"weft/internal/modules/pages/domain"
)

type PageStore interface {
	List(ctx context.Context) ([]domain.Page, error)
	FindBySlug(ctx context.Context, slug string) (domain.Page, error)
	Save(ctx context.Context, page domain.Page) (string, error)
}

type PageIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, page domain.Page) error
}

type PDFSource interface {
	Extract(ctx context.Context, path string) (text string, pages int, err error)
}
