package out

import (
	"context"

	pagesin "weft/internal/modules/pages/port/in"
	"weft/internal/modules/site/domain"
	siteout "weft/internal/modules/site/port/out"
)

type CatalogAdapter struct {
	pages pagesin.Usecase
}

func NewCatalogAdapter(pages pagesin.Usecase) siteout.PageCatalog {
	return &CatalogAdapter{pages: pages}
}

func (a *CatalogAdapter) ListPages(ctx context.Context) ([]domain.PageInfo, error) {
	pages, err := a.pages.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PageInfo, 0, len(pages))
	for _, page := range pages {
		out = append(out, domain.PageInfo{
			Path:        page.Path,
			Title:       page.Title,
			Description: page.Description,
		})
	}
	return out, nil
}
