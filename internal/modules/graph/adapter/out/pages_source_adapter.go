package out

import (
	"context"

	"weft/internal/modules/graph/domain"
	graphout "weft/internal/modules/graph/port/out"
	pagesin "weft/internal/modules/pages/port/in"
)

// PagesSourceAdapter feeds vault pages into the graph builder through the
// pages module's inbound port.
type PagesSourceAdapter struct {
	pages pagesin.Usecase
}

func NewPagesSourceAdapter(pages pagesin.Usecase) graphout.PageSource {
	return &PagesSourceAdapter{pages: pages}
}

func (a *PagesSourceAdapter) ListPages(ctx context.Context) ([]domain.Page, error) {
	details, err := a.pages.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Page, 0, len(details))
	for _, detail := range details {
		out = append(out, domain.Page{
			Slug:  detail.Slug,
			Title: detail.Title,
			Body:  detail.Body,
			Declared: domain.Declared{
				NTPP: detail.NTPP,
				TPP:  detail.TPP,
				PO:   detail.PO,
				EC:   detail.EC,
				EQ:   detail.EQ,
				DC:   detail.DC,
				Next: detail.Next,
				Prev: detail.Prev,
			},
		})
	}
	return out, nil
}
