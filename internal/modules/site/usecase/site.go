package usecase

import (
	"context"

	"weft/internal/modules/site/dto"
	sitein "weft/internal/modules/site/port/in"
	"weft/internal/modules/site/service"
)

type Interactor struct {
	svc *service.SiteService
}

func NewInteractor(svc *service.SiteService) sitein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Export(ctx context.Context) (dto.ExportOutput, error) {
	manifest, artifacts, err := i.svc.Export(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{
		BuildID:     manifest.BuildID,
		GeneratedAt: manifest.GeneratedAt,
		PageCount:   manifest.PageCount,
		EdgeCount:   manifest.EdgeCount,
		Artifacts:   artifacts,
	}, nil
}

func (i *Interactor) Index(ctx context.Context) ([]dto.IndexEntryOutput, error) {
	pages, err := i.svc.Index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IndexEntryOutput, 0, len(pages))
	for _, page := range pages {
		out = append(out, dto.IndexEntryOutput{
			Path:        page.Path,
			Title:       page.Title,
			Description: page.Description,
		})
	}
	return out, nil
}

func (i *Interactor) Backlinks(ctx context.Context, pageSlug string) ([]dto.BacklinkOutput, error) {
	links, err := i.svc.Backlinks(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BacklinkOutput, 0, len(links))
	for _, link := range links {
		out = append(out, dto.BacklinkOutput{Path: link.Path, Title: link.Title})
	}
	return out, nil
}
