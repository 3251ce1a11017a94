package usecase

import (
	"context"

	"weft/internal/modules/pages/domain"
	"weft/internal/modules/pages/dto"
	pagesin "weft/internal/modules/pages/port/in"
	"weft/internal/modules/pages/service"
	"weft/internal/platform/slug"
)

type Interactor struct {
	svc *service.PageService
}

func NewInteractor(svc *service.PageService) pagesin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PageOutput, error) {
	pages, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PageOutput, 0, len(pages))
	for _, page := range pages {
		out = append(out, dto.PageOutput{
			Slug:        page.Slug,
			Title:       page.Title,
			Description: page.Description,
			Path:        slug.Path(page.Slug),
			NotePath:    page.NotePath,
		})
	}
	return out, nil
}

func (i *Interactor) ListDetails(ctx context.Context) ([]dto.PageDetailOutput, error) {
	pages, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PageDetailOutput, 0, len(pages))
	for _, page := range pages {
		out = append(out, toDetail(page))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, pageSlug string) (dto.PageDetailOutput, error) {
	page, err := i.svc.Get(ctx, pageSlug)
	if err != nil {
		return dto.PageDetailOutput{}, err
	}
	return toDetail(page), nil
}

func (i *Interactor) ImportPDF(ctx context.Context, input dto.ImportPDFInput) (dto.ImportPDFOutput, error) {
	page, pdfPages, err := i.svc.ImportPDF(ctx, input.FilePath, input.Title)
	if err != nil {
		return dto.ImportPDFOutput{}, err
	}
	return dto.ImportPDFOutput{
		Slug:     page.Slug,
		Title:    page.Title,
		NotePath: page.NotePath,
		PDFPages: pdfPages,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toDetail(page domain.Page) dto.PageDetailOutput {
	return dto.PageDetailOutput{
		Slug:        page.Slug,
		Title:       page.Title,
		Description: page.Description,
		Path:        slug.Path(page.Slug),
		NotePath:    page.NotePath,
		Body:        page.Body,
		NTPP:        page.Declared.NTPP,
		TPP:         page.Declared.TPP,
		PO:          page.Declared.PO,
		EC:          page.Declared.EC,
		EQ:          page.Declared.EQ,
		DC:          page.Declared.DC,
		Next:        page.Declared.Next,
		Prev:        page.Declared.Prev,
	}
}
