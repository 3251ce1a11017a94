package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"weft/internal/modules/pages/domain"
	pagesout "weft/internal/modules/pages/port/out"
	"weft/internal/platform/clock"
	apperrors "weft/internal/platform/errors"
	"weft/internal/platform/markdown"
	"weft/internal/platform/slug"
)

// Extracted PDF text lives inside a managed block so a re-import replaces
// the generated section without touching hand-written notes around it.
const (
	pdfBlockStart = "<!-- weft:pdf-text:start -->"
	pdfBlockEnd   = "<!-- weft:pdf-text:end -->"
)

type PageService struct {
	clock     clock.Clock
	store     pagesout.PageStore
	projector pagesout.PageIndexProjector
	pdf       pagesout.PDFSource
}

func NewPageService(clock clock.Clock, store pagesout.PageStore, projector pagesout.PageIndexProjector, pdf pagesout.PDFSource) *PageService {
	return &PageService{clock: clock, store: store, projector: projector, pdf: pdf}
}

func (s *PageService) List(ctx context.Context) ([]domain.Page, error) {
	return s.store.List(ctx)
}

func (s *PageService) Get(ctx context.Context, pageSlug string) (domain.Page, error) {
	pageSlug = strings.TrimSpace(pageSlug)
	if pageSlug == "" {
		return domain.Page{}, fmt.Errorf("page slug is required")
	}
	return s.store.FindBySlug(ctx, pageSlug)
}

// ImportPDF extracts the text of a PDF document into a fresh vault page.
func (s *PageService) ImportPDF(ctx context.Context, filePath, title string) (domain.Page, int, error) {
	if strings.TrimSpace(filePath) == "" {
		return domain.Page{}, 0, fmt.Errorf("pdf path is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	text, pdfPages, err := s.pdf.Extract(ctx, filePath)
	if err != nil {
		return domain.Page{}, 0, err
	}
	pageSlug := slug.Make(title)
	page := domain.Page{Slug: pageSlug, Title: title}
	existing, err := s.store.FindBySlug(ctx, pageSlug)
	if err == nil {
		// Re-import: keep the page's metadata, only the managed block moves.
		page = existing
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Page{}, 0, err
	}
	page.Body = markdown.ReplaceManagedBlock(page.Body, pdfBlockStart, pdfBlockEnd, text)
	if page.Extra == nil {
		page.Extra = map[string]any{}
	}
	page.Extra["imported_from"] = filePath
	page.Extra["imported_at"] = s.clock.Now().Format("2006-01-02T15:04:05Z07:00")
	if err := page.Validate(); err != nil {
		return domain.Page{}, 0, err
	}
	notePath, err := s.store.Save(ctx, page)
	if err != nil {
		return domain.Page{}, 0, err
	}
	page.NotePath = notePath
	if err := s.projector.Upsert(ctx, page); err != nil {
		return domain.Page{}, 0, err
	}
	return page, pdfPages, nil
}

func (s *PageService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	pages, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, page := range pages {
		if err := s.projector.Upsert(ctx, page); err != nil {
			return err
		}
	}
	return nil
}
