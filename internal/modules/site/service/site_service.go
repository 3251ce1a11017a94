package service

import (
	"context"
	"fmt"
	"strings"

	"weft/internal/modules/site/domain"
	siteout "weft/internal/modules/site/port/out"
	"weft/internal/platform/clock"
	apperrors "weft/internal/platform/errors"
	"weft/internal/platform/id"
	"weft/internal/platform/slug"
	"weft/internal/platform/tx"
)

type SiteService struct {
	catalog siteout.PageCatalog
	graph   siteout.GraphSource
	writer  siteout.ArtifactWriter
	txm     tx.Manager
	clock   clock.Clock
	ids     id.Generator
}

func NewSiteService(catalog siteout.PageCatalog, graph siteout.GraphSource, writer siteout.ArtifactWriter, txm tx.Manager, clk clock.Clock, ids id.Generator) *SiteService {
	return &SiteService{catalog: catalog, graph: graph, writer: writer, txm: txm, clock: clk, ids: ids}
}

// Export rebuilds the graph and writes the four site artifacts. Either all
// artifacts land or none do.
func (s *SiteService) Export(ctx context.Context) (domain.Manifest, []string, error) {
	var manifest domain.Manifest
	var artifacts []string
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.graph.Rebuild(ctx); err != nil {
			return fmt.Errorf("rebuild graph: %w", err)
		}
		pages, err := s.catalog.ListPages(ctx)
		if err != nil {
			return err
		}
		doc, err := s.graph.View(ctx)
		if err != nil {
			return err
		}

		manifest = domain.Manifest{
			BuildID:     s.ids.New(),
			GeneratedAt: s.clock.Now(),
			PageCount:   len(pages),
			EdgeCount:   len(doc.Edges),
		}
		docs := []struct {
			name string
			body any
		}{
			{"index.json", pages},
			{"backlinks.json", domain.DeriveBacklinks(doc)},
			{"graph.json", doc},
			{"manifest.json", manifest},
		}
		for _, artifact := range docs {
			path, err := s.writer.Write(ctx, artifact.name, artifact.body)
			if err != nil {
				return err
			}
			artifacts = append(artifacts, path)
		}
		return nil
	})
	if err != nil {
		return domain.Manifest{}, nil, err
	}
	return manifest, artifacts, nil
}

func (s *SiteService) Index(ctx context.Context) ([]domain.PageInfo, error) {
	return s.catalog.ListPages(ctx)
}

func (s *SiteService) Backlinks(ctx context.Context, raw string) ([]domain.Backlink, error) {
	path := normalizePath(raw)
	if path == "" {
		return nil, fmt.Errorf("%w: page path is required", apperrors.ErrInvalidInput)
	}
	doc, err := s.graph.View(ctx)
	if err != nil {
		return nil, err
	}
	links := domain.DeriveBacklinks(doc)[path]
	if links == nil {
		links = []domain.Backlink{}
	}
	return links, nil
}

func normalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") {
		return slug.Path(slug.FromPath(raw))
	}
	return slug.Path(raw)
}
