package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"weft/internal/modules/pages/domain"
	pagesout "weft/internal/modules/pages/port/out"
	apperrors "weft/internal/platform/errors"
	"weft/internal/platform/markdown"
	"weft/internal/platform/slug"
)

// relationKeys are the front-matter fields the generator interprets. Anything
// else is passthrough metadata.
var recognizedKeys = map[string]struct{}{
	"title": {}, "description": {},
	"ntpp": {}, "tpp": {}, "po": {}, "ec": {}, "eq": {}, "dc": {},
	"next": {}, "prev": {},
}

type VaultPageStore struct {
	vaultPath string
}

func NewVaultPageStore(vaultPath string) pagesout.PageStore {
	return &VaultPageStore{vaultPath: vaultPath}
}

func (s *VaultPageStore) List(_ context.Context) ([]domain.Page, error) {
	var paths []string
	err := filepath.WalkDir(s.vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != s.vaultPath && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	sort.Strings(paths)

	out := make([]domain.Page, 0, len(paths))
	for _, path := range paths {
		page, err := s.readPage(path)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, nil
}

func (s *VaultPageStore) FindBySlug(ctx context.Context, pageSlug string) (domain.Page, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	for _, page := range pages {
		if page.Slug == pageSlug {
			return page, nil
		}
	}
	return domain.Page{}, apperrors.ErrNotFound
}

func (s *VaultPageStore) Save(_ context.Context, page domain.Page) (string, error) {
	notePath := filepath.Join(s.vaultPath, filepath.FromSlash(page.Slug)+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create page directory: %w", err)
	}
	rendered, err := markdown.RenderFrontmatter(toFrontmatter(page), page.Body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write page markdown: %w", err)
	}
	return notePath, nil
}

func (s *VaultPageStore) readPage(path string) (domain.Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Page{}, fmt.Errorf("read %s: %w", path, err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		return domain.Page{}, fmt.Errorf("parse %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.vaultPath, path)
	if err != nil {
		return domain.Page{}, fmt.Errorf("relativize %s: %w", path, err)
	}
	pageSlug := strings.TrimSuffix(filepath.ToSlash(rel), ".md")

	page := domain.Page{
		Slug:        pageSlug,
		Title:       asString(meta["title"]),
		Description: asString(meta["description"]),
		Body:        body,
		NotePath:    path,
		Declared: domain.Declared{
			NTPP: asStringSlice(meta["ntpp"]),
			TPP:  asStringSlice(meta["tpp"]),
			PO:   asStringSlice(meta["po"]),
			EC:   asStringSlice(meta["ec"]),
			EQ:   asStringSlice(meta["eq"]),
			DC:   asStringSlice(meta["dc"]),
			Next: asString(meta["next"]),
			Prev: asString(meta["prev"]),
		},
	}
	for key, value := range meta {
		if _, ok := recognizedKeys[key]; ok {
			continue
		}
		if page.Extra == nil {
			page.Extra = map[string]any{}
		}
		page.Extra[key] = value
	}
	if page.Title == "" {
		page.Title = titleFromSlug(pageSlug)
	}
	if err := page.Validate(); err != nil {
		return domain.Page{}, fmt.Errorf("decode page %s: %w", path, err)
	}
	return page, nil
}

func toFrontmatter(page domain.Page) map[string]any {
	meta := map[string]any{
		"title": page.Title,
	}
	if page.Description != "" {
		meta["description"] = page.Description
	}
	if len(page.Declared.NTPP) > 0 {
		meta["ntpp"] = page.Declared.NTPP
	}
	if len(page.Declared.TPP) > 0 {
		meta["tpp"] = page.Declared.TPP
	}
	if len(page.Declared.PO) > 0 {
		meta["po"] = page.Declared.PO
	}
	if len(page.Declared.EC) > 0 {
		meta["ec"] = page.Declared.EC
	}
	if len(page.Declared.EQ) > 0 {
		meta["eq"] = page.Declared.EQ
	}
	if len(page.Declared.DC) > 0 {
		meta["dc"] = page.Declared.DC
	}
	if page.Declared.Next != "" {
		meta["next"] = page.Declared.Next
	}
	if page.Declared.Prev != "" {
		meta["prev"] = page.Declared.Prev
	}
	for key, value := range page.Extra {
		meta[key] = value
	}
	return meta
}

func titleFromSlug(pageSlug string) string {
	if pageSlug == slug.Index {
		return "Home"
	}
	base := pageSlug
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.ReplaceAll(base, "-", " ")
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{x}
	default:
		return nil
	}
}
