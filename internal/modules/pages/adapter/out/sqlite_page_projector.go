package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"weft/internal/modules/pages/domain"
	pagesout "weft/internal/modules/pages/port/out"
	"weft/internal/platform/slug"

	_ "modernc.org/sqlite"
)

type SQLitePageProjector struct {
	db *sql.DB
}

func NewSQLitePageProjector(dbPath string) (pagesout.PageIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLitePageProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLitePageProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS pages (
  slug TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  path TEXT NOT NULL,
  note_path TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create pages table: %w", err)
	}
	return nil
}

func (s *SQLitePageProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return fmt.Errorf("reset pages: %w", err)
	}
	return nil
}

func (s *SQLitePageProjector) Upsert(ctx context.Context, page domain.Page) error {
	const stmt = `
INSERT INTO pages (slug, title, description, path, note_path)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
  title=excluded.title,
  description=excluded.description,
  path=excluded.path,
  note_path=excluded.note_path;
`
	if _, err := s.db.ExecContext(ctx, stmt, page.Slug, page.Title, page.Description, slug.Path(page.Slug), page.NotePath); err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}
