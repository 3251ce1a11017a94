package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"weft/internal/modules/graph/domain"

	_ "modernc.org/sqlite"
)

// SQLiteGraphProjector persists the built graph view so that hub and search
// queries do not re-walk the vault.
type SQLiteGraphProjector struct {
	db *sql.DB
}

func NewSQLiteGraphProjector(dbPath string) (*SQLiteGraphProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteGraphProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SQLiteGraphProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS nodes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  connections INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS edges (
  source TEXT NOT NULL,
  target TEXT NOT NULL,
  kind TEXT NOT NULL,
  PRIMARY KEY (source, target, kind)
);
CREATE INDEX IF NOT EXISTS idx_edges_target_kind ON edges(target, kind);
CREATE INDEX IF NOT EXISTS idx_nodes_connections ON nodes(connections);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create graph tables: %w", err)
	}
	return nil
}

func (p *SQLiteGraphProjector) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("reset edges: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("reset nodes: %w", err)
	}
	return nil
}

func (p *SQLiteGraphProjector) UpsertNode(ctx context.Context, node domain.Node) error {
	const stmt = `
INSERT INTO nodes (id, title, connections)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  connections=excluded.connections;
`
	if _, err := p.db.ExecContext(ctx, stmt, node.ID, node.Title, node.Connections); err != nil {
		return fmt.Errorf("upsert node: %w", err)
	}
	return nil
}

func (p *SQLiteGraphProjector) UpsertEdge(ctx context.Context, edge domain.Edge) error {
	const stmt = `
INSERT INTO edges (source, target, kind)
VALUES (?, ?, ?)
ON CONFLICT(source, target, kind) DO NOTHING;
`
	if _, err := p.db.ExecContext(ctx, stmt, edge.Source, edge.Target, string(edge.Kind)); err != nil {
		return fmt.Errorf("upsert edge: %w", err)
	}
	return nil
}

func (p *SQLiteGraphProjector) Hubs(ctx context.Context, limit int) ([]domain.Node, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT id, title, connections
FROM nodes
ORDER BY connections DESC, id ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query hubs: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

func (p *SQLiteGraphProjector) Search(ctx context.Context, query string) ([]domain.Node, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := p.db.QueryContext(ctx, `
SELECT id, title, connections
FROM nodes
WHERE lower(id) LIKE ? OR lower(title) LIKE ?
ORDER BY connections DESC, id ASC;
`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search nodes: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

func scanNodes(rows *sql.Rows) ([]domain.Node, error) {
	out := make([]domain.Node, 0)
	for rows.Next() {
		node := domain.Node{}
		if err := rows.Scan(&node.ID, &node.Title, &node.Connections); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		out = append(out, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return out, nil
}
