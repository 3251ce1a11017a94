package domain

import (
	"time"

	"weft/internal/platform/slug"
)

// PageInfo is the published identity of one vault page.
type PageInfo struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Backlink struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Manifest describes one export run.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	PageCount   int       `json:"page_count"`
	EdgeCount   int       `json:"edge_count"`
}

type GraphNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Connections int    `json:"connections"`
}

type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"type"`
}

// GraphDoc is the exported graph view, shaped for the renderer.
type GraphDoc struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// DeriveBacklinks inverts the body-reference edges into a per-page index
// keyed by site path. Edge order is preserved, so the result is
// deterministic for a deterministic graph.
func DeriveBacklinks(doc GraphDoc) map[string][]Backlink {
	titles := make(map[string]string, len(doc.Nodes))
	for _, node := range doc.Nodes {
		titles[node.ID] = node.Title
	}
	out := map[string][]Backlink{}
	for _, edge := range doc.Edges {
		if edge.Kind != "r" {
			continue
		}
		target := slug.Path(edge.Target)
		out[target] = append(out[target], Backlink{
			Path:  slug.Path(edge.Source),
			Title: titles[edge.Source],
		})
	}
	return out
}
