package dto

type NodeOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Connections int    `json:"connections"`
}

type EdgeOutput struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"type"`
}

type GraphOutput struct {
	Nodes []NodeOutput `json:"nodes"`
	Edges []EdgeOutput `json:"edges"`
}

type CrumbOutput struct {
	Slug  string `json:"slug"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

type RelationsOutput struct {
	Slug   string   `json:"slug"`
	NTPP   []string `json:"ntpp,omitempty"`
	NTTPI  []string `json:"nttpi,omitempty"`
	TPP    []string `json:"tpp,omitempty"`
	TPPI   []string `json:"tppi,omitempty"`
	PO     []string `json:"po,omitempty"`
	EC     []string `json:"ec,omitempty"`
	EQ     []string `json:"eq,omitempty"`
	DC     []string `json:"dc,omitempty"`
	Next   string   `json:"next,omitempty"`
	Prev   string   `json:"prev,omitempty"`
	Refs   []string `json:"r,omitempty"`
	RefdBy []string `json:"ri,omitempty"`
}

type BuildOutput struct {
	PageCount int `json:"page_count"`
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

type HubOutput struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Connections int    `json:"connections"`
}
