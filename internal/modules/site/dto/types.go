package dto

import "time"

type IndexEntryOutput struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type BacklinkOutput struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

type ExportOutput struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	PageCount   int       `json:"page_count"`
	EdgeCount   int       `json:"edge_count"`
	Artifacts   []string  `json:"artifacts"`
}
