package dto

type PageOutput struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	NotePath    string `json:"note_path"`
}

type PageDetailOutput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Path        string   `json:"path"`
	NotePath    string   `json:"note_path"`
	Body        string   `json:"body"`
	NTPP        []string `json:"ntpp,omitempty"`
	TPP         []string `json:"tpp,omitempty"`
	PO          []string `json:"po,omitempty"`
	EC          []string `json:"ec,omitempty"`
	EQ          []string `json:"eq,omitempty"`
	DC          []string `json:"dc,omitempty"`
	Next        string   `json:"next,omitempty"`
	Prev        string   `json:"prev,omitempty"`
}

type ImportPDFInput struct {
	FilePath string
	Title    string
}

type ImportPDFOutput struct {
	Slug     string
	Title    string
	NotePath string
	PDFPages int
}
