package domain

import "fmt"

// Page is one vault document. Pages are immutable once loaded; the generator
// reads them, it never rewrites them (the PDF importer creates new files).
type Page struct {
	Slug        string
	Title       string
	Description string
	Body        string
	NotePath    string

	Declared Declared

	// Extra carries unrecognized front-matter keys as opaque passthrough
	// data. The generator does not interpret it.
	Extra map[string]any
}

// Declared is the closed set of relation fields recognized in front-matter.
// Inverse relations (nttpi, tppi, ri) have no declared form.
type Declared struct {
	NTPP []string
	TPP  []string
	PO   []string
	EC   []string
	EQ   []string
	DC   []string
	Next string
	Prev string
}

func (p Page) Validate() error {
	if p.Slug == "" {
		return fmt.Errorf("page slug is required")
	}
	if p.Title == "" {
		return fmt.Errorf("page %s: title is required", p.Slug)
	}
	return nil
}
