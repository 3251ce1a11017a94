package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	pagesout "weft/internal/modules/pages/port/out"
)

type LocalPDFSource struct{}

func NewLocalPDFSource() pagesout.PDFSource {
	return &LocalPDFSource{}
}

func (r *LocalPDFSource) Extract(_ context.Context, path string) (string, int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	parts := make([]string, 0, total)
	for number := 1; number <= total; number++ {
		p := doc.Page(number)
		if p.V.IsNull() {
			continue
		}
		content := p.Content()
		words := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			words = append(words, text.S)
		}
		if len(words) > 0 {
			parts = append(parts, strings.Join(words, " "))
		}
	}
	return strings.Join(parts, "\n\n"), total, nil
}
