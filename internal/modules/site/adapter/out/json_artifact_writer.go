package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	siteout "weft/internal/modules/site/port/out"
)

type JSONArtifactWriter struct {
	outDir string
}

func NewJSONArtifactWriter(outDir string) siteout.ArtifactWriter {
	return &JSONArtifactWriter{outDir: outDir}
}

func (w *JSONArtifactWriter) Write(_ context.Context, name string, doc any) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
