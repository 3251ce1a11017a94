package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"weft/internal/modules/plugin/domain"
	pluginout "weft/internal/modules/plugin/port/out"
)

// FileManifestStore reads exporter manifests from <vault>/plugins/plugins.json.
// Relative binary paths are anchored at the vault so a vault directory stays
// relocatable together with its plugins.
type FileManifestStore struct {
	vaultPath string
	path      string
}

func NewFileManifestStore(vaultPath string) pluginout.ManifestStore {
	return &FileManifestStore{
		vaultPath: vaultPath,
		path:      filepath.Join(vaultPath, "plugins", "plugins.json"),
	}
}

// Load returns the configured manifests sorted by name. A missing file means
// no plugins are configured; unknown JSON fields are rejected so a typo in a
// manifest fails loudly instead of silently misconfiguring a plugin.
func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var manifests []domain.Manifest
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i, manifest := range manifests {
		manifests[i].Binary = s.resolveBinary(manifest.Binary)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}

func (s *FileManifestStore) resolveBinary(binary string) string {
	if binary == "" || filepath.IsAbs(binary) {
		return binary
	}
	return filepath.Clean(filepath.Join(s.vaultPath, binary))
}
