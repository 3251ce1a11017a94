package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	VaultPath string
	DBPath    string
	OutDir    string
}

func New(vaultPath, outDir string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	if outDir == "" {
		outDir = filepath.Join(vaultPath, ".weft", "out")
	}
	return Config{
		VaultPath: vaultPath,
		DBPath:    filepath.Join(vaultPath, ".weft", "weft.db"),
		OutDir:    outDir,
	}, nil
}
