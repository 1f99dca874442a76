package config

import (
	"fmt"
	"path/filepath"
)

// Config derives every path the tool touches from one workspace root.
type Config struct {
	RootDir   string
	DataDir   string
	IndexPath string
	LogPath   string
	StudyPath string
}

func New(rootDir string) (Config, error) {
	if rootDir == "" {
		return Config{}, fmt.Errorf("workspace root is required")
	}
	return Config{
		RootDir:   rootDir,
		DataDir:   filepath.Join(rootDir, "data"),
		IndexPath: filepath.Join(rootDir, ".uxlab", "index.db"),
		LogPath:   filepath.Join(rootDir, ".uxlab", "uxlab.log"),
		StudyPath: filepath.Join(rootDir, "study.yaml"),
	}, nil
}
