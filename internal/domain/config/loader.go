package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Loader loads manifests from the filesystem.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a manifest. The format is chosen by extension:
// .toml is parsed as TOML, everything else as YAML.
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewManifestNotFoundError(path)
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		manifest, err := ParseTOML(data)
		if err != nil {
			return nil, NewManifestParseError(path, err)
		}
		return manifest, nil
	}

	manifest, err := ParseYAML(data)
	if err != nil {
		return nil, NewManifestParseError(path, err)
	}
	return manifest, nil
}
