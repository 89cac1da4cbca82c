// Package piper provides the piper provider: it installs the piper
// text-to-speech runtime and a voice model from upstream release archives.
package piper

import "fmt"

// Config represents the piper section of the manifest.
type Config struct {
	// Dir is the install directory, relative to the base dir.
	Dir string
	// ArchiveURL is the release tarball (tar.gz) containing the binary.
	ArchiveURL string
	// Binary is the executable's name inside Dir.
	Binary string
	// Voice is the model to place next to the binary.
	Voice Voice
}

// Voice is a piper voice model: the onnx weights and their JSON sidecar.
type Voice struct {
	ModelURL  string
	ConfigURL string
}

// ParseConfig parses the piper configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Dir:    "piper",
		Binary: "piper",
	}

	if v, ok := raw["dir"].(string); ok && v != "" {
		cfg.Dir = v
	}
	if v, ok := raw["binary"].(string); ok && v != "" {
		cfg.Binary = v
	}

	v, ok := raw["archive_url"].(string)
	if !ok || v == "" {
		return nil, fmt.Errorf("piper config must have an archive_url")
	}
	cfg.ArchiveURL = v

	voice, ok := raw["voice"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("piper config must have a voice section")
	}
	modelURL, ok := voice["model_url"].(string)
	if !ok || modelURL == "" {
		return nil, fmt.Errorf("voice must have a model_url")
	}
	configURL, ok := voice["config_url"].(string)
	if !ok || configURL == "" {
		return nil, fmt.Errorf("voice must have a config_url")
	}
	cfg.Voice = Voice{ModelURL: modelURL, ConfigURL: configURL}

	return cfg, nil
}
