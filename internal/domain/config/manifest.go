// Package config loads and represents the provisioning manifest.
package config

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults holds manifest-level settings shared across providers.
type Defaults struct {
	// BaseDir is the installation root all relative paths resolve against.
	BaseDir string `yaml:"base_dir" toml:"base_dir"`
	// AudioDevice is the ALSA device the reader station plays through.
	AudioDevice string `yaml:"audio_device" toml:"audio_device"`
	// Vars are free-form values exposed to file templates (GPIO pins, ...).
	Vars map[string]string `yaml:"vars" toml:"vars"`
}

// Manifest is the root configuration: defaults plus one raw section per
// provider. Sections are opaque to the loader; providers parse their own.
type Manifest struct {
	Defaults Defaults
	Sections map[string]interface{}
}

// ErrEmptyManifest indicates the manifest defined no provider sections.
var ErrEmptyManifest = errors.New("manifest defines no provider sections")

// ParseYAML parses a Manifest from YAML bytes.
func ParseYAML(data []byte) (*Manifest, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// ParseTOML parses a Manifest from TOML bytes.
func ParseTOML(data []byte) (*Manifest, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// fromRaw splits the defaults block off and keeps the rest as sections.
func fromRaw(raw map[string]interface{}) (*Manifest, error) {
	m := &Manifest{Sections: make(map[string]interface{})}

	for key, value := range raw {
		if key == "defaults" {
			defaults, err := parseDefaults(value)
			if err != nil {
				return nil, err
			}
			m.Defaults = defaults
			continue
		}
		m.Sections[key] = normalize(value)
	}

	if len(m.Sections) == 0 {
		return nil, ErrEmptyManifest
	}

	return m, nil
}

func parseDefaults(value interface{}) (Defaults, error) {
	section, ok := normalize(value).(map[string]interface{})
	if !ok {
		return Defaults{}, fmt.Errorf("defaults must be a map")
	}

	d := Defaults{Vars: make(map[string]string)}

	if v, ok := section["base_dir"].(string); ok {
		d.BaseDir = v
	}
	if v, ok := section["audio_device"].(string); ok {
		d.AudioDevice = v
	}
	if vars, ok := section["vars"].(map[string]interface{}); ok {
		for k, v := range vars {
			d.Vars[k] = fmt.Sprintf("%v", v)
		}
	}

	return d, nil
}

// Config returns the provider-facing configuration map: every section keyed
// by provider name, values normalized to map[string]interface{} trees.
func (m *Manifest) Config() map[string]interface{} {
	cfg := make(map[string]interface{}, len(m.Sections))
	for k, v := range m.Sections {
		cfg[k] = v
	}
	return cfg
}

// normalize converts YAML's map[interface{}]interface{} trees into
// map[string]interface{} so providers see one shape regardless of format.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[fmt.Sprintf("%v", key)] = normalize(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[key] = normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return value
	}
}
