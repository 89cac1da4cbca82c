// Package pip provides the pip provider for Python packages the downstream
// reader application imports at runtime.
package pip

import "fmt"

// Config represents the pip section of the manifest.
type Config struct {
	Packages []Package
}

// Package is a pip package to install.
type Package struct {
	Name string
}

// ParseConfig parses the pip configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{Packages: make([]Package, 0)}

	packages, ok := raw["packages"]
	if !ok {
		return cfg, nil
	}
	packageList, ok := packages.([]interface{})
	if !ok {
		return nil, fmt.Errorf("packages must be a list")
	}

	for _, p := range packageList {
		name, ok := p.(string)
		if !ok {
			return nil, fmt.Errorf("package must be a string")
		}
		cfg.Packages = append(cfg.Packages, Package{Name: name})
	}

	return cfg, nil
}
