// Package apt provides the apt provider for Debian system packages.
package apt

import "fmt"

// Config represents the apt section of the manifest.
type Config struct {
	Packages []Package
}

// Package is an apt package to install.
type Package struct {
	Name    string
	Version string // Optional pinned version (apt's name=version form).
}

// FullName returns the package spec passed to apt-get.
func (p Package) FullName() string {
	if p.Version != "" && p.Version != "latest" {
		return fmt.Sprintf("%s=%s", p.Name, p.Version)
	}
	return p.Name
}

// ParseConfig parses the apt configuration from a raw map.
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
		pkg, err := parsePackage(p)
		if err != nil {
			return nil, err
		}
		cfg.Packages = append(cfg.Packages, pkg)
	}

	return cfg, nil
}

// parsePackage accepts either a bare string or a {name, version} map.
func parsePackage(raw interface{}) (Package, error) {
	switch v := raw.(type) {
	case string:
		return Package{Name: v}, nil
	case map[string]interface{}:
		pkg := Package{}
		name, ok := v["name"].(string)
		if !ok {
			return Package{}, fmt.Errorf("package must have a name")
		}
		pkg.Name = name
		if version, ok := v["version"].(string); ok {
			pkg.Version = version
		}
		return pkg, nil
	default:
		return Package{}, fmt.Errorf("package must be a string or an object")
	}
}
