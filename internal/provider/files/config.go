// Package files provides the files provider: working directories and files
// rendered from embedded templates.
package files

import "fmt"

// Config represents the files section of the manifest.
type Config struct {
	Dirs      []string
	Templates []Template
}

// Template is a file rendered from an embedded template.
type Template struct {
	Name string            // Embedded template name (e.g. "gpio_compat.py")
	Dest string            // Destination path, relative to the base dir
	Mode string            // File mode (e.g. "0644")
	Vars map[string]string // Extra template variables
}

// ParseConfig parses the files configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Dirs:      make([]string, 0),
		Templates: make([]Template, 0),
	}

	if dirs, ok := raw["dirs"]; ok {
		dirList, ok := dirs.([]interface{})
		if !ok {
			return nil, fmt.Errorf("dirs must be a list")
		}
		for _, d := range dirList {
			dir, ok := d.(string)
			if !ok {
				return nil, fmt.Errorf("dir must be a string")
			}
			cfg.Dirs = append(cfg.Dirs, dir)
		}
	}

	if templates, ok := raw["templates"]; ok {
		templateList, ok := templates.([]interface{})
		if !ok {
			return nil, fmt.Errorf("templates must be a list")
		}
		for _, t := range templateList {
			tmpl, err := parseTemplate(t)
			if err != nil {
				return nil, err
			}
			cfg.Templates = append(cfg.Templates, tmpl)
		}
	}

	return cfg, nil
}

func parseTemplate(raw interface{}) (Template, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Template{}, fmt.Errorf("template must be an object")
	}

	tmpl := Template{
		Vars: make(map[string]string),
	}

	if name, ok := m["name"].(string); ok {
		tmpl.Name = name
	} else {
		return Template{}, fmt.Errorf("template must have a name")
	}

	if dest, ok := m["dest"].(string); ok {
		tmpl.Dest = dest
	} else {
		tmpl.Dest = tmpl.Name
	}

	if mode, ok := m["mode"].(string); ok {
		tmpl.Mode = mode
	}

	if vars, ok := m["vars"].(map[string]interface{}); ok {
		for k, v := range vars {
			if str, ok := v.(string); ok {
				tmpl.Vars[k] = str
			}
		}
	}

	return tmpl, nil
}
