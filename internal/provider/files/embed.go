package files

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// templateContent returns the embedded template body for a manifest name.
// The manifest names the rendered file ("gpio_compat.py"); the embedded
// source carries a .tmpl suffix.
func templateContent(name string) ([]byte, error) {
	content, err := templatesFS.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
	}
	return content, nil
}

// TemplateNames lists the embedded templates by manifest name.
func TemplateNames() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names
}
