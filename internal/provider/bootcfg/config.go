// Package bootcfg provides the bootcfg provider: it ensures firmware
// settings in the Raspberry Pi boot configuration file.
package bootcfg

import "fmt"

// DefaultPath is the boot configuration file on Raspberry Pi OS bookworm.
const DefaultPath = "/boot/firmware/config.txt"

// Config represents the bootcfg section of the manifest.
type Config struct {
	Path    string
	Entries []Entry
}

// Entry is one key that must hold a value in a config.txt section.
// Keys like dtparam repeat, so an entry matches when any occurrence
// carries the value.
type Entry struct {
	Section string
	Key     string
	Value   string
}

// ParseConfig parses the bootcfg configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Path:    DefaultPath,
		Entries: make([]Entry, 0),
	}

	if v, ok := raw["path"].(string); ok && v != "" {
		cfg.Path = v
	}

	entries, ok := raw["entries"]
	if !ok {
		return cfg, nil
	}
	entryList, ok := entries.([]interface{})
	if !ok {
		return nil, fmt.Errorf("entries must be a list")
	}

	for _, e := range entryList {
		entry, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		cfg.Entries = append(cfg.Entries, entry)
	}

	return cfg, nil
}

func parseEntry(raw interface{}) (Entry, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Entry{}, fmt.Errorf("entry must be an object")
	}

	entry := Entry{Section: "all"}

	if section, ok := m["section"].(string); ok && section != "" {
		entry.Section = section
	}

	key, err := scalarString(m["key"])
	if err != nil || key == "" {
		return Entry{}, fmt.Errorf("entry must have a key")
	}
	entry.Key = key

	value, err := scalarString(m["value"])
	if err != nil || value == "" {
		return Entry{}, fmt.Errorf("entry %s must have a value", key)
	}
	entry.Value = value

	return entry, nil
}

// scalarString accepts the scalar types YAML hands back for config.txt
// values (camera_auto_detect: 1 parses as an int).
func scalarString(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case int:
		return fmt.Sprintf("%d", t), nil
	case int64:
		return fmt.Sprintf("%d", t), nil
	case bool:
		if t {
			return "1", nil
		}
		return "0", nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
