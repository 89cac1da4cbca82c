// Package sound provides the sound provider: it synthesizes the spoken
// ready announcement with the installed piper binary.
package sound

import "fmt"

// Config represents the sound section of the manifest.
type Config struct {
	// Text is the announcement passed to the synthesizer on stdin.
	Text string
	// Output is the WAV path, relative to the base dir.
	Output string
}

// ParseConfig parses the sound configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Text:   "ready",
		Output: "sounds/ready.wav",
	}

	if v, ok := raw["text"].(string); ok && v != "" {
		cfg.Text = v
	}
	if v, ok := raw["output"].(string); ok && v != "" {
		cfg.Output = v
	}
	if cfg.Text == "" {
		return nil, fmt.Errorf("sound text cannot be empty")
	}

	return cfg, nil
}
