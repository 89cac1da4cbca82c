// Package probe provides the probe provider: hardware smoke tests for the
// camera, the audio path, and the GPIO controller. A probe is only
// satisfied by probing, so these steps run on every apply.
package probe

// Config represents the probe section of the manifest.
type Config struct {
	Camera bool
	Audio  bool
	GPIO   bool
	// Capture is the camera test shot path, relative to the base dir.
	Capture string
}

// ParseConfig parses the probe configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Camera:  true,
		Audio:   true,
		GPIO:    true,
		Capture: "probe/camera.jpg",
	}

	if v, ok := raw["camera"].(bool); ok {
		cfg.Camera = v
	}
	if v, ok := raw["audio"].(bool); ok {
		cfg.Audio = v
	}
	if v, ok := raw["gpio"].(bool); ok {
		cfg.GPIO = v
	}
	if v, ok := raw["capture"].(string); ok && v != "" {
		cfg.Capture = v
	}

	return cfg, nil
}
