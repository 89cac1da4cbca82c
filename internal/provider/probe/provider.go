package probe

import (
	"fmt"
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles probe configuration into hardware smoke test steps.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewProvider creates a probe Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner) *Provider {
	return &Provider{fs: fs, runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "probe"
}

// Compile transforms probe configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("probe")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]engine.Step, 0, 3)
	if cfg.Camera {
		capturePath := filepath.Join(ctx.BaseDir(), cfg.Capture)
		steps = append(steps, NewCameraStep(capturePath, p.fs, p.runner))
	}
	if cfg.Audio {
		device := ctx.Var("audio_device")
		wavPath := ctx.Var("ready_wav")
		if device == "" || wavPath == "" {
			return nil, fmt.Errorf("audio probe requires an audio device and a sound section")
		}
		steps = append(steps, NewAudioStep(device, wavPath, p.runner))
	}
	if cfg.GPIO {
		steps = append(steps, NewGPIOStep(p.runner))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
