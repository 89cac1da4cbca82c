package sound

import (
	"fmt"
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles sound configuration into synthesis steps.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewProvider creates a sound Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner) *Provider {
	return &Provider{fs: fs, runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sound"
}

// Compile transforms sound configuration into executable steps.
// The synthesizer binary and voice model paths come from the shared
// manifest variables, resolved from the piper section.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("sound")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	piperBin := ctx.Var("piper_binary")
	modelPath := ctx.Var("voice_model")
	if piperBin == "" || modelPath == "" {
		return nil, fmt.Errorf("sound requires a piper section to resolve the synthesizer")
	}

	wavPath := filepath.Join(ctx.BaseDir(), cfg.Output)
	return []engine.Step{
		NewSynthStep(cfg.Text, wavPath, piperBin, modelPath, p.fs, p.runner),
	}, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
