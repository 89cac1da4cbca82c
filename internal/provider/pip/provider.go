package pip

import (
	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles pip configuration into package steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a pip Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "pip"
}

// Compile transforms pip configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("pip")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]engine.Step, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		steps = append(steps, NewPackageStep(pkg, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
