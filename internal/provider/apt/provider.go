package apt

import (
	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles apt configuration into package steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates an apt Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "apt"
}

// Compile transforms apt configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("apt")
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
