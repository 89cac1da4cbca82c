package bootcfg

import (
	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles bootcfg configuration into boot-config entry steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a bootcfg Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "bootcfg"
}

// Compile transforms bootcfg configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("bootcfg")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]engine.Step, 0, len(cfg.Entries))
	for _, entry := range cfg.Entries {
		steps = append(steps, NewEntryStep(cfg.Path, entry, p.fs))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
