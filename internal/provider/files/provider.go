package files

import (
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles files configuration into directory and template steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a files Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "files"
}

// Compile transforms files configuration into executable steps.
// Shared manifest variables are available to every template; per-template
// vars override them.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("files")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]engine.Step, 0, len(cfg.Dirs)+len(cfg.Templates))
	for _, dir := range cfg.Dirs {
		steps = append(steps, NewDirStep(dir, filepath.Join(ctx.BaseDir(), dir), p.fs))
	}
	for _, tmpl := range cfg.Templates {
		vars := make(map[string]string, len(ctx.Vars())+len(tmpl.Vars))
		for k, v := range ctx.Vars() {
			vars[k] = v
		}
		for k, v := range tmpl.Vars {
			vars[k] = v
		}
		tmpl.Vars = vars
		steps = append(steps, NewTemplateStep(tmpl, filepath.Join(ctx.BaseDir(), tmpl.Dest), p.fs))
	}
	return steps, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
