package piper

import (
	"path"
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// Provider compiles piper configuration into install steps.
type Provider struct {
	fs      ports.FileSystem
	fetcher ports.Fetcher
}

// NewProvider creates a piper Provider.
func NewProvider(fs ports.FileSystem, fetcher ports.Fetcher) *Provider {
	return &Provider{fs: fs, fetcher: fetcher}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "piper"
}

// Compile transforms piper configuration into executable steps.
func (p *Provider) Compile(ctx engine.CompileContext) ([]engine.Step, error) {
	rawConfig := ctx.GetSection("piper")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	installDir := filepath.Join(ctx.BaseDir(), cfg.Dir)
	binaryPath := filepath.Join(installDir, cfg.Binary)
	archivePath := filepath.Join(installDir, path.Base(cfg.ArchiveURL))
	modelPath := filepath.Join(installDir, path.Base(cfg.Voice.ModelURL))
	modelConfigPath := filepath.Join(installDir, path.Base(cfg.Voice.ConfigURL))

	// Upstream tarballs carry a leading directory matching cfg.Dir, so the
	// extraction target is the install directory's parent.
	extractDir := filepath.Dir(installDir)

	return []engine.Step{
		NewDirStep(installDir, p.fs),
		NewDownloadStep(cfg.ArchiveURL, archivePath, binaryPath, p.fs, p.fetcher),
		NewExtractStep(archivePath, extractDir, binaryPath, p.fs),
		NewExecutableStep(binaryPath, p.fs),
		NewVoiceModelStep(cfg.Voice.ModelURL, modelPath, p.fs, p.fetcher),
		NewVoiceConfigStep(cfg.Voice.ConfigURL, modelConfigPath, p.fs, p.fetcher),
	}, nil
}

// Ensure Provider implements engine.Provider.
var _ engine.Provider = (*Provider)(nil)
