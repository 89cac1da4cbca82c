// Package app wires the providers, adapters, and engine into the
// provision application.
package app

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/pireader/provision/internal/adapters/command"
	"github.com/pireader/provision/internal/adapters/fetch"
	"github.com/pireader/provision/internal/adapters/filesystem"
	"github.com/pireader/provision/internal/adapters/logging"
	"github.com/pireader/provision/internal/domain/config"
	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/domain/execution"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/provider/apt"
	"github.com/pireader/provision/internal/provider/bootcfg"
	"github.com/pireader/provision/internal/provider/files"
	"github.com/pireader/provision/internal/provider/pip"
	"github.com/pireader/provision/internal/provider/piper"
	"github.com/pireader/provision/internal/provider/probe"
	"github.com/pireader/provision/internal/provider/sound"
)

// DefaultBaseDir is the installation root when the manifest sets none.
const DefaultBaseDir = "~/reader"

// Provision is the main application orchestrator.
type Provision struct {
	builder  *engine.Builder
	planner  *execution.Planner
	executor *execution.Executor
	loader   *config.Loader
	logger   ports.Logger
	out      io.Writer
	baseDir  string
}

// New creates a Provision application wired to the real system.
func New(out io.Writer) *Provision {
	runner := command.NewRealRunner()
	fs := filesystem.NewRealFileSystem()
	fetcher := fetch.NewRestyFetcher()

	builder := engine.NewBuilder()
	builder.RegisterProvider(apt.NewProvider(runner))
	builder.RegisterProvider(pip.NewProvider(runner))
	builder.RegisterProvider(piper.NewProvider(fs, fetcher))
	builder.RegisterProvider(files.NewProvider(fs))
	builder.RegisterProvider(sound.NewProvider(fs, runner))
	builder.RegisterProvider(bootcfg.NewProvider(fs))
	builder.RegisterProvider(probe.NewProvider(fs, runner))

	return &Provision{
		builder:  builder,
		planner:  execution.NewPlanner(),
		executor: execution.NewExecutor(),
		loader:   config.NewLoader(),
		logger:   logging.NewNopLogger(),
		out:      out,
	}
}

// WithLogger sets the application logger.
func (p *Provision) WithLogger(logger ports.Logger) *Provision {
	p.logger = logger
	return p
}

// WithBuilder replaces the step builder, for tests that wire doubles.
func (p *Provision) WithBuilder(builder *engine.Builder) *Provision {
	p.builder = builder
	return p
}

// WithBaseDir overrides the manifest's base dir. An empty dir keeps the
// manifest's value.
func (p *Provision) WithBaseDir(dir string) *Provision {
	p.baseDir = dir
	return p
}

// Plan loads the manifest, compiles the step graph, and checks every step.
// configPath may be empty: the embedded default manifest is used.
func (p *Provision) Plan(ctx context.Context, configPath string) (*execution.Plan, error) {
	manifest, err := p.loadManifest(configPath)
	if err != nil {
		return nil, err
	}
	if p.baseDir != "" {
		manifest.Defaults.BaseDir = p.baseDir
	}

	compileCtx := CompileContext(manifest)
	p.logger.Debug(ctx, "compiling manifest",
		ports.F("base_dir", compileCtx.BaseDir()),
		ports.F("sections", len(manifest.Sections)))

	graph, err := p.builder.Build(compileCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to build step graph: %w", err)
	}

	ctx = ports.ContextWithLogger(ctx, p.logger)
	plan, err := p.planner.Plan(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}

	p.logger.Info(ctx, "plan ready",
		ports.F("steps", plan.Len()),
		ports.F("to_apply", plan.Summary().NeedsApply))
	return plan, nil
}

// Apply executes the plan and returns the run report.
func (p *Provision) Apply(ctx context.Context, plan *execution.Plan, dryRun bool) *execution.Report {
	ctx = ports.ContextWithLogger(ctx, p.logger)
	report := p.executor.WithDryRun(dryRun).Execute(ctx, plan)

	summary := report.Summary()
	p.logger.Info(ctx, "run finished",
		ports.F("run_id", report.ID().String()),
		ports.F("applied", summary.Applied),
		ports.F("satisfied", summary.Satisfied),
		ports.F("failed", summary.Failed),
		ports.F("skipped", summary.Skipped))
	return report
}

// loadManifest reads the manifest from configPath, falling back to the
// embedded default when no path is given.
func (p *Provision) loadManifest(configPath string) (*config.Manifest, error) {
	if configPath == "" {
		manifest, err := config.ParseYAML(defaultManifest)
		if err != nil {
			return nil, fmt.Errorf("parse embedded manifest: %w", err)
		}
		return manifest, nil
	}
	return p.loader.Load(configPath)
}

// CompileContext derives the provider compile context from a manifest:
// the resolved base dir plus shared variables, including the synthesizer
// paths cross-referenced by the sound and probe providers.
func CompileContext(m *config.Manifest) engine.CompileContext {
	baseDir := m.Defaults.BaseDir
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	baseDir = ports.ExpandPath(baseDir)

	vars := make(map[string]string, len(m.Defaults.Vars)+5)
	for k, v := range m.Defaults.Vars {
		vars[k] = v
	}
	vars["base_dir"] = baseDir
	if m.Defaults.AudioDevice != "" {
		vars["audio_device"] = m.Defaults.AudioDevice
	}

	if raw, ok := m.Sections["piper"].(map[string]interface{}); ok {
		if cfg, err := piper.ParseConfig(raw); err == nil {
			vars["piper_binary"] = filepath.Join(baseDir, cfg.Dir, cfg.Binary)
			vars["voice_model"] = filepath.Join(baseDir, cfg.Dir, path.Base(cfg.Voice.ModelURL))
		}
	}
	if raw, ok := m.Sections["sound"].(map[string]interface{}); ok {
		if cfg, err := sound.ParseConfig(raw); err == nil {
			vars["ready_wav"] = filepath.Join(baseDir, cfg.Output)
		}
	}

	return engine.NewCompileContext(m.Config()).
		WithBaseDir(baseDir).
		WithVars(vars)
}
