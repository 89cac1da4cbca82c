package pip

import (
	"fmt"
	"strings"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/validation"
)

// PackageStep installs one pip package system-wide.
type PackageStep struct {
	pkg    Package
	id     engine.StepID
	runner ports.CommandRunner
}

// NewPackageStep creates a PackageStep.
func NewPackageStep(pkg Package, runner ports.CommandRunner) *PackageStep {
	id := engine.MustNewStepID("pip:package:" + pkg.Name)
	return &PackageStep{
		pkg:    pkg,
		id:     id,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() engine.StepID {
	return s.id
}

// Description returns the step summary.
func (s *PackageStep) Description() string {
	return fmt.Sprintf("install pip package %s", s.pkg.Name)
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []engine.StepID {
	return nil
}

// Check determines whether the package is already installed.
func (s *PackageStep) Check(ctx engine.RunContext) (engine.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "pip3", "show", s.pkg.Name)
	if err != nil {
		return engine.StatusUnknown, err
	}
	if result.Success() && strings.Contains(result.Stdout, "Name:") {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "pip-package", s.pkg.Name, "latest"), nil
}

// Apply installs the package.
// Raspberry Pi OS ships an externally-managed Python environment, so the
// install needs --break-system-packages to land system-wide.
func (s *PackageStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidatePackageName(s.pkg.Name); err != nil {
		return fmt.Errorf("invalid pip package: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "pip3", "install", "--break-system-packages", s.pkg.Name)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("pip3 install %s failed: %s", s.pkg.Name, result.Stderr)
	}
	return nil
}
