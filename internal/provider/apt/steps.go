package apt

import (
	"fmt"
	"strings"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/validation"
)

// PackageStep installs one apt package.
type PackageStep struct {
	pkg    Package
	id     engine.StepID
	runner ports.CommandRunner
}

// NewPackageStep creates a PackageStep.
func NewPackageStep(pkg Package, runner ports.CommandRunner) *PackageStep {
	id := engine.MustNewStepID("apt:package:" + pkg.Name)
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
	return fmt.Sprintf("install apt package %s", s.pkg.Name)
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []engine.StepID {
	return nil
}

// Check determines whether the package is already installed.
func (s *PackageStep) Check(ctx engine.RunContext) (engine.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${Package}\t${db:Status-Status}\n", s.pkg.Name)
	if err != nil {
		return engine.StatusUnknown, err
	}

	// dpkg-query exits 1 when the package is unknown.
	if !result.Success() {
		return engine.StatusNeedsApply, nil
	}
	// Only the exact status counts: half-installed and not-installed name
	// states an interrupted apt-get leaves behind, and a re-run must pick
	// those up again.
	fields := strings.Fields(result.Stdout)
	if len(fields) == 2 && fields[1] == "installed" {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	version := s.pkg.Version
	if version == "" {
		version = "latest"
	}
	return engine.NewDiff(engine.DiffTypeAdd, "package", s.pkg.Name, version), nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidatePackageName(s.pkg.Name); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}
	if s.pkg.Version != "" && s.pkg.Version != "latest" {
		if err := validation.ValidatePackageName(s.pkg.Version); err != nil {
			return fmt.Errorf("invalid package version: %w", err)
		}
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "apt-get", "install", "-y", s.pkg.FullName())
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install %s failed: %s", s.pkg.FullName(), result.Stderr)
	}
	return nil
}
