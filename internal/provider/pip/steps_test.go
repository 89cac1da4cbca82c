package pip_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/provider/pip"
	"github.com/pireader/provision/internal/testutil/mocks"
)

func TestPackageStep_ID(t *testing.T) {
	t.Parallel()

	step := pip.NewPackageStep(pip.Package{Name: "pyspellchecker"}, mocks.NewCommandRunner())

	assert.Equal(t, "pip:package:pyspellchecker", step.ID().String())
}

func TestPackageStep_Check_Installed(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("pip3", []string{"show", "pyspellchecker"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "Name: pyspellchecker\nVersion: 0.8.1\n",
	})

	step := pip.NewPackageStep(pip.Package{Name: "pyspellchecker"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)
}

func TestPackageStep_Check_NotInstalled(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("pip3", []string{"show", "pyspellchecker"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "WARNING: Package(s) not found: pyspellchecker",
	})

	step := pip.NewPackageStep(pip.Package{Name: "pyspellchecker"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestPackageStep_Apply_BreaksSystemPackages(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("pip3", []string{"install", "--break-system-packages", "pyspellchecker"}, ports.CommandResult{ExitCode: 0})

	step := pip.NewPackageStep(pip.Package{Name: "pyspellchecker"}, runner)

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Args, "--break-system-packages")
}

func TestPackageStep_Apply_Fails(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("pip3", []string{"install", "--break-system-packages", "pyspellchecker"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "error: externally-managed-environment",
	})

	step := pip.NewPackageStep(pip.Package{Name: "pyspellchecker"}, runner)

	err := step.Apply(engine.NewRunContext(context.Background()))
	assert.ErrorContains(t, err, "pip3 install pyspellchecker failed")
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	provider := pip.NewProvider(mocks.NewCommandRunner())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"pip": map[string]interface{}{
			"packages": []interface{}{"pyspellchecker"},
		},
	})

	steps, err := provider.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "pip:package:pyspellchecker", steps[0].ID().String())
}

func TestProvider_Compile_BadEntry(t *testing.T) {
	t.Parallel()

	provider := pip.NewProvider(mocks.NewCommandRunner())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"pip": map[string]interface{}{
			"packages": []interface{}{42},
		},
	})

	_, err := provider.Compile(ctx)
	assert.Error(t, err)
}
