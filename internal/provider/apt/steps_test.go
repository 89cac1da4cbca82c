package apt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/provider/apt"
	"github.com/pireader/provision/internal/testutil/mocks"
)

var dpkgQueryArgs = []string{"-W", "-f=${Package}\t${db:Status-Status}\n", "tesseract-ocr"}

func TestPackageStep_ID(t *testing.T) {
	t.Parallel()

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, mocks.NewCommandRunner())

	assert.Equal(t, "apt:package:tesseract-ocr", step.ID().String())
	assert.Empty(t, step.DependsOn())
}

func TestPackageStep_Check_Installed(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", dpkgQueryArgs, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "tesseract-ocr\tinstalled\n",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)
}

func TestPackageStep_Check_NotInstalled(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", dpkgQueryArgs, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "dpkg-query: no packages found matching tesseract-ocr",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestPackageStep_Check_NotFullyInstalled(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", dpkgQueryArgs, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "tesseract-ocr\tconfig-files\n",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestPackageStep_Check_HalfInstalled(t *testing.T) {
	t.Parallel()

	// An interrupted apt-get leaves half-installed; a re-run must converge it.
	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", dpkgQueryArgs, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "tesseract-ocr\thalf-installed\n",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestPackageStep_Check_NotInstalledStatus(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", dpkgQueryArgs, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "tesseract-ocr\tnot-installed\n",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	status, err := step.Check(engine.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestPackageStep_Apply(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "tesseract-ocr"}, ports.CommandResult{ExitCode: 0})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sudo", calls[0].Command)
}

func TestPackageStep_Apply_PinnedVersion(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "alsa-utils=1.2.8-1"}, ports.CommandResult{ExitCode: 0})

	step := apt.NewPackageStep(apt.Package{Name: "alsa-utils", Version: "1.2.8-1"}, runner)

	require.NoError(t, step.Apply(engine.NewRunContext(context.Background())))
}

func TestPackageStep_Apply_InstallFails(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "tesseract-ocr"}, ports.CommandResult{
		ExitCode: 100,
		Stderr:   "E: Unable to locate package",
	})

	step := apt.NewPackageStep(apt.Package{Name: "tesseract-ocr"}, runner)

	err := step.Apply(engine.NewRunContext(context.Background()))
	assert.ErrorContains(t, err, "Unable to locate package")
}

func TestPackageStep_Apply_RejectsInjection(t *testing.T) {
	t.Parallel()

	step := apt.NewPackageStep(apt.Package{Name: "pkg; rm -rf /"}, mocks.NewCommandRunner())

	err := step.Apply(engine.NewRunContext(context.Background()))
	assert.ErrorContains(t, err, "invalid package name")
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	provider := apt.NewProvider(mocks.NewCommandRunner())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"apt": map[string]interface{}{
			"packages": []interface{}{
				"tesseract-ocr",
				map[string]interface{}{"name": "alsa-utils", "version": "1.2.8-1"},
			},
		},
	})

	steps, err := provider.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "apt:package:tesseract-ocr", steps[0].ID().String())
	assert.Equal(t, "apt:package:alsa-utils", steps[1].ID().String())
}

func TestProvider_Compile_NoSection(t *testing.T) {
	t.Parallel()

	provider := apt.NewProvider(mocks.NewCommandRunner())

	steps, err := provider.Compile(engine.NewCompileContext(nil))
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestProvider_Compile_BadPackages(t *testing.T) {
	t.Parallel()

	provider := apt.NewProvider(mocks.NewCommandRunner())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"apt": map[string]interface{}{"packages": "not-a-list"},
	})

	_, err := provider.Compile(ctx)
	assert.Error(t, err)
}
