package files_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/provider/files"
	"github.com/pireader/provision/internal/testutil/mocks"
)

var gpioVars = map[string]string{
	"capture_pin":  "24",
	"repeat_pin":   "23",
	"shutdown_pin": "18",
}

func runCtx() engine.RunContext {
	return engine.NewRunContext(context.Background())
}

func TestDirStep(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := files.NewDirStep("sounds", "/home/pi/reader/sounds", fs)

	assert.Equal(t, "files:dir:sounds", step.ID().String())

	status, err := step.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)

	require.NoError(t, step.Apply(runCtx()))
	assert.True(t, fs.IsDir("/home/pi/reader/sounds"))

	status, err = step.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)
}

func TestTemplateStep_RenderAndWrite(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := files.NewTemplateStep(files.Template{
		Name: "gpio_compat.py",
		Dest: "gpio_compat.py",
		Vars: gpioVars,
	}, "/home/pi/reader/gpio_compat.py", fs)

	assert.Equal(t, "files:template:gpio_compat.py", step.ID().String())

	require.NoError(t, step.Apply(runCtx()))

	content := fs.ContentOf("/home/pi/reader/gpio_compat.py")
	assert.Contains(t, content, "CAPTURE_PIN = 24")
	assert.Contains(t, content, "REPEAT_PIN = 23")
	assert.Contains(t, content, "SHUTDOWN_PIN = 18")
	assert.NotContains(t, content, "{{")
}

func TestTemplateStep_Check_Idempotent(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := files.NewTemplateStep(files.Template{
		Name: "gpio_compat.py",
		Vars: gpioVars,
	}, "/home/pi/reader/gpio_compat.py", fs)

	status, err := step.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)

	require.NoError(t, step.Apply(runCtx()))

	status, err = step.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusSatisfied, status)
}

func TestTemplateStep_Check_DetectsDrift(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile("/home/pi/reader/gpio_compat.py", []byte("# hand-edited\n"), 0o644)

	step := files.NewTemplateStep(files.Template{
		Name: "gpio_compat.py",
		Vars: gpioVars,
	}, "/home/pi/reader/gpio_compat.py", fs)

	status, err := step.Check(runCtx())
	require.NoError(t, err)
	assert.Equal(t, engine.StatusNeedsApply, status)
}

func TestTemplateStep_Mode(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := files.NewTemplateStep(files.Template{
		Name: "gpio_compat.py",
		Mode: "0755",
		Vars: gpioVars,
	}, "/home/pi/reader/gpio_compat.py", fs)

	require.NoError(t, step.Apply(runCtx()))
	assert.EqualValues(t, 0o755, fs.ModeOf("/home/pi/reader/gpio_compat.py"))
}

func TestTemplateStep_UnknownTemplate(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	step := files.NewTemplateStep(files.Template{
		Name: "no_such_file.conf",
	}, "/home/pi/reader/no_such_file.conf", fs)

	err := step.Apply(runCtx())
	assert.ErrorContains(t, err, "unknown template")
}

func TestTemplateNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"gpio_compat.py", "notes.txt"}, files.TemplateNames())
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	provider := files.NewProvider(mocks.NewFileSystem())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"files": map[string]interface{}{
			"dirs": []interface{}{"sounds", "corrections"},
			"templates": []interface{}{
				map[string]interface{}{
					"name": "gpio_compat.py",
					"vars": map[string]interface{}{
						"capture_pin":  "24",
						"repeat_pin":   "23",
						"shutdown_pin": "18",
					},
				},
				map[string]interface{}{
					"name": "notes.txt",
					"dest": "NOTES.txt",
				},
			},
		},
	}).WithBaseDir("/home/pi/reader")

	steps, err := provider.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 4)
	assert.Equal(t, "files:dir:sounds", steps[0].ID().String())
	assert.Equal(t, "files:dir:corrections", steps[1].ID().String())
	assert.Equal(t, "files:template:gpio_compat.py", steps[2].ID().String())
	assert.Equal(t, "files:template:notes.txt", steps[3].ID().String())
}

func TestProvider_Compile_MergesSharedVars(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	provider := files.NewProvider(fs)
	ctx := engine.NewCompileContext(map[string]interface{}{
		"files": map[string]interface{}{
			"templates": []interface{}{
				map[string]interface{}{
					"name": "gpio_compat.py",
					// capture_pin comes from the shared vars; repeat_pin
					// is overridden per template.
					"vars": map[string]interface{}{
						"repeat_pin":   "27",
						"shutdown_pin": "18",
					},
				},
			},
		},
	}).WithBaseDir("/home/pi/reader").WithVars(map[string]string{
		"capture_pin": "24",
		"repeat_pin":  "23",
	})

	steps, err := provider.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	require.NoError(t, steps[0].Apply(runCtx()))
	content := fs.ContentOf("/home/pi/reader/gpio_compat.py")
	assert.Contains(t, content, "CAPTURE_PIN = 24")
	assert.Contains(t, content, "REPEAT_PIN = 27")
	assert.NotContains(t, content, "REPEAT_PIN = 23")
}

func TestProvider_Compile_BadConfig(t *testing.T) {
	t.Parallel()

	provider := files.NewProvider(mocks.NewFileSystem())
	ctx := engine.NewCompileContext(map[string]interface{}{
		"files": map[string]interface{}{
			"templates": []interface{}{"not-an-object"},
		},
	})

	_, err := provider.Compile(ctx)
	assert.ErrorContains(t, err, "template must be an object")
}
