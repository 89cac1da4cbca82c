package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCommand_DryRunMakesNoChanges(t *testing.T) {
	manifest := "files:\n  dirs:\n    - sounds\n"
	manifestPath := filepath.Join(t.TempDir(), "provision.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	baseDir := t.TempDir()
	rootCmd.SetArgs([]string{"apply", "--dry-run", "--config", manifestPath, "--target-dir", baseDir})

	require.NoError(t, rootCmd.Execute())

	// The executor ran in dry-run mode: the plan had changes, yet nothing
	// landed on disk.
	assert.NoDirExists(t, filepath.Join(baseDir, "sounds"))
}
