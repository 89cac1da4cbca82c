// Package integration provides test utilities for integration testing.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pireader/provision/internal/app"
)

// TestHarness wires a Provision application against a throwaway base dir.
type TestHarness struct {
	T       *testing.T
	BaseDir string
	Output  *bytes.Buffer

	provision *app.Provision
}

// NewHarness creates a new test harness.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	output := &bytes.Buffer{}

	return &TestHarness{
		T:         t,
		BaseDir:   t.TempDir(),
		Output:    output,
		provision: app.New(output),
	}
}

// Provision returns the application instance.
func (h *TestHarness) Provision() *app.Provision {
	return h.provision
}

// CreateManifest writes a manifest into the temp dir and returns its path.
// The harness base dir is prepended as the defaults block.
func (h *TestHarness) CreateManifest(sections string) string {
	h.T.Helper()

	manifest := "defaults:\n  base_dir: " + h.BaseDir + "\n" + sections

	path := filepath.Join(h.T.TempDir(), "provision.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		h.T.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

// CreateFile creates a file under the base dir.
func (h *TestHarness) CreateFile(relativePath, content string) string {
	h.T.Helper()

	path := filepath.Join(h.BaseDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write file: %v", err)
	}
	return path
}

// FileExists reports whether a path exists under the base dir.
func (h *TestHarness) FileExists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(h.BaseDir, relativePath))
	return err == nil
}
