package files

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/validation"
)

// DirStep ensures one working directory exists under the base dir.
type DirStep struct {
	rel  string
	path string
	id   engine.StepID
	fs   ports.FileSystem
}

// NewDirStep creates a DirStep. rel is the manifest-relative name, path the
// resolved absolute directory.
func NewDirStep(rel, path string, fs ports.FileSystem) *DirStep {
	return &DirStep{
		rel:  rel,
		path: path,
		id:   engine.MustNewStepID("files:dir:" + rel),
		fs:   fs,
	}
}

// ID returns the step identifier.
func (s *DirStep) ID() engine.StepID {
	return s.id
}

// Description returns the step summary.
func (s *DirStep) Description() string {
	return fmt.Sprintf("create directory %s", s.path)
}

// DependsOn returns the step dependencies.
func (s *DirStep) DependsOn() []engine.StepID {
	return nil
}

// Check determines whether the directory already exists.
func (s *DirStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.IsDir(s.path) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DirStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "directory", s.path, ""), nil
}

// Apply creates the directory and any missing parents.
func (s *DirStep) Apply(_ engine.RunContext) error {
	if err := validation.ValidatePath(s.rel); err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}
	return s.fs.MkdirAll(s.path, 0o755)
}

// TemplateStep renders an embedded template to a destination file.
type TemplateStep struct {
	tmpl Template
	dest string
	id   engine.StepID
	fs   ports.FileSystem
}

// NewTemplateStep creates a TemplateStep. dest is the resolved absolute
// destination path.
func NewTemplateStep(tmpl Template, dest string, fs ports.FileSystem) *TemplateStep {
	return &TemplateStep{
		tmpl: tmpl,
		dest: dest,
		id:   engine.MustNewStepID("files:template:" + tmpl.Name),
		fs:   fs,
	}
}

// ID returns the step identifier.
func (s *TemplateStep) ID() engine.StepID {
	return s.id
}

// Description returns the step summary.
func (s *TemplateStep) Description() string {
	return fmt.Sprintf("render %s to %s", s.tmpl.Name, s.dest)
}

// DependsOn returns the step dependencies.
func (s *TemplateStep) DependsOn() []engine.StepID {
	return nil
}

// Check renders the template and compares it with the existing file.
func (s *TemplateStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if !s.fs.Exists(s.dest) {
		return engine.StatusNeedsApply, nil
	}

	rendered, err := s.render()
	if err != nil {
		return engine.StatusUnknown, err
	}

	existing, err := s.fs.ReadFile(s.dest)
	if err != nil {
		return engine.StatusUnknown, err
	}

	if bytes.Equal(rendered, existing) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *TemplateStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "template", s.dest, s.tmpl.Name), nil
}

// Apply renders the template and writes the destination.
func (s *TemplateStep) Apply(_ engine.RunContext) error {
	if err := validation.ValidatePath(s.tmpl.Dest); err != nil {
		return fmt.Errorf("invalid destination path: %w", err)
	}

	rendered, err := s.render()
	if err != nil {
		return err
	}

	mode := parseFileMode(s.tmpl.Mode, 0o644)
	if err := s.fs.WriteFile(s.dest, rendered, mode); err != nil {
		return fmt.Errorf("write %s: %w", s.dest, err)
	}
	return nil
}

func (s *TemplateStep) render() ([]byte, error) {
	content, err := templateContent(s.tmpl.Name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(s.tmpl.Name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", s.tmpl.Name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.tmpl.Vars); err != nil {
		return nil, fmt.Errorf("render template %s: %w", s.tmpl.Name, err)
	}
	return buf.Bytes(), nil
}

// parseFileMode parses an octal mode string or returns the default.
func parseFileMode(modeStr string, defaultMode os.FileMode) os.FileMode {
	if modeStr == "" {
		return defaultMode
	}
	var mode uint32
	if _, err := fmt.Sscanf(modeStr, "%o", &mode); err != nil {
		return defaultMode
	}
	return os.FileMode(mode)
}
