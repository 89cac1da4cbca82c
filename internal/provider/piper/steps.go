package piper

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/validation"
)

// Step IDs within this provider, referenced by dependents.
var (
	// DirStepID is the install directory step.
	DirStepID = engine.MustNewStepID("piper:dir")
	// DownloadStepID is the release archive download step.
	DownloadStepID = engine.MustNewStepID("piper:download")
	// ExtractStepID is the archive extraction step.
	ExtractStepID = engine.MustNewStepID("piper:extract")
	// ExecutableStepID is the binary mode-bits step.
	ExecutableStepID = engine.MustNewStepID("piper:executable")
	// VoiceModelStepID is the onnx weights download step.
	VoiceModelStepID = engine.MustNewStepID("piper:voice-model")
	// VoiceConfigStepID is the model sidecar download step.
	VoiceConfigStepID = engine.MustNewStepID("piper:voice-config")
)

// DirStep ensures the install directory exists.
type DirStep struct {
	dir string
	fs  ports.FileSystem
}

// NewDirStep creates a DirStep for the given absolute directory.
func NewDirStep(dir string, fs ports.FileSystem) *DirStep {
	return &DirStep{dir: dir, fs: fs}
}

// ID returns the step identifier.
func (s *DirStep) ID() engine.StepID { return DirStepID }

// Description returns the step summary.
func (s *DirStep) Description() string {
	return fmt.Sprintf("create install directory %s", s.dir)
}

// DependsOn returns the step dependencies.
func (s *DirStep) DependsOn() []engine.StepID { return nil }

// Check reports satisfied when the directory already exists.
func (s *DirStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.IsDir(s.dir) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DirStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "directory", s.dir, ""), nil
}

// Apply creates the directory.
func (s *DirStep) Apply(_ engine.RunContext) error {
	if err := validation.ValidatePath(s.dir); err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}
	return s.fs.MkdirAll(s.dir, 0o755)
}

// DownloadStep fetches the release archive into the install directory.
type DownloadStep struct {
	url         string
	archivePath string
	binaryPath  string
	fs          ports.FileSystem
	fetcher     ports.Fetcher
}

// NewDownloadStep creates a DownloadStep.
func NewDownloadStep(url, archivePath, binaryPath string, fs ports.FileSystem, fetcher ports.Fetcher) *DownloadStep {
	return &DownloadStep{
		url:         url,
		archivePath: archivePath,
		binaryPath:  binaryPath,
		fs:          fs,
		fetcher:     fetcher,
	}
}

// ID returns the step identifier.
func (s *DownloadStep) ID() engine.StepID { return DownloadStepID }

// Description returns the step summary.
func (s *DownloadStep) Description() string {
	return fmt.Sprintf("download piper release from %s", s.url)
}

// DependsOn returns the step dependencies.
func (s *DownloadStep) DependsOn() []engine.StepID {
	return []engine.StepID{DirStepID}
}

// Check reports satisfied when the archive, or the binary it yields,
// already exists. An extracted install never re-downloads.
func (s *DownloadStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.Exists(s.binaryPath) || s.fs.Exists(s.archivePath) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DownloadStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "archive", s.archivePath, s.url), nil
}

// Apply downloads the archive.
func (s *DownloadStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateURL(s.url); err != nil {
		return fmt.Errorf("invalid archive URL: %w", err)
	}
	return s.fetcher.Fetch(ctx.Context(), s.url, s.archivePath)
}

// Verify confirms the archive (or an already extracted binary) exists.
func (s *DownloadStep) Verify(_ engine.RunContext) (bool, error) {
	return s.fs.Exists(s.archivePath) || s.fs.Exists(s.binaryPath), nil
}

// ExtractStep unpacks the release archive.
// Upstream piper tarballs carry a leading "piper/" component, so extraction
// targets the parent of the install directory.
type ExtractStep struct {
	archivePath string
	destDir     string
	binaryPath  string
	fs          ports.FileSystem
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(archivePath, destDir, binaryPath string, fs ports.FileSystem) *ExtractStep {
	return &ExtractStep{
		archivePath: archivePath,
		destDir:     destDir,
		binaryPath:  binaryPath,
		fs:          fs,
	}
}

// ID returns the step identifier.
func (s *ExtractStep) ID() engine.StepID { return ExtractStepID }

// Description returns the step summary.
func (s *ExtractStep) Description() string {
	return fmt.Sprintf("extract %s", filepath.Base(s.archivePath))
}

// DependsOn returns the step dependencies.
func (s *ExtractStep) DependsOn() []engine.StepID {
	return []engine.StepID{DownloadStepID}
}

// Check reports satisfied when the binary is already in place.
func (s *ExtractStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.Exists(s.binaryPath) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ExtractStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "binary", s.binaryPath, s.archivePath), nil
}

// Apply extracts the archive.
func (s *ExtractStep) Apply(_ engine.RunContext) error {
	return extractTarGz(s.archivePath, s.destDir)
}

// ExecutableStep ensures the extracted binary carries execute permission.
type ExecutableStep struct {
	binaryPath string
	fs         ports.FileSystem
}

// NewExecutableStep creates an ExecutableStep.
func NewExecutableStep(binaryPath string, fs ports.FileSystem) *ExecutableStep {
	return &ExecutableStep{binaryPath: binaryPath, fs: fs}
}

// ID returns the step identifier.
func (s *ExecutableStep) ID() engine.StepID { return ExecutableStepID }

// Description returns the step summary.
func (s *ExecutableStep) Description() string {
	return fmt.Sprintf("mark %s executable", s.binaryPath)
}

// DependsOn returns the step dependencies.
func (s *ExecutableStep) DependsOn() []engine.StepID {
	return []engine.StepID{ExtractStepID}
}

// Check reports satisfied when any execute bit is set.
func (s *ExecutableStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	info, err := s.fs.Stat(s.binaryPath)
	if err != nil {
		return engine.StatusNeedsApply, nil
	}
	if info.Mode&0o111 != 0 {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ExecutableStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeModify, "mode", s.binaryPath, "0755"), nil
}

// Apply sets the binary's mode bits.
func (s *ExecutableStep) Apply(_ engine.RunContext) error {
	return s.fs.Chmod(s.binaryPath, 0o755)
}

// FetchFileStep downloads a single file (voice model or its sidecar).
type FetchFileStep struct {
	id          engine.StepID
	description string
	url         string
	dest        string
	fs          ports.FileSystem
	fetcher     ports.Fetcher
}

// NewVoiceModelStep creates the step that fetches the onnx weights.
func NewVoiceModelStep(url, dest string, fs ports.FileSystem, fetcher ports.Fetcher) *FetchFileStep {
	return &FetchFileStep{
		id:          VoiceModelStepID,
		description: fmt.Sprintf("download voice model %s", path.Base(dest)),
		url:         url,
		dest:        dest,
		fs:          fs,
		fetcher:     fetcher,
	}
}

// NewVoiceConfigStep creates the step that fetches the model's JSON sidecar.
func NewVoiceConfigStep(url, dest string, fs ports.FileSystem, fetcher ports.Fetcher) *FetchFileStep {
	return &FetchFileStep{
		id:          VoiceConfigStepID,
		description: fmt.Sprintf("download voice config %s", path.Base(dest)),
		url:         url,
		dest:        dest,
		fs:          fs,
		fetcher:     fetcher,
	}
}

// ID returns the step identifier.
func (s *FetchFileStep) ID() engine.StepID { return s.id }

// Description returns the step summary.
func (s *FetchFileStep) Description() string { return s.description }

// DependsOn returns the step dependencies.
func (s *FetchFileStep) DependsOn() []engine.StepID {
	return []engine.StepID{DirStepID}
}

// Check reports satisfied when the file already exists.
func (s *FetchFileStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.Exists(s.dest) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *FetchFileStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "file", s.dest, s.url), nil
}

// Apply downloads the file.
func (s *FetchFileStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateURL(s.url); err != nil {
		return fmt.Errorf("invalid voice URL: %w", err)
	}
	return s.fetcher.Fetch(ctx.Context(), s.url, s.dest)
}
