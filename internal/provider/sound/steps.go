package sound

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/provider/piper"
)

// SynthStepID returns the step ID for synthesizing the given output file.
func SynthStepID(output string) engine.StepID {
	return engine.MustNewStepID("sound:synth:" + path.Base(output))
}

// SynthStep speaks a line of text into a WAV file using the piper binary.
type SynthStep struct {
	text      string
	wavPath   string
	piperBin  string
	modelPath string
	id        engine.StepID
	fs        ports.FileSystem
	runner    ports.CommandRunner
}

// NewSynthStep creates a SynthStep. wavPath, piperBin, and modelPath are
// resolved absolute paths.
func NewSynthStep(text, wavPath, piperBin, modelPath string, fs ports.FileSystem, runner ports.CommandRunner) *SynthStep {
	return &SynthStep{
		text:      text,
		wavPath:   wavPath,
		piperBin:  piperBin,
		modelPath: modelPath,
		id:        SynthStepID(wavPath),
		fs:        fs,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *SynthStep) ID() engine.StepID {
	return s.id
}

// Description returns the step summary.
func (s *SynthStep) Description() string {
	return fmt.Sprintf("synthesize %q to %s", s.text, s.wavPath)
}

// DependsOn returns the step dependencies: the synthesizer binary and its
// voice model must be in place first.
func (s *SynthStep) DependsOn() []engine.StepID {
	return []engine.StepID{
		piper.ExecutableStepID,
		piper.VoiceModelStepID,
		piper.VoiceConfigStepID,
	}
}

// Check determines whether the WAV already exists.
func (s *SynthStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	if s.fs.Exists(s.wavPath) {
		return engine.StatusSatisfied, nil
	}
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *SynthStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "wav", s.wavPath, s.text), nil
}

// Apply pipes the text through the synthesizer.
func (s *SynthStep) Apply(ctx engine.RunContext) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.wavPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	result, err := s.runner.RunWithInput(ctx.Context(), s.text, s.piperBin,
		"--model", s.modelPath, "--output_file", s.wavPath)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("piper synthesis failed: %s", result.Stderr)
	}
	return nil
}
