package probe

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
	"github.com/pireader/provision/internal/provider/sound"
	"github.com/pireader/provision/internal/validation"
)

// Step IDs within this provider.
var (
	CameraStepID = engine.MustNewStepID("probe:camera")
	AudioStepID  = engine.MustNewStepID("probe:audio")
	GPIOStepID   = engine.MustNewStepID("probe:gpio")
)

// CameraStep captures a test shot to confirm the camera stack works.
type CameraStep struct {
	capturePath string
	fs          ports.FileSystem
	runner      ports.CommandRunner
}

// NewCameraStep creates a CameraStep. capturePath is the resolved absolute
// test shot location.
func NewCameraStep(capturePath string, fs ports.FileSystem, runner ports.CommandRunner) *CameraStep {
	return &CameraStep{
		capturePath: capturePath,
		fs:          fs,
		runner:      runner,
	}
}

// ID returns the step identifier.
func (s *CameraStep) ID() engine.StepID { return CameraStepID }

// Description returns the step summary.
func (s *CameraStep) Description() string {
	return fmt.Sprintf("capture camera test shot to %s", s.capturePath)
}

// DependsOn returns the step dependencies.
func (s *CameraStep) DependsOn() []engine.StepID {
	return nil
}

// Check always reports needs-apply: a probe is satisfied by probing.
func (s *CameraStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *CameraStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeExec, "probe", "camera", s.capturePath), nil
}

// Apply captures a still.
func (s *CameraStep) Apply(ctx engine.RunContext) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.capturePath), 0o755); err != nil {
		return fmt.Errorf("create capture directory: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "rpicam-still",
		"--nopreview", "--timeout", "1000", "-o", s.capturePath)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("camera capture failed: %s", result.Stderr)
	}
	return nil
}

// Verify confirms the test shot landed on disk.
func (s *CameraStep) Verify(_ engine.RunContext) (bool, error) {
	return s.fs.Exists(s.capturePath), nil
}

// AudioStep plays the ready announcement on the configured ALSA device.
type AudioStep struct {
	device  string
	wavPath string
	runner  ports.CommandRunner
}

// NewAudioStep creates an AudioStep. wavPath is the resolved absolute
// announcement file.
func NewAudioStep(device, wavPath string, runner ports.CommandRunner) *AudioStep {
	return &AudioStep{
		device:  device,
		wavPath: wavPath,
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *AudioStep) ID() engine.StepID { return AudioStepID }

// Description returns the step summary.
func (s *AudioStep) Description() string {
	return fmt.Sprintf("play %s on %s", s.wavPath, s.device)
}

// DependsOn returns the step dependencies: the announcement must be
// synthesized before it can be played.
func (s *AudioStep) DependsOn() []engine.StepID {
	return []engine.StepID{sound.SynthStepID(s.wavPath)}
}

// Check always reports needs-apply: a probe is satisfied by probing.
func (s *AudioStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *AudioStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeExec, "probe", "audio", s.device), nil
}

// Apply plays the WAV.
func (s *AudioStep) Apply(ctx engine.RunContext) error {
	if err := validation.ValidateAlsaDevice(s.device); err != nil {
		return fmt.Errorf("invalid audio device: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "aplay", "-D", s.device, s.wavPath)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("audio playback failed: %s", result.Stderr)
	}
	return nil
}

// Verify reports success: playback exiting cleanly was the verification.
func (s *AudioStep) Verify(_ engine.RunContext) (bool, error) {
	return true, nil
}

// GPIOStep confirms a GPIO character device controller is visible.
type GPIOStep struct {
	runner ports.CommandRunner
}

// NewGPIOStep creates a GPIOStep.
func NewGPIOStep(runner ports.CommandRunner) *GPIOStep {
	return &GPIOStep{runner: runner}
}

// ID returns the step identifier.
func (s *GPIOStep) ID() engine.StepID { return GPIOStepID }

// Description returns the step summary.
func (s *GPIOStep) Description() string {
	return "probe GPIO controller"
}

// DependsOn returns the step dependencies.
func (s *GPIOStep) DependsOn() []engine.StepID {
	return nil
}

// Check always reports needs-apply: a probe is satisfied by probing.
func (s *GPIOStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	return engine.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *GPIOStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeExec, "probe", "gpio", "gpiodetect"), nil
}

// Apply lists GPIO controllers and requires at least one chip.
func (s *GPIOStep) Apply(ctx engine.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "gpiodetect")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("gpiodetect failed: %s", result.Stderr)
	}
	if !strings.Contains(result.Stdout, "gpiochip") {
		return fmt.Errorf("no GPIO controller found")
	}
	return nil
}

// Verify reports success: the chip listing was the verification.
func (s *GPIOStep) Verify(_ engine.RunContext) (bool, error) {
	return true, nil
}
