// Package command provides the real command execution adapter.
package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/pireader/provision/internal/ports"
)

// RealRunner executes actual commands on the host.
type RealRunner struct{}

// NewRealRunner creates a RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes a command and returns its result.
// A non-zero exit code is a result, not an error; only failures to start the
// process are returned as errors.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, "", command, args...)
}

// RunWithInput executes a command with the given string on stdin.
func (r *RealRunner) RunWithInput(ctx context.Context, input, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, input, command, args...)
}

func (r *RealRunner) run(ctx context.Context, input, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
