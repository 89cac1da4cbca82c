// Package ports defines interfaces for the engine's external collaborators:
// shell commands, the filesystem, HTTP downloads, and logging.
package ports

import "context"

// CommandResult is the outcome of one command invocation.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation, for test doubles.
type CommandCall struct {
	Command string
	Args    []string
	Input   string
}

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunWithInput executes a command with the given string on stdin.
	// Used for steps that feed text into the TTS binary.
	RunWithInput(ctx context.Context, input, command string, args ...string) (CommandResult, error)
}
