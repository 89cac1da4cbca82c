// Package execution turns a step graph into a plan and runs it, producing
// an ordered report of per-step outcomes.
package execution

import (
	"time"

	"github.com/pireader/provision/internal/domain/engine"
)

// Skip and satisfaction reasons recorded on StepResults.
const (
	ReasonAlreadySatisfied = "precondition already satisfied"
	ReasonDependencyFailed = "dependency failed"
	ReasonRunCanceled      = "run canceled"
)

// StepResult captures the outcome of one step in one run.
// Exactly one StepResult is produced per registered step per run.
type StepResult struct {
	stepID      engine.StepID
	description string
	status      engine.StepStatus
	reason      string
	err         error
	duration    time.Duration
	diff        engine.Diff
}

// NewStepResult creates a StepResult.
func NewStepResult(stepID engine.StepID, status engine.StepStatus, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step.
func (r StepResult) StepID() engine.StepID {
	return r.stepID
}

// Description returns the step's human-readable summary.
func (r StepResult) Description() string {
	return r.description
}

// Status returns the final status of the step.
func (r StepResult) Status() engine.StepStatus {
	return r.status
}

// Reason returns why the step was skipped or satisfied without action.
func (r StepResult) Reason() string {
	return r.reason
}

// Error returns the error that failed the step, if any.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step's action took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the change that was applied, if any.
func (r StepResult) Diff() engine.Diff {
	return r.diff
}

// Success reports whether the step ended in a non-failed state.
func (r StepResult) Success() bool {
	return r.status != engine.StatusFailed
}

// WithDescription returns a StepResult with the description set.
func (r StepResult) WithDescription(d string) StepResult {
	r.description = d
	return r
}

// WithReason returns a StepResult with the reason set.
func (r StepResult) WithReason(reason string) StepResult {
	r.reason = reason
	return r
}

// WithDuration returns a StepResult with the duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a StepResult with the diff set.
func (r StepResult) WithDiff(d engine.Diff) StepResult {
	r.diff = d
	return r
}
