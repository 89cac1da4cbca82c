package engine

// StepStatus represents the state of a step as observed or produced by a run.
type StepStatus string

const (
	// StatusSatisfied indicates the desired state already holds; no action taken.
	StatusSatisfied StepStatus = "satisfied"
	// StatusNeedsApply indicates the step's action must run.
	StatusNeedsApply StepStatus = "needs-apply"
	// StatusUnknown indicates the current state could not be determined.
	StatusUnknown StepStatus = "unknown"
	// StatusApplied indicates the action ran and the postcondition holds.
	StatusApplied StepStatus = "applied"
	// StatusFailed indicates the action raised an error or the postcondition
	// did not hold afterwards.
	StatusFailed StepStatus = "failed"
	// StatusSkipped indicates the step was not executed (failed dependency,
	// canceled run).
	StatusSkipped StepStatus = "skipped"
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// IsTerminal reports whether this status is a final per-run outcome.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StatusSatisfied, StatusApplied, StatusFailed, StatusSkipped:
		return true
	case StatusNeedsApply, StatusUnknown:
		return false
	}
	return false
}
