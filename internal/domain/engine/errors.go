package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPostconditionNotMet marks a step whose action completed without error
// but whose desired state still does not hold.
var ErrPostconditionNotMet = errors.New("postcondition not met")

// Error codes for graph construction and execution.
const (
	ErrCodeProviderFailed    = "PROVIDER_FAILED"
	ErrCodeStepDuplicate     = "STEP_DUPLICATE"
	ErrCodeDependencyMissing = "DEPENDENCY_MISSING"
	ErrCodeCyclicDependency  = "CYCLIC_DEPENDENCY"
)

// BuildError is a user-facing error for graph construction failures, carrying
// a code and an actionable suggestion.
type BuildError struct {
	Code       string
	Message    string
	Provider   string
	StepID     string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *BuildError) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider %q", e.Provider))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step %q", e.StepID))
	}
	if len(parts) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Underlying
}

// Format returns a multi-line rendering with suggestion and cause.
func (e *BuildError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Provider != "" {
		fmt.Fprintf(&b, "\n  Provider: %s", e.Provider)
	}
	if e.StepID != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.StepID)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}
	return b.String()
}

// NewProviderFailedError wraps a provider compilation failure.
func NewProviderFailedError(provider string, err error) *BuildError {
	return &BuildError{
		Code:       ErrCodeProviderFailed,
		Message:    "provider failed to compile steps",
		Provider:   provider,
		Suggestion: fmt.Sprintf("Check the %s section of your manifest for missing or malformed fields.", provider),
		Underlying: err,
	}
}

// NewStepDuplicateError reports a duplicate step ID.
func NewStepDuplicateError(provider, stepID string) *BuildError {
	return &BuildError{
		Code:       ErrCodeStepDuplicate,
		Message:    "step with this ID already exists in the graph",
		Provider:   provider,
		StepID:     stepID,
		Suggestion: "Each step must have a unique ID. Check for duplicate entries in your manifest.",
		Underlying: ErrDuplicateStep,
	}
}

// NewDependencyMissingError reports a dependency on a nonexistent step.
func NewDependencyMissingError(err error) *BuildError {
	return &BuildError{
		Code:       ErrCodeDependencyMissing,
		Message:    "a step depends on a step that is not registered",
		Suggestion: "Ensure the referenced step is defined; this usually means a provider section is missing.",
		Underlying: err,
	}
}

// NewCyclicDependencyError reports a dependency cycle.
func NewCyclicDependencyError(err error) *BuildError {
	return &BuildError{
		Code:       ErrCodeCyclicDependency,
		Message:    "cyclic dependency detected between steps",
		Suggestion: "Review depends_on relations to break the circular chain.",
		Underlying: err,
	}
}
