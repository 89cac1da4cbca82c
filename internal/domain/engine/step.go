package engine

// Step is one declarative unit of desired system state. A step can report
// whether its desired state already holds, describe the change it would make,
// and apply that change. Apply must be idempotent.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Description returns a short human-readable summary of the step.
	Description() string

	// DependsOn returns the IDs of steps that must complete before this one.
	DependsOn() []StepID

	// Check reports the current status of the step's desired state.
	// StatusSatisfied means no action is needed.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what Apply would change.
	Plan(ctx RunContext) (Diff, error)

	// Apply performs the step's action.
	Apply(ctx RunContext) error
}

// Verifier is an optional extension for steps whose postcondition cannot be
// expressed by re-running Check (hardware probes, one-shot smoke tests).
// When a step implements Verifier, the executor calls Verify after a
// successful Apply instead of re-checking.
type Verifier interface {
	Step

	// Verify reports whether the postcondition holds after Apply.
	Verify(ctx RunContext) (bool, error)
}

// AsVerifier casts a step to Verifier, returning nil if unsupported.
func AsVerifier(step Step) Verifier {
	if v, ok := step.(Verifier); ok {
		return v
	}
	return nil
}
