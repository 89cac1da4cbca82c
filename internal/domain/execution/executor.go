package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/pireader/provision/internal/domain/engine"
)

// Executor runs the steps of a Plan strictly in order, one at a time.
// Steps mutate shared external state (filesystem, package database), so no
// step ever runs concurrently with another.
type Executor struct {
	dryRun bool
}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithDryRun returns an Executor that reports planned actions without applying.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	return &Executor{dryRun: dryRun}
}

// Execute runs every plan entry and returns the Report.
// A failed step never aborts the run: dependents are skipped and independent
// steps still execute, so the report shows the full blast radius of one run.
func (e *Executor) Execute(ctx context.Context, plan *Plan) *Report {
	start := time.Now()
	results := make([]StepResult, 0, plan.Len())
	failed := make(map[string]bool)
	canceled := false

	runCtx := engine.NewRunContext(ctx).WithDryRun(e.dryRun)

	for _, entry := range plan.Entries() {
		if canceled {
			results = append(results, skippedResult(entry, ReasonRunCanceled))
			continue
		}

		select {
		case <-ctx.Done():
			canceled = true
			results = append(results, skippedResult(entry, ReasonRunCanceled))
			continue
		default:
		}

		result := e.executeEntry(entry, runCtx, failed)
		results = append(results, result)

		if result.Status() == engine.StatusFailed {
			failed[entry.Step().ID().String()] = true
		}
	}

	return NewReport(results, start, time.Since(start))
}

// executeEntry runs a single plan entry through the check/apply/verify cycle.
func (e *Executor) executeEntry(entry PlanEntry, ctx engine.RunContext, failed map[string]bool) StepResult {
	step := entry.Step()
	stepID := step.ID()

	// Precondition already held at plan time: the idempotency guarantee.
	if entry.Status() == engine.StatusSatisfied {
		return NewStepResult(stepID, engine.StatusSatisfied, nil).
			WithDescription(step.Description()).
			WithReason(ReasonAlreadySatisfied)
	}

	// A failed dependency propagates as a skip, not an abort.
	for _, depID := range step.DependsOn() {
		if failed[depID.String()] {
			return skippedResult(entry, ReasonDependencyFailed)
		}
	}

	if ctx.DryRun() {
		return NewStepResult(stepID, entry.Status(), nil).
			WithDescription(step.Description()).
			WithDiff(entry.Diff())
	}

	start := time.Now()
	err := step.Apply(ctx)
	duration := time.Since(start)

	if err != nil {
		return NewStepResult(stepID, engine.StatusFailed, err).
			WithDescription(step.Description()).
			WithDuration(duration)
	}

	// The action reported success; confirm the desired state actually exists.
	ok, err := e.verify(step, ctx)
	if err != nil {
		return NewStepResult(stepID, engine.StatusFailed, fmt.Errorf("verify: %w", err)).
			WithDescription(step.Description()).
			WithDuration(duration)
	}
	if !ok {
		return NewStepResult(stepID, engine.StatusFailed, engine.ErrPostconditionNotMet).
			WithDescription(step.Description()).
			WithDuration(duration)
	}

	return NewStepResult(stepID, engine.StatusApplied, nil).
		WithDescription(step.Description()).
		WithDuration(duration).
		WithDiff(entry.Diff())
}

// verify confirms a step's postcondition, preferring an explicit Verifier and
// falling back to re-running Check.
func (e *Executor) verify(step engine.Step, ctx engine.RunContext) (bool, error) {
	if v := engine.AsVerifier(step); v != nil {
		return v.Verify(ctx)
	}

	status, err := step.Check(ctx)
	if err != nil {
		return false, err
	}
	return status == engine.StatusSatisfied, nil
}

func skippedResult(entry PlanEntry, reason string) StepResult {
	return NewStepResult(entry.Step().ID(), engine.StatusSkipped, nil).
		WithDescription(entry.Step().Description()).
		WithReason(reason)
}
