package execution

import (
	"github.com/pireader/provision/internal/domain/engine"
)

// PlanEntry pairs a step with its checked status and planned change.
type PlanEntry struct {
	step   engine.Step
	status engine.StepStatus
	diff   engine.Diff
}

// NewPlanEntry creates a PlanEntry.
func NewPlanEntry(step engine.Step, status engine.StepStatus, diff engine.Diff) PlanEntry {
	return PlanEntry{
		step:   step,
		status: status,
		diff:   diff,
	}
}

// Step returns the step to be executed.
func (e PlanEntry) Step() engine.Step {
	return e.step
}

// Status returns the checked status of the step.
func (e PlanEntry) Status() engine.StepStatus {
	return e.status
}

// Diff returns the planned change.
func (e PlanEntry) Diff() engine.Diff {
	return e.diff
}

// PlanSummary aggregates plan statistics.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
}

// Plan is the ordered list of steps for one run, in topological order.
type Plan struct {
	entries []PlanEntry
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{entries: make([]PlanEntry, 0)}
}

// Add appends a plan entry.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns all plan entries in execution order.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// HasChanges reports whether any step needs its action run.
func (p *Plan) HasChanges() bool {
	for _, e := range p.entries {
		if e.status == engine.StatusNeedsApply || e.status == engine.StatusUnknown {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.status {
		case engine.StatusNeedsApply:
			summary.NeedsApply++
		case engine.StatusSatisfied:
			summary.Satisfied++
		case engine.StatusUnknown:
			summary.Unknown++
		case engine.StatusApplied, engine.StatusFailed, engine.StatusSkipped:
			// Terminal statuses never appear in a freshly planned entry.
		}
	}
	return summary
}
