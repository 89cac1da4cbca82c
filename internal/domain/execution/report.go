package execution

import (
	"time"

	"github.com/google/uuid"

	"github.com/pireader/provision/internal/domain/engine"
)

// ReportSummary aggregates per-status counts for one run.
type ReportSummary struct {
	Total     int
	Applied   int
	Satisfied int
	Failed    int
	Skipped   int
}

// Report is the ordered record of every step's outcome for one run.
// It is created when the run ends and never mutated afterwards.
type Report struct {
	id        uuid.UUID
	startedAt time.Time
	duration  time.Duration
	results   []StepResult
}

// NewReport creates a Report over the given results.
func NewReport(results []StepResult, startedAt time.Time, duration time.Duration) *Report {
	copied := make([]StepResult, len(results))
	copy(copied, results)
	return &Report{
		id:        uuid.New(),
		startedAt: startedAt,
		duration:  duration,
		results:   copied,
	}
}

// ID returns the unique run identifier.
func (r *Report) ID() uuid.UUID {
	return r.id
}

// StartedAt returns when the run began.
func (r *Report) StartedAt() time.Time {
	return r.startedAt
}

// Duration returns the total run duration.
func (r *Report) Duration() time.Duration {
	return r.duration
}

// Results returns every step's result in execution order.
func (r *Report) Results() []StepResult {
	results := make([]StepResult, len(r.results))
	copy(results, r.results)
	return results
}

// Failed reports whether any step in the run failed.
// Callers derive the process exit code from this.
func (r *Report) Failed() bool {
	for i := range r.results {
		if r.results[i].Status() == engine.StatusFailed {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (r *Report) Summary() ReportSummary {
	summary := ReportSummary{Total: len(r.results)}
	for i := range r.results {
		switch r.results[i].Status() {
		case engine.StatusApplied:
			summary.Applied++
		case engine.StatusSatisfied:
			summary.Satisfied++
		case engine.StatusFailed:
			summary.Failed++
		case engine.StatusSkipped:
			summary.Skipped++
		case engine.StatusNeedsApply, engine.StatusUnknown:
			// Dry runs report unexecuted entries with their planned status.
		}
	}
	return summary
}
