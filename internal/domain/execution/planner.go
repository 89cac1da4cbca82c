package execution

import (
	"context"
	"fmt"

	"github.com/pireader/provision/internal/domain/engine"
)

// Planner generates a Plan from a Graph by checking each step's current state.
type Planner struct{}

// NewPlanner creates a Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step and returns entries in topological order.
// A failing Check does not abort planning: the entry is recorded as unknown
// and the executor attempts the action anyway.
func (p *Planner) Plan(ctx context.Context, graph *engine.Graph) (*Plan, error) {
	plan := NewPlan()

	steps, err := graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to sort steps: %w", err)
	}

	runCtx := engine.NewRunContext(ctx)

	for _, step := range steps {
		plan.Add(p.planStep(step, runCtx))
	}

	return plan, nil
}

// planStep checks a single step and produces its plan entry.
func (p *Planner) planStep(step engine.Step, ctx engine.RunContext) PlanEntry {
	status, err := step.Check(ctx)
	if err != nil {
		status = engine.StatusUnknown
	}

	var diff engine.Diff
	if status != engine.StatusSatisfied {
		if d, planErr := step.Plan(ctx); planErr == nil {
			diff = d
		}
	}

	return NewPlanEntry(step, status, diff)
}
