package engine

import "context"

// RunContext carries execution context into Check, Plan, and Apply.
type RunContext struct {
	ctx    context.Context
	dryRun bool
}

// NewRunContext creates a RunContext wrapping the given context.
func NewRunContext(ctx context.Context) RunContext {
	return RunContext{ctx: ctx}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun reports whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// WithDryRun returns a RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	return RunContext{ctx: r.ctx, dryRun: dryRun}
}
