package engine

// mockStep is a minimal Step for graph and builder tests.
type mockStep struct {
	id      StepID
	deps    []StepID
	status  StepStatus
	checkFn func(RunContext) (StepStatus, error)
	applyFn func(RunContext) error
}

func newMockStep(id string, deps ...string) *mockStep {
	depIDs := make([]StepID, 0, len(deps))
	for _, d := range deps {
		depIDs = append(depIDs, MustNewStepID(d))
	}
	return &mockStep{
		id:     MustNewStepID(id),
		deps:   depIDs,
		status: StatusNeedsApply,
	}
}

func (s *mockStep) ID() StepID          { return s.id }
func (s *mockStep) Description() string { return "mock " + s.id.String() }
func (s *mockStep) DependsOn() []StepID { return s.deps }

func (s *mockStep) Check(ctx RunContext) (StepStatus, error) {
	if s.checkFn != nil {
		return s.checkFn(ctx)
	}
	return s.status, nil
}

func (s *mockStep) Plan(RunContext) (Diff, error) {
	return NewDiff(DiffTypeAdd, "mock", s.id.String(), ""), nil
}

func (s *mockStep) Apply(ctx RunContext) error {
	if s.applyFn != nil {
		return s.applyFn(ctx)
	}
	return nil
}
