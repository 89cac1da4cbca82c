package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/pireader/provision/internal/domain/engine"
)

// fakeStep is a scriptable Step for executor and planner tests.
type fakeStep struct {
	id       engine.StepID
	deps     []engine.StepID
	checkFn  func() (engine.StepStatus, error)
	applyFn  func() error
	applied  int
	verifyFn func() (bool, error)
}

func newFakeStep(id string, deps ...string) *fakeStep {
	depIDs := make([]engine.StepID, 0, len(deps))
	for _, d := range deps {
		depIDs = append(depIDs, engine.MustNewStepID(d))
	}
	s := &fakeStep{id: engine.MustNewStepID(id), deps: depIDs}
	s.checkFn = func() (engine.StepStatus, error) { return engine.StatusNeedsApply, nil }
	s.applyFn = func() error { return nil }
	return s
}

func (s *fakeStep) ID() engine.StepID          { return s.id }
func (s *fakeStep) Description() string        { return "fake " + s.id.String() }
func (s *fakeStep) DependsOn() []engine.StepID { return s.deps }

func (s *fakeStep) Check(engine.RunContext) (engine.StepStatus, error) {
	return s.checkFn()
}

func (s *fakeStep) Plan(engine.RunContext) (engine.Diff, error) {
	return engine.NewDiff(engine.DiffTypeAdd, "fake", s.id.String(), ""), nil
}

func (s *fakeStep) Apply(engine.RunContext) error {
	s.applied++
	return s.applyFn()
}

// verifiableStep adds an explicit Verify to fakeStep.
type verifiableStep struct {
	*fakeStep
}

func (s *verifiableStep) Verify(engine.RunContext) (bool, error) {
	return s.verifyFn()
}

// appliedBecomesSatisfied scripts the common idempotent behavior: not
// satisfied until Apply has run, satisfied afterwards.
func appliedBecomesSatisfied(s *fakeStep) {
	s.checkFn = func() (engine.StepStatus, error) {
		if s.applied > 0 {
			return engine.StatusSatisfied, nil
		}
		return engine.StatusNeedsApply, nil
	}
}

func planOf(t *testing.T, steps ...engine.Step) *Plan {
	t.Helper()
	graph := engine.NewGraph()
	for _, step := range steps {
		if err := graph.Add(step); err != nil {
			t.Fatalf("Add(%s) error = %v", step.ID(), err)
		}
	}
	plan, err := NewPlanner().Plan(context.Background(), graph)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	return plan
}

func resultByID(report *Report, id string) (StepResult, bool) {
	for _, r := range report.Results() {
		if r.StepID().String() == id {
			return r, true
		}
	}
	return StepResult{}, false
}

func TestExecutor_AppliesUnsatisfiedStep(t *testing.T) {
	step := newFakeStep("apt:package:alsa-utils")
	appliedBecomesSatisfied(step)

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, ok := resultByID(report, "apt:package:alsa-utils")
	if !ok {
		t.Fatal("missing result")
	}
	if result.Status() != engine.StatusApplied {
		t.Errorf("Status() = %v, want applied", result.Status())
	}
	if step.applied != 1 {
		t.Errorf("applied %d times, want 1", step.applied)
	}
}

func TestExecutor_SkipsSatisfiedStep(t *testing.T) {
	step := newFakeStep("apt:package:alsa-utils")
	step.checkFn = func() (engine.StepStatus, error) { return engine.StatusSatisfied, nil }

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, _ := resultByID(report, "apt:package:alsa-utils")
	if result.Status() != engine.StatusSatisfied {
		t.Errorf("Status() = %v, want satisfied", result.Status())
	}
	if result.Reason() != ReasonAlreadySatisfied {
		t.Errorf("Reason() = %q, want %q", result.Reason(), ReasonAlreadySatisfied)
	}
	if step.applied != 0 {
		t.Errorf("satisfied step must not apply, ran %d times", step.applied)
	}
}

func TestExecutor_SecondRunIsNoop(t *testing.T) {
	step := newFakeStep("piper:dir")
	appliedBecomesSatisfied(step)

	first := NewExecutor().Execute(context.Background(), planOf(t, step))
	if first.Summary().Applied != 1 {
		t.Fatalf("first run applied = %d, want 1", first.Summary().Applied)
	}

	second := NewExecutor().Execute(context.Background(), planOf(t, step))
	if second.Summary().Satisfied != 1 {
		t.Errorf("second run satisfied = %d, want 1", second.Summary().Satisfied)
	}
	if step.applied != 1 {
		t.Errorf("applied %d times across two runs, want 1", step.applied)
	}
}

func TestExecutor_FailureDoesNotAbortRun(t *testing.T) {
	failing := newFakeStep("apt:package:tesseract-ocr")
	failing.applyFn = func() error { return errors.New("dpkg lock held") }
	independent := newFakeStep("files:dir:sounds")
	appliedBecomesSatisfied(independent)

	report := NewExecutor().Execute(context.Background(), planOf(t, failing, independent))

	failResult, _ := resultByID(report, "apt:package:tesseract-ocr")
	if failResult.Status() != engine.StatusFailed {
		t.Errorf("failing step status = %v, want failed", failResult.Status())
	}
	if failResult.Error() == nil {
		t.Error("failing step should carry its error")
	}

	okResult, _ := resultByID(report, "files:dir:sounds")
	if okResult.Status() != engine.StatusApplied {
		t.Errorf("independent step status = %v, want applied", okResult.Status())
	}
	if !report.Failed() {
		t.Error("report should be marked failed")
	}
}

func TestExecutor_DependencyFailurePropagates(t *testing.T) {
	parent := newFakeStep("piper:download")
	parent.applyFn = func() error { return errors.New("connection refused") }
	child := newFakeStep("piper:extract", "piper:download")
	grandchild := newFakeStep("piper:executable", "piper:extract")

	report := NewExecutor().Execute(context.Background(), planOf(t, parent, child, grandchild))

	for _, id := range []string{"piper:extract", "piper:executable"} {
		result, _ := resultByID(report, id)
		if result.Status() != engine.StatusSkipped {
			t.Errorf("%s status = %v, want skipped", id, result.Status())
		}
		if result.Reason() != ReasonDependencyFailed {
			t.Errorf("%s reason = %q, want %q", id, result.Reason(), ReasonDependencyFailed)
		}
	}
	if child.applied != 0 || grandchild.applied != 0 {
		t.Error("dependents of a failed step must not apply")
	}
}

func TestExecutor_OneResultPerStep(t *testing.T) {
	steps := []engine.Step{
		newFakeStep("apt:package:a"),
		newFakeStep("apt:package:b"),
		newFakeStep("apt:package:c"),
	}

	report := NewExecutor().Execute(context.Background(), planOf(t, steps...))

	if len(report.Results()) != len(steps) {
		t.Errorf("results = %d, want %d", len(report.Results()), len(steps))
	}
}

func TestExecutor_VerifyFallbackToCheck(t *testing.T) {
	// Apply succeeds but the postcondition still fails the re-check.
	step := newFakeStep("files:template:notes.txt")
	step.checkFn = func() (engine.StepStatus, error) { return engine.StatusNeedsApply, nil }

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, _ := resultByID(report, "files:template:notes.txt")
	if result.Status() != engine.StatusFailed {
		t.Fatalf("Status() = %v, want failed", result.Status())
	}
	if !errors.Is(result.Error(), engine.ErrPostconditionNotMet) {
		t.Errorf("Error() = %v, want ErrPostconditionNotMet", result.Error())
	}
}

func TestExecutor_ExplicitVerifierWins(t *testing.T) {
	inner := newFakeStep("probe:gpio")
	// Check would never report satisfied; the Verifier must take precedence.
	inner.checkFn = func() (engine.StepStatus, error) { return engine.StatusNeedsApply, nil }
	inner.verifyFn = func() (bool, error) { return true, nil }
	step := &verifiableStep{inner}

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, _ := resultByID(report, "probe:gpio")
	if result.Status() != engine.StatusApplied {
		t.Errorf("Status() = %v, want applied", result.Status())
	}
}

func TestExecutor_VerifierReportsFalse(t *testing.T) {
	inner := newFakeStep("probe:camera")
	inner.verifyFn = func() (bool, error) { return false, nil }
	step := &verifiableStep{inner}

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, _ := resultByID(report, "probe:camera")
	if !errors.Is(result.Error(), engine.ErrPostconditionNotMet) {
		t.Errorf("Error() = %v, want ErrPostconditionNotMet", result.Error())
	}
}

func TestExecutor_DryRunAppliesNothing(t *testing.T) {
	step := newFakeStep("apt:package:alsa-utils")

	report := NewExecutor().WithDryRun(true).Execute(context.Background(), planOf(t, step))

	if step.applied != 0 {
		t.Errorf("dry run applied %d times, want 0", step.applied)
	}
	result, _ := resultByID(report, "apt:package:alsa-utils")
	if result.Status() != engine.StatusNeedsApply {
		t.Errorf("Status() = %v, want needs-apply", result.Status())
	}
}

func TestExecutor_CanceledContextSkipsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := newFakeStep("apt:package:a")
	first.applyFn = func() error {
		cancel()
		return nil
	}
	second := newFakeStep("apt:package:b")

	report := NewExecutor().Execute(ctx, planOf(t, first, second))

	result, _ := resultByID(report, "apt:package:b")
	if result.Status() != engine.StatusSkipped {
		t.Errorf("Status() = %v, want skipped", result.Status())
	}
	if result.Reason() != ReasonRunCanceled {
		t.Errorf("Reason() = %q, want %q", result.Reason(), ReasonRunCanceled)
	}
	if second.applied != 0 {
		t.Error("step after cancellation must not apply")
	}
	if len(report.Results()) != 2 {
		t.Errorf("results = %d, want 2", len(report.Results()))
	}
}

func TestExecutor_UnknownStatusStillAttemptsApply(t *testing.T) {
	step := newFakeStep("pip:package:pyspellchecker")
	checkCalls := 0
	step.checkFn = func() (engine.StepStatus, error) {
		checkCalls++
		if checkCalls == 1 {
			return engine.StatusUnknown, errors.New("pip3 not reachable")
		}
		return engine.StatusSatisfied, nil
	}

	report := NewExecutor().Execute(context.Background(), planOf(t, step))

	result, _ := resultByID(report, "pip:package:pyspellchecker")
	if result.Status() != engine.StatusApplied {
		t.Errorf("Status() = %v, want applied", result.Status())
	}
	if step.applied != 1 {
		t.Errorf("applied %d times, want 1", step.applied)
	}
}
