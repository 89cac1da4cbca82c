package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/pireader/provision/internal/domain/engine"
)

func TestReport_Summary(t *testing.T) {
	results := []StepResult{
		NewStepResult(engine.MustNewStepID("apt:package:a"), engine.StatusApplied, nil),
		NewStepResult(engine.MustNewStepID("apt:package:b"), engine.StatusSatisfied, nil),
		NewStepResult(engine.MustNewStepID("apt:package:c"), engine.StatusFailed, errors.New("boom")),
		NewStepResult(engine.MustNewStepID("apt:package:d"), engine.StatusSkipped, nil),
	}

	report := NewReport(results, time.Now(), time.Second)

	summary := report.Summary()
	if summary.Total != 4 || summary.Applied != 1 || summary.Satisfied != 1 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Errorf("Summary() = %+v", summary)
	}
	if !report.Failed() {
		t.Error("report with a failed result should report Failed")
	}
}

func TestReport_NotFailed(t *testing.T) {
	results := []StepResult{
		NewStepResult(engine.MustNewStepID("apt:package:a"), engine.StatusSatisfied, nil),
	}

	report := NewReport(results, time.Now(), time.Millisecond)

	if report.Failed() {
		t.Error("report without failures should not report Failed")
	}
}

func TestReport_UniqueRunIDs(t *testing.T) {
	a := NewReport(nil, time.Now(), 0)
	b := NewReport(nil, time.Now(), 0)

	if a.ID() == b.ID() {
		t.Error("each run should get its own ID")
	}
}

func TestStepResult_Success(t *testing.T) {
	ok := NewStepResult(engine.MustNewStepID("probe:gpio"), engine.StatusApplied, nil)
	if !ok.Success() {
		t.Error("applied result should be a success")
	}

	failed := NewStepResult(engine.MustNewStepID("probe:camera"), engine.StatusFailed, errors.New("no camera"))
	if failed.Success() {
		t.Error("failed result should not be a success")
	}
}
