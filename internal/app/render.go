package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/domain/execution"
)

// durationPrecision rounds step timings for display.
const durationPrecision = time.Millisecond

// Status colors, following the terminal's light/dark background.
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}

	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

// PrintPlan writes a human-readable plan summary.
func (p *Provision) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	p.printf("\n%s\n\n", styleTitle.Render("Provision Plan"))

	if !plan.HasChanges() {
		p.printf("%s\n", styleSuccess.Render("No changes needed. The station is already provisioned."))
		return
	}

	p.printf("Steps: %d total, %d to apply, %d satisfied\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		glyph := styleSuccess.Render("✓")
		switch entry.Status() {
		case engine.StatusNeedsApply:
			glyph = styleWarning.Render("+")
		case engine.StatusUnknown:
			glyph = styleWarning.Render("?")
		case engine.StatusSatisfied, engine.StatusApplied, engine.StatusFailed, engine.StatusSkipped:
		}

		p.printf("  %s %s\n", glyph, entry.Step().ID().String())

		if diff := entry.Diff(); !diff.IsEmpty() {
			p.printf("      %s\n", styleMuted.Render(diff.Summary()))
		}
	}

	p.printf("\nRun 'provision apply' to execute this plan.\n")
}

// PrintReport writes the per-step outcomes and the run summary.
func (p *Provision) PrintReport(report *execution.Report) {
	p.printf("\n%s\n\n", styleTitle.Render("Provision Report"))

	for _, result := range report.Results() {
		id := result.StepID().String()
		switch result.Status() {
		case engine.StatusApplied:
			p.printf("  %s %s (%s)\n", styleSuccess.Render("✓"), id, result.Duration().Round(durationPrecision))
		case engine.StatusSatisfied:
			p.printf("  %s %s %s\n", styleSuccess.Render("✓"), id, styleMuted.Render("("+result.Reason()+")"))
		case engine.StatusFailed:
			p.printf("  %s %s: %v\n", styleError.Render("✗"), id, result.Error())
		case engine.StatusSkipped:
			p.printf("  %s %s %s\n", styleMuted.Render("-"), id, styleMuted.Render("("+result.Reason()+")"))
		case engine.StatusNeedsApply, engine.StatusUnknown:
			// Dry run: the entry was planned but nothing executed.
			p.printf("  %s %s %s\n", styleWarning.Render("+"), id, styleMuted.Render("(dry run)"))
		}
	}

	summary := report.Summary()
	line := fmt.Sprintf("\nSummary: %d applied, %d satisfied, %d failed, %d skipped (%s)\n",
		summary.Applied, summary.Satisfied, summary.Failed, summary.Skipped,
		report.Duration().Round(durationPrecision))
	if report.Failed() {
		p.printf("%s", styleError.Render(line))
	} else {
		p.printf("%s", line)
	}
}

// printf writes to the output writer, ignoring errors.
func (p *Provision) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
