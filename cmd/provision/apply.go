package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pireader/provision/internal/app"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the station to the manifest's declared state",
	Long: `Apply executes the plan in dependency order.

Steps whose precondition already holds are reported and skipped. A failed
step never aborts the run: its dependents are skipped and every other step
still executes, so the report shows the full outcome of one pass.

Use --dry-run to see what would happen without making changes.`,
	RunE: runApply,
}

var applyDryRun bool

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show what would be done without making changes")
}

func runApply(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provision := app.New(os.Stdout).WithLogger(newLogger()).WithBaseDir(targetDir)

	plan, err := provision.Plan(ctx, resolveConfigPath())
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	provision.PrintPlan(plan)

	if !plan.HasChanges() {
		return nil
	}

	report := provision.Apply(ctx, plan, applyDryRun)
	provision.PrintReport(report)

	if applyDryRun {
		fmt.Println("\n[Dry run - no changes made]")
		return nil
	}

	if report.Failed() {
		return fmt.Errorf("some steps failed")
	}
	return nil
}
