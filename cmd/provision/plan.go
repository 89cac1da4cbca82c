package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pireader/provision/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change, without changing anything",
	Long: `Plan compiles the manifest into a step graph, checks every step's
precondition, and prints the pending changes. Nothing is modified.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	provision := app.New(os.Stdout).WithLogger(newLogger()).WithBaseDir(targetDir)

	plan, err := provision.Plan(ctx, resolveConfigPath())
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	provision.PrintPlan(plan)
	return nil
}
