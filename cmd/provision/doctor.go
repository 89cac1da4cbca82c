package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pireader/provision/internal/app"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the external commands steps depend on",
	Long: `Doctor checks that the programs the steps shell out to are reachable
on PATH. It never modifies the system.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	provision := app.New(os.Stdout)

	result := provision.Doctor()
	provision.PrintDoctor(result)

	if result.Missing > 0 {
		return fmt.Errorf("%d external commands missing", result.Missing)
	}
	return nil
}
