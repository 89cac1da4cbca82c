package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pireader/provision/internal/adapters/logging"
	"github.com/pireader/provision/internal/domain/config"
	"github.com/pireader/provision/internal/ports"
)

var (
	// Global flags
	cfgFile   string
	targetDir string
	verbose   bool
	jsonLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "provision",
	Short: "Declarative setup for the Raspberry Pi reader station",
	Long: `Provision converges a Raspberry Pi to the reader station's declared state:
system packages, the piper text-to-speech runtime and voice model, working
directories, boot firmware settings, and hardware smoke tests.

Every step is idempotent: a second run over a converged station performs
no actions.`,
	SilenceErrors: true, // main formats errors itself
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "manifest file (default: provision.yaml, else the embedded manifest)")
	rootCmd.PersistentFlags().StringVar(&targetDir, "target-dir", "", "override the manifest's base dir")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit logs as JSON")

	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath picks the manifest: the --config flag, then a
// provision.yaml next to the working directory, then the embedded default
// (signalled by an empty path).
func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat("provision.yaml"); err == nil {
		return "provision.yaml"
	}
	return ""
}

// newLogger builds the CLI logger from the global flags.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLog),
	)
}

// formatError returns a user-friendly error message.
// With verbose=true it also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
