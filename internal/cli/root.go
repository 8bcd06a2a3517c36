// Package cli provides the command-line interface for logsift.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logsift/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logsift",
		Short: "Ingest and query multi-line service logs",
		Long: `Logsift reconstructs discrete timestamped entries from free-form,
multi-line service log files, stores them in a SQLite database, and answers
time-windowed queries through a small find-like boolean filter language.

Typical workflow:

  # Ingest all *.log files in the current directory
  logsift ingest --date 2023-10-15

  # Query entries within two minutes of an instant
  logsift query "2023-10-15T14:45:36" --filter "error AND component:reaper"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ./logsift.yaml if present)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewIngestCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewFieldsCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
