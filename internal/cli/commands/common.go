// Package commands implements the logsift subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"logsift/pkg/config"
)

// loadConfig loads configuration honoring the root --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
