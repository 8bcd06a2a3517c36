package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logsift/pkg/store"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List queryable fields",
		Long: `List the fields available for --fields projections and field: filter
prefixes. Works even before the database has been created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if database != "" {
				cfg.Database = database
			}

			fields := store.StaticFields()
			if _, err := os.Stat(cfg.Database); err == nil {
				st, err := store.Open(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer func() { _ = st.Close() }()
				if fields, err = st.Fields(cmd.Context()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available fields:")
			for _, f := range fields {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "SQLite database file path (default: logs.db)")

	return cmd
}
