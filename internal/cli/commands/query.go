package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"logsift/internal/logging"
	"logsift/pkg/filter"
	"logsift/pkg/output"
	"logsift/pkg/query"
	"logsift/pkg/store"
)

// QueryOptions holds command-line options for the query command.
type QueryOptions struct {
	Database string
	Range    int64
	Filters  []string
	WithTime bool
	Fields   string
	Limit    int
	Output   string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <timestamp>",
		Short: "Query log entries around an instant",
		Long: `Retrieve stored entries whose timestamp falls within a window around
the target instant, optionally narrowed by filter expressions.

The timestamp is UNIX seconds ("1697395536") or an ISO datetime
("2023-10-15T14:45:36", optional trailing Z, space separator accepted),
interpreted as UTC.

Filter expressions fold left to right with no precedence between AND and OR:

  error                          entries mentioning "error"
  component:reaper               entries from the reaper component
  error AND component:reaper     both, in written order
  error OR warning               either substring
  not(debug), NOT debug, !debug  negation
  error||warning                 "||" works without spaces

Multiple --filter options are AND-combined.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database file path (default: logs.db)")
	cmd.Flags().Int64VarP(&opts.Range, "range", "r", -1, "Window radius in seconds around the timestamp (default: 120)")
	cmd.Flags().StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter expression (can be repeated; AND-combined)")
	cmd.Flags().BoolVar(&opts.WithTime, "withtime", false, "Include the ts (UNIX seconds) column in output")
	cmd.Flags().StringVar(&opts.Fields, "fields", "", "Comma-separated fields to return, in order (e.g. 'component,message')")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", -1, "Limit number of results")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runQuery(cmd *cobra.Command, target string, opts *QueryOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Range >= 0 {
		cfg.Query.RangeSeconds = opts.Range
	}
	if opts.Limit >= 0 {
		cfg.Query.Limit = opts.Limit
	}

	log := logging.New(cfg.Logging)
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	// All query-fatal validation happens before any storage access.
	instant, err := query.ParseInstant(target)
	if err != nil {
		return err
	}

	filters, err := filter.ParseAll(opts.Filters)
	if err != nil {
		return err
	}

	proj, err := resolveProjection(opts)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Database); err != nil {
		return fmt.Errorf("database file %q not found (run 'logsift ingest' first)", cfg.Database)
	}

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	planner := query.NewPlanner(st, log)
	result, err := planner.Run(ctx, query.Request{
		Target:        instant,
		RadiusSeconds: cfg.Query.RangeSeconds,
		Filters:       filters,
		Limit:         cfg.Query.Limit,
	})
	if err != nil {
		return err
	}

	if formatter.Name() == "text" {
		fmt.Fprintf(out, "Querying logs from %s to %s\n",
			time.Unix(result.Window.Start, 0).UTC().Format(time.RFC3339),
			time.Unix(result.Window.End, 0).UTC().Format(time.RFC3339))
		for _, f := range filters {
			fmt.Fprintf(out, "Filter: %s\n", f.Source)
		}
	}

	if len(result.Entries) == 0 {
		if formatter.Name() == "json" {
			return formatter.Format(out, nil, proj)
		}
		fmt.Fprintln(out, "No matching log entries found.")
		fmt.Fprintln(out, "Try widening the window with --range or relaxing filters.")
		return nil
	}

	if formatter.Name() == "text" {
		fmt.Fprintf(out, "\nFound %d matching entries:\n", len(result.Entries))
	}
	return formatter.Format(out, result.Entries, proj)
}

func resolveProjection(opts *QueryOptions) (output.Projection, error) {
	if opts.Fields != "" {
		return output.ParseProjection(opts.Fields)
	}
	if opts.WithTime {
		return output.WithTimeProjection(), nil
	}
	return output.DefaultProjection(), nil
}
