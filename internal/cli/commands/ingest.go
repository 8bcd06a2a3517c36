package commands

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"logsift/internal/logging"
	"logsift/pkg/ingest"
	"logsift/pkg/parser"
	"logsift/pkg/store"
)

// IngestOptions holds command-line options for the ingest command.
type IngestOptions struct {
	Database   string
	Directory  string
	Date       string
	Excludes   []string
	NoProgress bool
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand() *cobra.Command {
	opts := &IngestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest *.log files into the database",
		Long: `Process all *.log files in a directory, reconstructing timestamped
entries (including multi-line continuations) and appending them to the
SQLite database.

Each file's component name is derived from its filename:
  "01 - reaper.log" -> reaper
  "service.log"     -> service

Recognized times-of-day (HH:MM:SS.mmm) are combined with the reference date.
An unreadable file is reported and skipped; the run continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database file path (default: logs.db)")
	cmd.Flags().StringVar(&opts.Directory, "dir", "", "Directory to search for *.log files (default: .)")
	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "Reference date for timestamps (YYYY-MM-DD, default: today UTC)")
	cmd.Flags().StringSliceVar(&opts.Excludes, "exclude", nil, "Glob pattern of file names to skip (can be repeated)")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

func runIngest(cmd *cobra.Command, opts *IngestOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Directory != "" {
		cfg.Ingest.Directory = opts.Directory
	}
	if opts.Date != "" {
		cfg.Ingest.Date = opts.Date
	}
	if len(opts.Excludes) > 0 {
		cfg.Ingest.Excludes = opts.Excludes
	}

	log := logging.New(cfg.Logging)
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	refDate, err := cfg.ReferenceDate()
	if err != nil {
		return err
	}

	files, err := parser.DiscoverLogFiles(cfg.Ingest.Directory, cfg.Ingest.Excludes)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No *.log files found in %s\n", cfg.Ingest.Directory)
		return nil
	}

	fmt.Fprintf(out, "Using reference date: %s\n", refDate.UTC().Format("2006-01-02"))
	fmt.Fprintf(out, "Database: %s\n", cfg.Database)
	fmt.Fprintf(out, "Found %d log files:\n", len(files))
	for _, f := range files {
		// Discovery guarantees non-empty base names.
		component, _ := parser.ComponentName(filepath.Base(f))
		fmt.Fprintf(out, "  %s -> component: %s\n", f, component)
	}

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var ingestOpts []ingest.Option
	if !opts.NoProgress {
		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Processing log files"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionClearOnFinish(),
		)
		ingestOpts = append(ingestOpts, ingest.WithProgress(func(_ ingest.FileReport, _ bool) {
			_ = bar.Add(1)
		}))
	}

	stats, err := ingest.New(st, refDate, log, ingestOpts...).Run(ctx, files)
	if err != nil {
		return err
	}

	for _, report := range stats.Files {
		fmt.Fprintf(out, "Processed %d entries from %s\n", report.Entries, report.Component)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d unreadable file(s)\n", stats.Skipped)
	}
	fmt.Fprintf(out, "\nCompleted! Processed %d total log entries.\n", stats.TotalEntries)
	fmt.Fprintf(out, "Database saved to: %s\n", cfg.Database)

	return nil
}
