// Package ingest drives the write path: log files are segmented into
// timestamped entries and appended to the store, one transaction per file.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"logsift/pkg/model"
	"logsift/pkg/parser"
)

// Writer is the store surface the ingester needs.
type Writer interface {
	InsertBatch(ctx context.Context, entries []model.Entry) error
}

// FileReport summarizes one successfully ingested file.
type FileReport struct {
	Path      string
	Component string
	Entries   int

	// Orphans counts lines discarded because they preceded the file's first
	// recognized timestamp.
	Orphans int
}

// Stats summarizes an ingestion run.
type Stats struct {
	Files        []FileReport
	Skipped      int
	TotalEntries int
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithProgress registers a callback invoked after each file is processed,
// successfully or not. Used by the CLI to drive its progress bar.
func WithProgress(fn func(report FileReport, skipped bool)) Option {
	return func(i *Ingester) { i.progress = fn }
}

// Ingester segments log files and writes the resulting entries.
type Ingester struct {
	store    Writer
	rec      *parser.TimestampRecognizer
	log      zerolog.Logger
	progress func(FileReport, bool)
}

// New creates an ingester. Recognized times-of-day are anchored to date.
func New(store Writer, date time.Time, log zerolog.Logger, opts ...Option) *Ingester {
	i := &Ingester{
		store: store,
		rec:   parser.NewTimestampRecognizer(date),
		log:   log,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run processes files in the given order. An unreadable file is logged,
// counted as skipped, and never written; the run continues with the
// remaining files. A store write failure is fatal and returns the stats
// accumulated so far - entries already committed stay committed.
func (i *Ingester) Run(ctx context.Context, files []string) (*Stats, error) {
	stats := &Stats{}

	for _, path := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		component, err := parser.ComponentName(filepath.Base(path))
		if err != nil {
			return stats, fmt.Errorf("deriving component for %s: %w", path, err)
		}

		report, err := i.ingestFile(ctx, path, component)
		if err != nil {
			if isStoreError(err) {
				return stats, err
			}
			i.log.Warn().Err(err).Str("file", path).Msg("skipping unreadable file")
			stats.Skipped++
			if i.progress != nil {
				i.progress(FileReport{Path: path, Component: component}, true)
			}
			continue
		}

		stats.Files = append(stats.Files, report)
		stats.TotalEntries += report.Entries
		i.log.Info().
			Str("component", report.Component).
			Int("entries", report.Entries).
			Int("orphaned_lines", report.Orphans).
			Msg("ingested file")
		if i.progress != nil {
			i.progress(report, false)
		}
	}

	return stats, nil
}

// storeError marks failures from the store, which abort the whole run
// instead of skipping the current file.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

func isStoreError(err error) bool {
	_, ok := err.(*storeError)
	return ok
}

func (i *Ingester) ingestFile(ctx context.Context, path, component string) (FileReport, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return FileReport{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	seg := parser.NewSegmenter(i.rec, component)
	var entries []model.Entry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	for scanner.Scan() {
		if entry, ok := seg.Feed(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return FileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if entry, ok := seg.Flush(); ok {
		entries = append(entries, entry)
	}

	if err := i.store.InsertBatch(ctx, entries); err != nil {
		return FileReport{}, &storeError{fmt.Errorf("writing entries from %s: %w", path, err)}
	}

	return FileReport{
		Path:      path,
		Component: component,
		Entries:   len(entries),
		Orphans:   seg.Orphans(),
	}, nil
}
