// Package store persists log entries in a SQLite database: an append-only
// logs table indexed for time-range and component lookups.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"logsift/pkg/filter"
	"logsift/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts INTEGER NOT NULL,
    timestamp VARCHAR(50) NOT NULL,
    component VARCHAR(255) NOT NULL,
    message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_logs_ts ON logs(ts);
CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_logs_component ON logs(component);
CREATE INDEX IF NOT EXISTS idx_logs_ts_component ON logs(ts, component);
`

// Store is a SQLite-backed entry store. It assumes a single writer at a time;
// callers must not run concurrent ingestions against the same database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema in %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// InsertBatch appends entries in order within a single transaction. Entries
// are immutable once written; the autoincrement id preserves insertion order
// for tie-breaking queries.
func (s *Store) InsertBatch(ctx context.Context, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO logs (ts, timestamp, component, message) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range entries {
		e := &entries[i]
		if _, err := stmt.ExecContext(ctx, e.TS, e.Timestamp, e.Component, e.Message); err != nil {
			return fmt.Errorf("inserting entry (component=%s ts=%d): %w", e.Component, e.TS, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// Range returns all entries with ts in [start, end] inclusive, ordered by ts
// ascending with insertion order breaking ties.
func (s *Store) Range(ctx context.Context, start, end int64) ([]model.Entry, error) {
	return s.query(ctx,
		"SELECT id, ts, timestamp, component, message FROM logs WHERE ts BETWEEN ? AND ? ORDER BY ts, id",
		start, end)
}

// FilteredRange is the push-down variant of Range: the parsed filters are
// compiled into a fold-preserving WHERE clause and the limit is applied by
// the database. Result ordering matches Range.
func (s *Store) FilteredRange(ctx context.Context, start, end int64, filters []*filter.Filter, limit int) ([]model.Entry, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, ts, timestamp, component, message FROM logs WHERE ts BETWEEN ? AND ?")
	args := []any{start, end}

	for _, f := range filters {
		cond, condArgs := f.CompileSQL()
		sb.WriteString(" AND ")
		sb.WriteString(cond)
		args = append(args, condArgs...)
	}

	sb.WriteString(" ORDER BY ts, id")
	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	return s.query(ctx, sb.String(), args...)
}

// Fields returns the queryable column names of the logs table.
func (s *Store) Fields(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info(logs)")
	if err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fields []string
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		fields = append(fields, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	return fields, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.ID, &e.TS, &e.Timestamp, &e.Component, &e.Message); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	return entries, nil
}

// StaticFields lists the schema's column names without opening a database,
// for callers that want to describe the store before it exists.
func StaticFields() []string {
	return []string{"id", "ts", "timestamp", "component", "message"}
}
