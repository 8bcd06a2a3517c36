package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test, like t.Chdir in
// newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

// run executes the root command with args and returns its combined stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeLogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"01 - reaper.log": "14:45:36.507 [error] reaper crashed\n  stack frame 1\n  stack frame 2\n14:45:40.000 [info] reaper restarted\n",
		"alchemist.log":   "14:45:38.000 [info] brewing potion\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestIngestThenQuery(t *testing.T) {
	chdir(t, t.TempDir())
	dir := writeLogDir(t)
	db := filepath.Join(t.TempDir(), "logs.db")

	out, err := run(t, "ingest", "--dir", dir, "--db", db, "--date", "2023-10-15", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Using reference date: 2023-10-15")
	assert.Contains(t, out, "component: reaper")
	assert.Contains(t, out, "component: alchemist")
	assert.Contains(t, out, "Completed! Processed 3 total log entries.")

	out, err = run(t, "query", "2023-10-15T14:45:36", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 matching entries:")
	assert.Contains(t, out, "TIMESTAMP | COMPONENT | MESSAGE")
	assert.Contains(t, out, "reaper crashed")
	assert.Contains(t, out, "stack frame 1", "continuation lines belong to the entry")

	out, err = run(t, "query", "2023-10-15T14:45:36", "--db", db,
		"--filter", "error AND component:reaper")
	require.NoError(t, err)
	assert.Contains(t, out, "Filter: error AND component:reaper")
	assert.Contains(t, out, "Found 1 matching entries:")
	assert.Contains(t, out, "reaper crashed")
	assert.NotContains(t, out, "brewing potion")
}

func TestQuery_WindowAndLimit(t *testing.T) {
	chdir(t, t.TempDir())
	dir := writeLogDir(t)
	db := filepath.Join(t.TempDir(), "logs.db")

	_, err := run(t, "ingest", "--dir", dir, "--db", db, "--date", "2023-10-15", "--no-progress")
	require.NoError(t, err)

	// Radius 2s around 14:45:38 covers 14:45:36..14:45:40 inclusive.
	out, err := run(t, "query", "2023-10-15T14:45:38", "--db", db, "--range", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 matching entries:")

	out, err = run(t, "query", "2023-10-15T14:45:38", "--db", db, "--range", "2", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 matching entries:")
	assert.Contains(t, out, "reaper crashed", "limit keeps the earliest entries")
}

func TestQuery_NoMatches(t *testing.T) {
	chdir(t, t.TempDir())
	dir := writeLogDir(t)
	db := filepath.Join(t.TempDir(), "logs.db")

	_, err := run(t, "ingest", "--dir", dir, "--db", db, "--date", "2023-10-15", "--no-progress")
	require.NoError(t, err)

	out, err := run(t, "query", "2023-10-15T20:00:00", "--db", db)
	require.NoError(t, err, "an empty result is not an error")
	assert.Contains(t, out, "No matching log entries found.")
	assert.Contains(t, out, "--range")
}

func TestQuery_JSONOutput(t *testing.T) {
	chdir(t, t.TempDir())
	dir := writeLogDir(t)
	db := filepath.Join(t.TempDir(), "logs.db")

	_, err := run(t, "ingest", "--dir", dir, "--db", db, "--date", "2023-10-15", "--no-progress")
	require.NoError(t, err)

	out, err := run(t, "query", "2023-10-15T14:45:36", "--db", db,
		"--output", "json", "--fields", "component,message")
	require.NoError(t, err)
	assert.Contains(t, out, `"component": "reaper"`)
	assert.NotContains(t, out, "Querying logs", "json output carries no banner")

	out, err = run(t, "query", "2023-10-15T20:00:00", "--db", db, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "[]", "empty json result is an empty array")
}

func TestQuery_ValidationBeforeStorage(t *testing.T) {
	chdir(t, t.TempDir())
	missing := filepath.Join(t.TempDir(), "absent.db")

	// A bad filter fails even though the database does not exist.
	_, err := run(t, "query", "2023-10-15T14:45:36", "--db", missing, "--filter", "not(error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")

	_, err = run(t, "query", "2023-10-15T14:45:36", "--db", missing, "--fields", "component,severity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fields: severity")

	_, err = run(t, "query", "not-a-timestamp", "--db", missing)
	require.Error(t, err)

	// With everything valid, the missing database is the failure.
	_, err = run(t, "query", "2023-10-15T14:45:36", "--db", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestIngest_EmptyDirectory(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()

	out, err := run(t, "ingest", "--dir", dir, "--db", filepath.Join(dir, "logs.db"), "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "No *.log files found")
}

func TestIngest_Exclude(t *testing.T) {
	chdir(t, t.TempDir())
	dir := writeLogDir(t)
	db := filepath.Join(t.TempDir(), "logs.db")

	out, err := run(t, "ingest", "--dir", dir, "--db", db, "--date", "2023-10-15",
		"--exclude", "*reaper*", "--no-progress")
	require.NoError(t, err)
	assert.NotContains(t, out, "component: reaper")
	assert.Contains(t, out, "Completed! Processed 1 total log entries.")
}

func TestFields_WithoutDatabase(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := run(t, "fields", "--db", filepath.Join(t.TempDir(), "absent.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "Available fields:")
	for _, f := range []string{"id", "ts", "timestamp", "component", "message"} {
		assert.Contains(t, out, f)
	}
}

func TestInit(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote logsift.yaml")

	data, err := os.ReadFile("logsift.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "database:")

	_, err = run(t, "init")
	require.Error(t, err, "refuses to overwrite without --force")

	_, err = run(t, "init", "--force")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "logsift")
}
