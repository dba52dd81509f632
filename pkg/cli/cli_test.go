package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/testutil"
)

// runCommand executes the CLI with args against a fake drill database and
// returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func drillArgs(t *testing.T) (dbPath string, global []string) {
	t.Helper()
	binDir, dbPath := testutil.Install(t, testutil.Drill())
	return dbPath, []string{"--backend", "mdbtools", "--mdbtools-path", binDir, "--log-level", "error"}
}

func TestTablesCommand(t *testing.T) {
	dbPath, global := drillArgs(t)

	out, err := runCommand(t, append([]string{"tables", dbPath}, global...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"alteration", "collar", "litho", "survey"},
		strings.Fields(out))
}

func TestDescribeCommand(t *testing.T) {
	dbPath, global := drillArgs(t)

	out, err := runCommand(t, append([]string{"describe", dbPath, "collar"}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "hole_id")
	assert.Contains(t, out, "easting")
	assert.Contains(t, out, "float")
}

func TestCountCommand(t *testing.T) {
	dbPath, global := drillArgs(t)

	out, err := runCommand(t, append([]string{"count", dbPath, "survey"}, global...)...)
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))
}

func TestQueryCommandCSVOutput(t *testing.T) {
	dbPath, global := drillArgs(t)

	out, err := runCommand(t, append([]string{
		"query", dbPath, "collar",
		"--where", "block == 'NORTH'",
		"--columns", "hole_id,block",
		"-o", "csv",
	}, global...)...)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two NORTH holes")
	assert.Equal(t, []string{"hole_id", "block"}, records[0])
}

func TestQueryCommandUnknownTable(t *testing.T) {
	dbPath, global := drillArgs(t)

	_, err := runCommand(t, append([]string{"query", dbPath, "assay"}, global...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assay")
}

func TestExportCommandCSV(t *testing.T) {
	dbPath, global := drillArgs(t)
	dest := filepath.Join(t.TempDir(), "litho.csv")

	_, err := runCommand(t, append([]string{"export", dbPath, "litho", "--out", dest}, global...)...)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lith_code")
}

func TestExportCommandUnsupportedFormat(t *testing.T) {
	dbPath, global := drillArgs(t)

	_, err := runCommand(t, append([]string{
		"export", dbPath, "litho", "--out", filepath.Join(t.TempDir(), "litho.parquet"),
	}, global...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestSnapshotCommand(t *testing.T) {
	dbPath, global := drillArgs(t)
	dest := filepath.Join(t.TempDir(), "snap.sqlite")

	out, err := runCommand(t, append([]string{"snapshot", dbPath, "collar", "--out", dest}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot written")

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestHoleCommand(t *testing.T) {
	dbPath, global := drillArgs(t)
	dir := t.TempDir()

	_, err := runCommand(t, append([]string{"hole", dbPath, "BH-001", "--out", dir}, global...)...)
	require.NoError(t, err)

	for _, name := range []string{"BH-001_collar.csv", "BH-001_survey.csv", "BH-001_litho.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRootCommandMissingFile(t *testing.T) {
	_, global := drillArgs(t)

	_, err := runCommand(t, append([]string{"tables", filepath.Join(t.TempDir(), "nope.mdb")}, global...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
