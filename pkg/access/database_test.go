package access_test

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/testutil"
	"geoaccess/pkg/access"
)

var ctx = context.Background()

func openDrill(t *testing.T) *access.Database {
	t.Helper()
	binDir, dbPath := testutil.Install(t, testutil.Drill())
	db, err := access.Open(dbPath,
		access.WithBackend("mdbtools"),
		access.WithMdbtoolsDir(binDir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenMissingFile(t *testing.T) {
	_, err := access.Open(filepath.Join(t.TempDir(), "nope.mdb"))
	require.Error(t, err)

	var connErr *access.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, dbPath := testutil.Install(t, testutil.Drill())
	_, err := access.Open(dbPath, access.WithBackend("jet"))
	require.Error(t, err)

	var connErr *access.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestTables(t *testing.T) {
	db := openDrill(t)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alteration", "collar", "litho", "survey"}, tables)
}

func TestQueryWithOptions(t *testing.T) {
	db := openDrill(t)

	rs, err := db.Query(ctx, "collar",
		access.WithColumns("hole_id", "block"),
		access.WithWhere(`block == 'NORTH'`),
		access.WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"hole_id", "block"}, rs.Columns)
	assert.Equal(t, 1, rs.Len())
}

func TestQueryUnknownTable(t *testing.T) {
	db := openDrill(t)

	_, err := db.Query(ctx, "assay")
	var nfErr *access.TableNotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func TestCount(t *testing.T) {
	db := openDrill(t)

	count, err := db.Count(ctx, "survey")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestClosedHandle(t *testing.T) {
	db := openDrill(t)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "second close is a no-op")

	_, err := db.Tables(ctx)
	var connErr *access.ConnectionError
	require.True(t, errors.As(err, &connErr))

	_, err = db.Query(ctx, "collar")
	assert.True(t, errors.As(err, &connErr))
}

func TestExportCSV(t *testing.T) {
	db := openDrill(t)
	dest := filepath.Join(t.TempDir(), "collar.csv")

	require.NoError(t, db.ExportCSV(ctx, "collar", dest, access.WithWhere(`block == 'SOUTH'`)))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one SOUTH hole")
	assert.Equal(t, "BH-003", records[1][0])
}

func TestExportXLSX(t *testing.T) {
	db := openDrill(t)
	dest := filepath.Join(t.TempDir(), "collar.xlsx")

	require.NoError(t, db.ExportXLSX(ctx, "collar", dest))
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportSQLite(t *testing.T) {
	db := openDrill(t)
	dest := filepath.Join(t.TempDir(), "snap.sqlite")

	require.NoError(t, db.ExportSQLite(ctx, dest, "collar", "litho"))

	snap, err := sql.Open("sqlite3", dest)
	require.NoError(t, err)
	defer snap.Close()

	var count int
	require.NoError(t, snap.QueryRow(`SELECT COUNT(*) FROM "collar"`).Scan(&count))
	assert.Equal(t, 3, count)

	require.NoError(t, snap.QueryRow(`SELECT COUNT(*) FROM "litho" WHERE lith_code = 'OVB'`).Scan(&count))
	assert.Equal(t, 2, count)
}
