package backend_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/backend"
	"geoaccess/internal/domain"
	"geoaccess/internal/testutil"
)

func TestOpenMdbtools(t *testing.T) {
	binDir, dbPath := testutil.Install(t, testutil.Drill())

	b, err := backend.Open(dbPath, backend.Options{
		Kind:        backend.KindMdbtools,
		MdbtoolsDir: binDir,
	})
	require.NoError(t, err)
	defer b.Close() //nolint:errcheck

	tables, err := b.Tables(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tables, "collar")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := backend.Open(filepath.Join(t.TempDir(), "nope.mdb"), backend.Options{})
	require.Error(t, err)

	var connErr *domain.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestOpenUnknownKind(t *testing.T) {
	_, dbPath := testutil.Install(t, testutil.Drill())

	_, err := backend.Open(dbPath, backend.Options{Kind: backend.Kind("jet")})
	require.Error(t, err)

	var connErr *domain.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Contains(t, err.Error(), "unknown backend")
}
