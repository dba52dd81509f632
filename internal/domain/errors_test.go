package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/domain"
)

func TestTypedErrors(t *testing.T) {
	var connErr *domain.ConnectionError
	err := fmt.Errorf("open: %w", domain.ErrConnection("database file not found: %s", "x.mdb"))
	require.True(t, errors.As(err, &connErr))
	assert.Contains(t, connErr.Message, "x.mdb")

	var nfErr *domain.TableNotFoundError
	err = domain.ErrTableNotFound("litho")
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "litho", nfErr.Table)
	assert.Equal(t, `table "litho" not found`, err.Error())
}

func TestWrapQueryPreservesOriginal(t *testing.T) {
	cause := errors.New("exit status 1: file is corrupt")
	err := domain.WrapQuery(cause, "mdb-export failed")

	var qErr *domain.QueryError
	require.True(t, errors.As(err, &qErr))
	assert.Contains(t, err.Error(), "file is corrupt", "delegate message must be preserved")
	assert.ErrorIs(t, err, cause)
}
