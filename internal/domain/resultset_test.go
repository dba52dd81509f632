package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/domain"
)

func sampleResult() *domain.ResultSet {
	return &domain.ResultSet{
		Columns: []string{"hole_id", "depth", "block"},
		Rows: [][]any{
			{"BH-001", 120.5, "NORTH"},
			{"BH-002", 87.0, "SOUTH"},
			{"BH-003", nil, "NORTH"},
		},
	}
}

func TestResultSetRowMap(t *testing.T) {
	rs := sampleResult()

	m := rs.RowMap(0)
	assert.Equal(t, "BH-001", m["hole_id"])
	assert.Equal(t, 120.5, m["depth"])

	m = rs.RowMap(2)
	assert.Nil(t, m["depth"])
}

func TestResultSetProject(t *testing.T) {
	rs := sampleResult()

	got := rs.Project([]string{"block", "hole_id"})
	require.Equal(t, []string{"block", "hole_id"}, got.Columns)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, []any{"NORTH", "BH-001"}, got.Rows[0])

	// Unknown columns are dropped silently.
	got = rs.Project([]string{"hole_id", "nope"})
	assert.Equal(t, []string{"hole_id"}, got.Columns)

	// No valid columns yields an empty result, not an error.
	got = rs.Project([]string{"nope"})
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Columns)
}

func TestResultSetHead(t *testing.T) {
	rs := sampleResult()

	assert.Equal(t, 2, rs.Head(2).Len())
	assert.Equal(t, 3, rs.Head(0).Len(), "zero means no limit")
	assert.Equal(t, 3, rs.Head(-1).Len())
	assert.Equal(t, 3, rs.Head(10).Len())
}

func TestTableInfoHelpers(t *testing.T) {
	info := &domain.TableInfo{
		Name: "collar",
		Columns: []domain.ColumnInfo{
			{Name: "hole_id", Type: domain.TypeText},
			{Name: "easting", Type: domain.TypeFloat},
		},
	}

	assert.Equal(t, []string{"hole_id", "easting"}, info.ColumnNames())
	assert.True(t, info.HasColumn("easting"))
	assert.False(t, info.HasColumn("northing"))
}
