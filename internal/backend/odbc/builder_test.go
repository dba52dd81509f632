package odbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoaccess/internal/domain"
)

var collarColumns = []string{"hole_id", "block", "easting"}

func TestBuildSelectAllColumns(t *testing.T) {
	sql, ok := buildSelect(domain.Query{Table: "collar"}, collarColumns)
	require.True(t, ok)
	assert.Equal(t, "SELECT * FROM [collar]", sql)
}

func TestBuildSelectProjection(t *testing.T) {
	sql, ok := buildSelect(domain.Query{
		Table:   "collar",
		Columns: []string{"easting", "hole_id", "bogus"},
	}, collarColumns)
	require.True(t, ok)
	assert.Equal(t, "SELECT [easting], [hole_id] FROM [collar]", sql)
}

func TestBuildSelectNoValidColumns(t *testing.T) {
	_, ok := buildSelect(domain.Query{Table: "collar", Columns: []string{"bogus"}}, collarColumns)
	assert.False(t, ok)
}

func TestBuildSelectTopAndWhere(t *testing.T) {
	sql, ok := buildSelect(domain.Query{
		Table: "collar",
		Where: `block == "NORTH"`,
		Limit: 5,
	}, collarColumns)
	require.True(t, ok)
	assert.Equal(t, "SELECT TOP 5 * FROM [collar] WHERE block = 'NORTH'", sql)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "[collar]", quoteIdent("collar"))
	assert.Equal(t, "[odd]]name]", quoteIdent("odd]name"))
}

func TestFieldTypeFromODBC(t *testing.T) {
	assert.Equal(t, domain.TypeText, fieldTypeFromODBC("VARCHAR"))
	assert.Equal(t, domain.TypeInteger, fieldTypeFromODBC("COUNTER"))
	assert.Equal(t, domain.TypeFloat, fieldTypeFromODBC("DOUBLE"))
	assert.Equal(t, domain.TypeBoolean, fieldTypeFromODBC("BIT"))
	assert.Equal(t, domain.TypeDate, fieldTypeFromODBC("DATETIME"))
	assert.Equal(t, domain.TypeUnknown, fieldTypeFromODBC("GUID"))
}
