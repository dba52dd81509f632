package domain

// FieldType is the inferred type of a table column. The delegates do not
// always report types, so "unknown" is a valid answer.
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
	TypeUnknown FieldType = "unknown"
)

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name     string
	Type     FieldType
	Nullable bool
}

// TableInfo describes a table: its name and ordered column list.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// ColumnNames returns the column names in schema order.
func (t *TableInfo) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (t *TableInfo) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}
