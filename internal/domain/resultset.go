package domain

// ResultSet is a materialized tabular query result. Row values are typed
// per the inferred column type: string, int64, float64, bool, or nil for
// missing values.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int { return len(r.Rows) }

// RowMap returns row i as a column-name → value map.
func (r *ResultSet) RowMap(i int) map[string]any {
	m := make(map[string]any, len(r.Columns))
	for j, col := range r.Columns {
		if j < len(r.Rows[i]) {
			m[col] = r.Rows[i][j]
		}
	}
	return m
}

// Project returns a new ResultSet restricted to the named columns, in the
// order given. Names that do not exist in the result are dropped. An empty
// valid set yields an empty ResultSet.
func (r *ResultSet) Project(columns []string) *ResultSet {
	idx := make([]int, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, want := range columns {
		for j, have := range r.Columns {
			if have == want {
				idx = append(idx, j)
				names = append(names, have)
				break
			}
		}
	}
	if len(idx) == 0 {
		return &ResultSet{}
	}

	out := &ResultSet{Columns: names, Rows: make([][]any, len(r.Rows))}
	for i, row := range r.Rows {
		projected := make([]any, len(idx))
		for k, j := range idx {
			if j < len(row) {
				projected[k] = row[j]
			}
		}
		out.Rows[i] = projected
	}
	return out
}

// Head returns a new ResultSet containing at most n rows. n <= 0 means no
// limit and returns the receiver unchanged.
func (r *ResultSet) Head(n int) *ResultSet {
	if n <= 0 || n >= len(r.Rows) {
		return r
	}
	return &ResultSet{Columns: r.Columns, Rows: r.Rows[:n]}
}
