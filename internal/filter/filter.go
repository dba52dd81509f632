// Package filter evaluates row filter expressions. Expressions use a small
// Python-like syntax over column names, e.g.
//
//	hole_id == 'BH-001'
//	depth_to - depth_from > 1.5 and lith_code != 'OVB'
//
// Evaluation is delegated to Starlark with the row's columns bound as
// globals. Expressions cannot call functions or mutate anything.
package filter

import (
	"fmt"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"geoaccess/internal/domain"
)

// Execution-step cap per row. Filter expressions are tiny; anything that
// hits this is runaway input.
const maxEvalSteps = uint64(10_000)

// Predicate is a compiled row filter.
type Predicate struct {
	src     string
	columns []string
}

// Compile prepares a filter expression for evaluation against rows with the
// given columns. An empty expression compiles to a nil Predicate, which
// matches every row.
func Compile(expr string, columns []string) (*Predicate, error) {
	if expr == "" {
		return nil, nil
	}
	if _, err := (&syntax.FileOptions{}).ParseExpr("<filter>", expr, 0); err != nil {
		return nil, domain.WrapQuery(err, "invalid filter expression %q", expr)
	}
	return &Predicate{src: expr, columns: columns}, nil
}

// Match evaluates the predicate against one row. Columns missing from the
// row bind to None.
func (p *Predicate) Match(row map[string]any) (bool, error) {
	if p == nil {
		return true, nil
	}

	env := make(starlark.StringDict, len(p.columns))
	for _, col := range p.columns {
		env[col] = toStarlark(row[col])
	}

	thread := &starlark.Thread{Name: "row-filter"}
	thread.SetMaxExecutionSteps(maxEvalSteps)
	val, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "<filter>", p.src, env)
	if err != nil {
		return false, domain.WrapQuery(err, "evaluate filter %q", p.src)
	}
	return bool(val.Truth()), nil
}

// toStarlark converts a row value to its Starlark equivalent.
func toStarlark(v any) starlark.Value {
	switch x := v.(type) {
	case nil:
		return starlark.None
	case string:
		return starlark.String(x)
	case bool:
		return starlark.Bool(x)
	case int:
		return starlark.MakeInt(x)
	case int64:
		return starlark.MakeInt64(x)
	case float64:
		return starlark.Float(x)
	case time.Time:
		return starlark.String(x.Format(time.RFC3339))
	default:
		return starlark.String(fmt.Sprintf("%v", x))
	}
}
