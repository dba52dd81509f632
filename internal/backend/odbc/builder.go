package odbc

import (
	"fmt"
	"strings"

	"geoaccess/internal/domain"
	"geoaccess/internal/filter"
)

// buildSelect renders an Access SQL SELECT for the query. valid is the
// table's actual column set; requested columns outside it are dropped. The
// second return is false when a projection was requested but no requested
// column exists, in which case the caller returns an empty result without
// touching the delegate.
func buildSelect(q domain.Query, valid []string) (string, bool) {
	cols := "*"
	if len(q.Columns) > 0 {
		kept := make([]string, 0, len(q.Columns))
		for _, c := range q.Columns {
			for _, v := range valid {
				if c == v {
					kept = append(kept, quoteIdent(c))
					break
				}
			}
		}
		if len(kept) == 0 {
			return "", false
		}
		cols = strings.Join(kept, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.Limit > 0 {
		// Access SQL uses TOP, not LIMIT.
		fmt.Fprintf(&sb, "TOP %d ", q.Limit)
	}
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(q.Table))
	if q.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(filter.TranslateSQL(q.Where))
	}
	return sb.String(), true
}

// quoteIdent bracket-quotes an identifier for Access SQL.
func quoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
