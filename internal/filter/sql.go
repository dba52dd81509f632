package filter

import "strings"

// TranslateSQL converts a filter expression to an Access SQL WHERE clause
// for delegates that can push the filter down. `==` becomes `=`, and string
// literals (single- or double-quoted, with backslash escapes) are re-emitted
// as Access SQL literals: single-quoted, embedded quotes doubled.
func TranslateSQL(where string) string {
	var out strings.Builder
	for i := 0; i < len(where); {
		c := where[i]
		switch {
		case c == '\'' || c == '"':
			lit, n := readLiteral(where[i:], c)
			out.WriteString(sqlLiteral(lit))
			i += n
		case c == '=' && i+1 < len(where) && where[i+1] == '=':
			out.WriteByte('=')
			i += 2
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// readLiteral consumes a quoted literal starting at the opening delimiter
// and returns its unescaped contents plus the bytes consumed.
func readLiteral(s string, delim byte) (string, int) {
	var val strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			val.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == delim {
			return val.String(), i + 1
		}
		val.WriteByte(c)
		i++
	}
	return val.String(), i
}

func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
