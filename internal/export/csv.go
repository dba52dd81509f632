// Package export serializes materialized result sets to CSV, XLSX and
// SQLite files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"geoaccess/internal/domain"
)

// WriteCSV writes a result set as CSV: header row then data rows.
func WriteCSV(path string, rs *domain.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rs.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatValue(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// formatValue renders a typed cell value for text output.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
