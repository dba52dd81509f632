package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"geoaccess/internal/domain"
)

// printResult renders a result set in the requested output format.
func printResult(w io.Writer, format string, rs *domain.ResultSet) error {
	switch format {
	case "json":
		rows := make([]map[string]any, rs.Len())
		for i := range rs.Rows {
			rows[i] = rs.RowMap(i)
		}
		return printJSON(w, rows)
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(rs.Columns); err != nil {
			return err
		}
		for _, row := range rs.Rows {
			record := make([]string, len(rs.Columns))
			for i := range record {
				if i < len(row) {
					record[i] = formatCell(row[i])
				}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, col := range rs.Columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col)
		}
		fmt.Fprintln(tw)
		for _, row := range rs.Rows {
			for i := range rs.Columns {
				if i > 0 {
					fmt.Fprint(tw, "\t")
				}
				if i < len(row) {
					fmt.Fprint(tw, formatCell(row[i]))
				}
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q (want table, csv or json)", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatCell(v any) string {
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
