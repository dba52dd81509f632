package mdbtools

import (
	"strconv"
	"strings"
	"time"

	"geoaccess/internal/domain"
)

// Date layouts mdb-export is known to emit.
var dateLayouts = []string{
	"01/02/06 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// inferColumns derives column types from sampled rows. Precedence:
// integer, float, boolean, date, text. Empty values do not vote but mark
// the column nullable; a column with only empty samples stays unknown.
func inferColumns(header []string, sample [][]string) []domain.ColumnInfo {
	columns := make([]domain.ColumnInfo, len(header))
	for i, name := range header {
		columns[i] = domain.ColumnInfo{Name: name, Type: inferType(sample, i, &columns[i].Nullable)}
	}
	return columns
}

func inferType(sample [][]string, col int, nullable *bool) domain.FieldType {
	isInt, isFloat, isBool, isDate := true, true, true, true
	seen := false

	for _, row := range sample {
		if col >= len(row) {
			*nullable = true
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			*nullable = true
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool && !isBoolLiteral(v) {
			isBool = false
		}
		if isDate && !isDateLiteral(v) {
			isDate = false
		}
	}

	switch {
	case !seen:
		return domain.TypeUnknown
	case isBool:
		return domain.TypeBoolean
	case isInt:
		return domain.TypeInteger
	case isFloat:
		return domain.TypeFloat
	case isDate:
		return domain.TypeDate
	default:
		return domain.TypeText
	}
}

func isBoolLiteral(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	}
	return false
}

func isDateLiteral(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// convertRow maps raw CSV fields to typed values per the inferred column
// types. Unparseable values fall back to the raw string.
func convertRow(record []string, header []string, columns []domain.ColumnInfo) []any {
	row := make([]any, len(header))
	for i := range header {
		if i >= len(record) {
			continue
		}
		row[i] = convertValue(record[i], typeFor(columns, header[i]))
	}
	return row
}

func typeFor(columns []domain.ColumnInfo, name string) domain.FieldType {
	for _, c := range columns {
		if c.Name == name {
			return c.Type
		}
	}
	return domain.TypeUnknown
}

func convertValue(raw string, t domain.FieldType) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	switch t {
	case domain.TypeInteger:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case domain.TypeFloat:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case domain.TypeBoolean:
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			return b
		}
	}
	return v
}
