package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"geoaccess/internal/domain"
)

// WriteXLSX writes a result set as a single-sheet workbook, header row
// first. The sheet is named after the source table.
func WriteXLSX(path, sheet string, rs *domain.ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	} else {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("name sheet %q: %w", sheet, err)
		}
	}

	for i, col := range rs.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}
	for i, row := range rs.Rows {
		for j := range rs.Columns {
			if j >= len(row) || row[j] == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, row[j]); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
