package search

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"stockctl/internal/inventory"
	"stockctl/internal/table"
)

// exportHeader is the full six-column stock layout; exports always carry
// every column even though the on-screen report shows four.
var exportHeader = []string{"item_id", "stock", "manufacturer", "category", "description", "price"}

// Export writes rows to path, choosing the format from the file
// extension: .csv, .xlsx, or .db/.sqlite/.sqlite3.
func Export(path string, rows []*inventory.Row) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ExportCSV(path, rows)
	case ".xlsx":
		return ExportXLSX(path, rows)
	case ".db", ".sqlite", ".sqlite3":
		return ExportSQLite(path, rows)
	default:
		return fmt.Errorf("unsupported export format %q (use .csv, .xlsx, .db, .sqlite or .sqlite3)", ext)
	}
}

// ExportCSV writes rows as a stock-format CSV file. Shares the activity
// files' failure modes: table.ErrWriteBlocked when the target cannot be
// written.
func ExportCSV(path string, rows []*inventory.Row) error {
	t := &table.Table{Header: exportHeader}
	for _, row := range rows {
		t.Rows = append(t.Rows, exportRow(row))
	}
	return table.WriteFile(path, t)
}

// ExportXLSX writes rows as a single-sheet XLSX workbook.
func ExportXLSX(path string, rows []*inventory.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.ID, row.Stock, row.Manufacturer, row.Category, row.Description, row.Price.StringFixed(2)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func exportRow(row *inventory.Row) []string {
	return []string{
		row.ID,
		strconv.Itoa(row.Stock),
		row.Manufacturer,
		row.Category,
		row.Description,
		row.Price.StringFixed(2),
	}
}
