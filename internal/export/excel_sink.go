package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelSink writes each extract as <dir>/<name>.xlsx with a styled header
// row, for consumers that prefer workbooks over raw CSV.
type ExcelSink struct {
	dir string
}

func NewExcelSink(dir string) *ExcelSink {
	return &ExcelSink{dir: dir}
}

func (s *ExcelSink) Write(ctx context.Context, name string, table *Table) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := name
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})

	for i, col := range table.Columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		cell := colName + "1"
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		f.SetColWidth(sheet, colName, colName, 18)
	}

	for r, row := range table.Rows {
		for c, v := range row {
			colName, _ := excelize.ColumnNumberToName(c + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName, r+2), v)
		}
	}

	path := filepath.Join(s.dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}
