package core

import (
	"fmt"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const (
	// ExportSheet is the name of the single worksheet of an export.
	ExportSheet = "Filtered Data"

	// ExportFileName is the download name offered to the browser.
	ExportFileName = "dados_filtrados.xlsx"

	// ExportContentType is the MIME type of Excel 2007+ workbooks.
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// columnPadding is added to the widest value of each column.
	columnPadding = 2

	// maxColumnWidth is the widest column Excel accepts.
	maxColumnWidth = 255
)

// ExportXLSX serializes a wide-form table to an xlsx workbook in memory.
// The workbook has one sheet with string headers followed by exactly the
// table's rows; each column is as wide as its longest value or header plus
// a small padding.
func ExportXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return nil, fmt.Errorf("export: name sheet: %w", err)
	}

	headers := t.Columns
	widths := lo.Map(headers, func(h string, _ int) int { return utf8.RuneCountInString(h) })

	headerRow := lo.Map(headers, func(h string, _ int) any { return h })
	if err := f.SetSheetRow(ExportSheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i, rec := range t.Records {
		row := make([]any, len(headers))
		for j := range row {
			if j < len(rec.Cells) {
				row[j] = rec.Cells[j]
			}
			if n := utf8.RuneCountInString(formatCell(row[j])); n > widths[j] {
				widths[j] = n
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return nil, fmt.Errorf("export: column %d: %w", j+1, err)
		}
		if err := f.SetColWidth(ExportSheet, col, col, float64(min(w+columnPadding, maxColumnWidth))); err != nil {
			return nil, fmt.Errorf("export: width of column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
