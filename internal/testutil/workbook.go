// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// TestingT is a subset of testing.T used for fixture setup.
type TestingT interface {
	Helper()
	TempDir() string
	Fatalf(format string, args ...any)
}

// Header is the canonical dataset header row.
var Header = []string{
	"Year", "Block", "Category",
	"Schools with Library", "Schools without Library",
	"Enrollment with Library", "Enrollment without Library",
	"Schools with Librarian", "Schools without Librarian",
	"Enrollment with Librarian", "Enrollment without Librarian",
}

// Row is one dataset row. Year is written as is, so a float64 2022.0
// produces a numeric cell.
type Row struct {
	Year     any
	Block    string
	Category string
	Counts   [8]float64
}

// Cells returns the row in Header order.
func (r Row) Cells() []any {
	cells := []any{r.Year, r.Block, r.Category}
	for _, c := range r.Counts {
		cells = append(cells, c)
	}
	return cells
}

// SampleRows is a small dataset with two years, two blocks and aggregate rows.
func SampleRows() []Row {
	return []Row{
		{Year: 2021, Block: "By Education Stage", Category: "Early Childhood", Counts: [8]float64{10, 5, 1200, 300, 4, 6, 500, 700}},
		{Year: 2021, Block: "By Education Stage", Category: "Elementary", Counts: [8]float64{20, 8, 3000, 900, 9, 11, 1400, 1600}},
		{Year: 2021, Block: "By Education Stage", Category: "Total Brasil", Counts: [8]float64{30, 13, 4200, 1200, 13, 17, 1900, 2300}},
		{Year: 2022.0, Block: "By Education Stage", Category: "Early Childhood", Counts: [8]float64{12, 4, 1300, 250, 5, 7, 600, 700}},
		{Year: 2022.0, Block: "By Education Stage", Category: "Elementary", Counts: [8]float64{21, 7, 3100, 800, 10, 11, 1500, 1600}},
		{Year: 2022.0, Block: "By Education Stage", Category: "Total Brasil", Counts: [8]float64{33, 11, 4400, 1050, 15, 18, 2100, 2300}},
		{Year: 2021, Block: "By Region", Category: "North", Counts: [8]float64{7, 9, 800, 1100, 2, 5, 200, 600}},
		{Year: 2022.0, Block: "By Region", Category: "North", Counts: [8]float64{8, 8, 900, 1000, 3, 5, 300, 600}},
		{Year: 2022.0, Block: "By Region", Category: "South", Counts: [8]float64{15, 2, 2000, 150, 8, 7, 1100, 900}},
		{Year: 2022.0, Block: "By Region", Category: "Total", Counts: [8]float64{23, 10, 2900, 1150, 11, 12, 1400, 1500}},
	}
}

// WriteWorkbook writes rows under the canonical header to a new xlsx file in
// a temporary directory and returns its path.
func WriteWorkbook(t TestingT, rows []Row) string {
	t.Helper()

	cells := make([][]any, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}
	return WriteSheet(t, "Sheet1", Header, cells)
}

// WriteSheet writes an arbitrary header and rows to a new xlsx file and
// returns its path.
func WriteSheet(t TestingT, sheet string, header []string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+2, err)
		}
	}

	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
