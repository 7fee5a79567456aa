package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sentinel errors returned by the pipeline. Wrap with fmt.Errorf("...: %w").
var (
	ErrMalformedDataset = errors.New("malformed dataset")
	ErrUnknownBlock     = errors.New("unknown block")
	ErrUnknownMode      = errors.New("unknown report mode")
	ErrUnknownChart     = errors.New("unknown chart")
)

// Dataset loads the dashboard spreadsheet once per process and hands the
// same immutable Table to every caller afterwards.
type Dataset struct {
	path  string
	sheet string

	once  sync.Once
	table *Table
	err   error
}

// NewDataset creates a lazily loaded dataset for the given xlsx file.
// An empty sheet name selects the first worksheet.
func NewDataset(path, sheet string) *Dataset {
	return &Dataset{path: path, sheet: sheet}
}

// Path returns the file the dataset is read from.
func (d *Dataset) Path() string {
	return d.path
}

// Load reads the spreadsheet on first call and returns the cached result on
// every later call, including a cached error. A failed load is never retried.
func (d *Dataset) Load(ctx context.Context) (*Table, error) {
	d.once.Do(func() {
		start := time.Now()
		d.table, d.err = ReadWorkbook(d.path, d.sheet)
		if d.err != nil {
			return
		}
		slog.InfoContext(ctx, "dataset loaded",
			"path", d.path,
			"rows", d.table.Len(),
			"columns", len(d.table.Columns),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
	return d.table, d.err
}

// ReadWorkbook reads a table from an xlsx file on disk.
func ReadWorkbook(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// ReadWorkbookFrom reads a table from an xlsx byte stream.
func ReadWorkbookFrom(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// columnIndex records where each known column sits in the header row.
type columnIndex struct {
	year     int
	block    int
	category int
	measures [measureCount]int
	measure  map[int]Measure // position -> measure, for typed cells
}

func readSheet(f *excelize.File, sheet string) (*Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedDataset)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformedDataset, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrMalformedDataset, sheet)
	}

	columns := headerNames(rows[0])
	idx, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec, err := buildRecord(row, columns, idx)
		if err != nil {
			// i+2: 1-based, plus the header row
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedDataset, i+2, err)
		}
		records = append(records, rec)
	}

	return &Table{Columns: columns, Records: records}, nil
}

// headerNames turns the header row into column names. Unnamed columns get a
// positional name so every header is a non-empty string.
func headerNames(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		h = CleanCell(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
	}
	return columns
}

func indexColumns(columns []string) (columnIndex, error) {
	positions := make(map[string]int, len(columns))
	for i, c := range columns {
		key := foldHeader(c)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	find := func(spec ColumnSpec) (int, error) {
		for _, name := range append([]string{spec.Name}, spec.Aliases...) {
			if pos, ok := positions[foldHeader(name)]; ok {
				return pos, nil
			}
		}
		return -1, fmt.Errorf("%w: missing required column %q", ErrMalformedDataset, spec.Name)
	}

	idx := columnIndex{measure: make(map[int]Measure, measureCount)}
	var err error
	if idx.year, err = find(YearColumn); err != nil {
		return idx, err
	}
	if idx.block, err = find(BlockColumn); err != nil {
		return idx, err
	}
	if idx.category, err = find(CategoryColumn); err != nil {
		return idx, err
	}
	for _, m := range Measures() {
		pos, err := find(m.Column())
		if err != nil {
			return idx, err
		}
		idx.measures[m] = pos
		idx.measure[pos] = m
	}
	return idx, nil
}

func buildRecord(row, columns []string, idx columnIndex) (Record, error) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	rec := Record{
		Year:     NormalizeYear(cell(idx.year)),
		Block:    CleanCell(cell(idx.block)),
		Category: CleanCell(cell(idx.category)),
		Cells:    make([]any, len(columns)),
	}

	for _, m := range Measures() {
		v, err := ParseCount(cell(idx.measures[m]))
		if err != nil {
			return Record{}, fmt.Errorf("column %q: %v", columns[idx.measures[m]], err)
		}
		rec.Counts[m] = v
	}

	for i := range columns {
		switch m, isMeasure := idx.measure[i]; {
		case i == idx.year:
			rec.Cells[i] = rec.Year
		case isMeasure:
			rec.Cells[i] = rec.Counts[m]
		default:
			rec.Cells[i] = cell(i)
		}
	}

	return rec, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
