package core

import (
	"sort"

	"github.com/samber/lo"
)

// Measure identifies one of the eight numeric count columns of the dataset.
type Measure int

const (
	SchoolsWithLibrary Measure = iota
	SchoolsWithoutLibrary
	EnrollmentWithLibrary
	EnrollmentWithoutLibrary
	SchoolsWithStaff
	SchoolsWithoutStaff
	EnrollmentWithStaff
	EnrollmentWithoutStaff

	measureCount
)

// ColumnSpec describes how a dataset column is recognized in the header row.
type ColumnSpec struct {
	Name    string   // Canonical header
	Aliases []string // Accepted alternatives, matched ignoring case and accents
}

var (
	YearColumn     = ColumnSpec{Name: "Year", Aliases: []string{"Ano"}}
	BlockColumn    = ColumnSpec{Name: "Block", Aliases: []string{"Bloco"}}
	CategoryColumn = ColumnSpec{Name: "Category", Aliases: []string{"Categoria"}}
)

// measureColumns is indexed by Measure.
var measureColumns = [measureCount]ColumnSpec{
	SchoolsWithLibrary:       {Name: "Schools with Library", Aliases: []string{"Escolas com Biblioteca"}},
	SchoolsWithoutLibrary:    {Name: "Schools without Library", Aliases: []string{"Escolas sem Biblioteca"}},
	EnrollmentWithLibrary:    {Name: "Enrollment with Library", Aliases: []string{"Matrículas com Biblioteca"}},
	EnrollmentWithoutLibrary: {Name: "Enrollment without Library", Aliases: []string{"Matrículas sem Biblioteca"}},
	SchoolsWithStaff:         {Name: "Schools with Librarian", Aliases: []string{"Escolas com Bibliotecário"}},
	SchoolsWithoutStaff:      {Name: "Schools without Librarian", Aliases: []string{"Escolas sem Bibliotecário"}},
	EnrollmentWithStaff:      {Name: "Enrollment with Librarian", Aliases: []string{"Matrículas com Bibliotecário"}},
	EnrollmentWithoutStaff:   {Name: "Enrollment without Librarian", Aliases: []string{"Matrículas sem Bibliotecário"}},
}

// Column returns the column spec of a measure.
func (m Measure) Column() ColumnSpec {
	return measureColumns[m]
}

// String returns the canonical column name.
func (m Measure) String() string {
	if m < 0 || m >= measureCount {
		return "unknown"
	}
	return measureColumns[m].Name
}

// Measures returns every measure in dataset order.
func Measures() []Measure {
	out := make([]Measure, measureCount)
	for i := range out {
		out[i] = Measure(i)
	}
	return out
}

// Counts holds the eight numeric values of a record, indexed by Measure.
type Counts [measureCount]float64

// Record is one wide-form row of the dataset.
type Record struct {
	Year     string
	Block    string
	Category string
	Counts   Counts

	// Cells is the full row aligned with Table.Columns. The Year cell holds
	// the normalized string and count cells hold float64 values.
	Cells []any
}

// Table is a wide-form table. Tables are never modified after construction;
// every pipeline step returns a new one.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Years returns the distinct Year values sorted as strings.
func (t *Table) Years() []string {
	years := lo.Uniq(lo.Map(t.Records, func(r Record, _ int) string { return r.Year }))
	sort.Strings(years)
	return years
}

// Blocks returns the distinct Block values in order of first appearance.
func (t *Table) Blocks() []string {
	return lo.Uniq(lo.Map(t.Records, func(r Record, _ int) string { return r.Block }))
}

// AllCategories is the category selector sentinel that expands to every
// non-aggregate category of the selected block.
const AllCategories = "ALL"

// Selection is a resolved filter: one block, a set of years and a set of
// categories. Values are compared by string equality.
type Selection struct {
	Block      string   `json:"block"`
	Years      []string `json:"years"`
	Categories []string `json:"categories"`
}

// LongRow is one row of a long-form (tidy) table.
type LongRow struct {
	Year     string  `json:"year"`
	Category string  `json:"category"`
	Series   string  `json:"series"`
	Value    float64 `json:"value"`
}

// LongTable is the reshaped form fed to the chart builders.
type LongTable []LongRow

// Warning is a non-fatal condition surfaced to the user next to the filters.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarnEmptyCategories is raised when the category selection had to be
// replaced by the full category set of the block.
var WarnEmptyCategories = Warning{
	Code:    "SEL100",
	Message: "At least one category must be selected. Selecting all by default.",
}
