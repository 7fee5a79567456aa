package core

import (
	"reflect"
	"testing"
)

// regionTable builds the table of Scenario-style tests: two years, two
// regions and an aggregate row.
func regionTable() *Table {
	rec := func(year, block, cat string, counts ...float64) Record {
		r := Record{Year: year, Block: block, Category: cat}
		copy(r.Counts[:], counts)
		return r
	}
	return &Table{
		Columns: []string{"Year", "Block", "Category"},
		Records: []Record{
			rec("2022", "By Region", "North", 10, 5),
			rec("2022", "By Region", "South", 20, 2),
			rec("2022", "By Region", "Total", 30, 7),
			rec("2023", "By Region", "North", 11, 4),
			rec("2023", "By Region", "South", 21, 1),
			rec("2022", "By State", "Acre", 1, 1),
			rec("2022", "By State", "Total Brasil", 1, 1),
			rec("2022", "By Network Type", "Total Municipal", 3, 3),
			rec("2022", "By Network Type", "Total Estadual", 4, 4),
		},
	}
}

func categoriesOf(t *Table) []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Year + "/" + r.Category
	}
	return out
}

func TestIsAggregate(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Total", true},
		{"Total Brasil", true},
		{"Subtotal", false},
		{"North", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAggregate(tt.category); got != tt.want {
			t.Errorf("IsAggregate(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestAvailableCategories(t *testing.T) {
	table := regionTable()

	tests := []struct {
		block string
		want  []string
	}{
		{block: "By Region", want: []string{"North", "South"}},
		{block: "By State", want: []string{"Acre"}},
		{block: "By Network Type", want: []string{}},
		{block: "By Planet", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.block, func(t *testing.T) {
			got := AvailableCategories(table, tt.block)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AvailableCategories(%q) = %v, want %v", tt.block, got, tt.want)
			}
		})
	}
}

func TestResolveCategories(t *testing.T) {
	table := regionTable()

	tests := []struct {
		name        string
		block       string
		selected    []string
		want        []string
		wantWarning bool
	}{
		{
			name:     "ALL expands to available categories",
			block:    "By Region",
			selected: []string{AllCategories},
			want:     []string{"North", "South"},
		},
		{
			name:     "ALL among explicit values still expands",
			block:    "By Region",
			selected: []string{"North", AllCategories},
			want:     []string{"North", "South"},
		},
		{
			name:        "empty selection falls back with warning",
			block:       "By Region",
			selected:    nil,
			want:        []string{"North", "South"},
			wantWarning: true,
		},
		{
			name:     "explicit selection kept",
			block:    "By Region",
			selected: []string{"South"},
			want:     []string{"South"},
		},
		{
			name:     "explicit duplicates collapsed",
			block:    "By Region",
			selected: []string{"South", "South"},
			want:     []string{"South"},
		},
		{
			name:        "aggregate-only block warns with empty set",
			block:       "By Network Type",
			selected:    []string{AllCategories},
			want:        nil,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := ResolveCategories(table, tt.block, tt.selected)
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("categories = %v, want %v", got, tt.want)
			}
			if gotWarning := len(warnings) > 0; gotWarning != tt.wantWarning {
				t.Errorf("warnings = %v, wantWarning %v", warnings, tt.wantWarning)
			}
			if tt.wantWarning && warnings[0] != WarnEmptyCategories {
				t.Errorf("warning = %+v, want %+v", warnings[0], WarnEmptyCategories)
			}
		})
	}
}

func TestResolveCategories_NeverContainsAggregates(t *testing.T) {
	table := regionTable()
	for _, block := range []string{"By Region", "By State", "By Network Type"} {
		got, _ := ResolveCategories(table, block, []string{AllCategories})
		for _, c := range got {
			if IsAggregate(c) {
				t.Errorf("block %q resolved aggregate category %q", block, c)
			}
		}
	}
}

// Scenario 1: one year, ALL categories.
func TestFilter_SingleYearAllCategories(t *testing.T) {
	table := regionTable()
	cats, _ := ResolveCategories(table, "By Region", []string{AllCategories})

	got := Filter(table, Selection{Block: "By Region", Years: []string{"2022"}, Categories: cats})

	want := []string{"2022/North", "2022/South"}
	if !reflect.DeepEqual(categoriesOf(got), want) {
		t.Errorf("Filter() rows = %v, want %v", categoriesOf(got), want)
	}
}

// Scenario 4: aggregate-only block, empty selection.
func TestFilter_AggregateOnlyBlock(t *testing.T) {
	table := regionTable()
	cats, warnings := ResolveCategories(table, "By Network Type", nil)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}

	got := Filter(table, Selection{Block: "By Network Type", Years: table.Years(), Categories: cats})
	if got.Len() != 0 {
		t.Errorf("Filter() rows = %d, want 0", got.Len())
	}

	// The empty result still flows through the rest of the pipeline.
	mode := ReportMode{
		Schools:    SeriesPair{Title: "s", Series: [2]Series{{SchoolsWithLibrary, "with"}, {SchoolsWithoutLibrary, "without"}}},
		Enrollment: SeriesPair{Title: "e", Series: [2]Series{{EnrollmentWithLibrary, "with"}, {EnrollmentWithoutLibrary, "without"}}},
	}
	schools, title, _, _ := Reshape(got, mode)
	if fig := BuildChart(schools, title, DefaultChartOptions()); fig == nil || len(fig.Data) != 0 {
		t.Errorf("BuildChart() = %+v, want empty figure", fig)
	}
}

func TestFilter_YearSupersetIdempotent(t *testing.T) {
	table := regionTable()
	cats := []string{"North", "South"}

	exact := Filter(table, Selection{Block: "By Region", Years: table.Years(), Categories: cats})
	superset := Filter(table, Selection{
		Block:      "By Region",
		Years:      append(table.Years(), "1999", "2030", "not-a-year"),
		Categories: cats,
	})

	if !reflect.DeepEqual(exact.Records, superset.Records) {
		t.Errorf("superset rows = %v, want %v", categoriesOf(superset), categoriesOf(exact))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	table := regionTable()
	before := len(table.Records)

	_ = Filter(table, Selection{Block: "By Region", Years: []string{"2023"}, Categories: []string{"North"}})

	if len(table.Records) != before {
		t.Errorf("input rows = %d, want %d", len(table.Records), before)
	}
}

func TestFilter_NoYears(t *testing.T) {
	table := regionTable()
	got := Filter(table, Selection{Block: "By Region", Years: nil, Categories: []string{"North"}})
	if got.Len() != 0 {
		t.Errorf("Filter() rows = %d, want 0", got.Len())
	}
	if !reflect.DeepEqual(got.Columns, table.Columns) {
		t.Errorf("Columns = %v, want %v", got.Columns, table.Columns)
	}
}
