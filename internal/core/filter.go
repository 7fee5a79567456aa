package core

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// aggregateMarker identifies aggregate rows ("Total Brasil", "Total") that
// are never offered as user-selectable categories.
const aggregateMarker = "Total"

// IsAggregate reports whether a category is an aggregate row.
func IsAggregate(category string) bool {
	return strings.Contains(category, aggregateMarker)
}

// AvailableCategories returns the sorted distinct non-aggregate categories
// present within a block.
func AvailableCategories(t *Table, block string) []string {
	cats := lo.FilterMap(t.Records, func(r Record, _ int) (string, bool) {
		return r.Category, r.Block == block && !IsAggregate(r.Category)
	})
	cats = lo.Uniq(cats)
	sort.Strings(cats)
	return cats
}

// ResolveCategories expands the user's category selection for a block.
//
// A selection containing AllCategories, or an empty selection, resolves to
// every available category of the block. An empty user selection and an
// empty resolved set both produce WarnEmptyCategories; the pipeline then
// continues with whatever the block offers, even nothing.
func ResolveCategories(t *Table, block string, selected []string) ([]string, []Warning) {
	if len(selected) > 0 && !lo.Contains(selected, AllCategories) {
		return lo.Uniq(selected), nil
	}

	available := AvailableCategories(t, block)

	var warnings []Warning
	if len(selected) == 0 || len(available) == 0 {
		warnings = append(warnings, WarnEmptyCategories)
	}
	return available, warnings
}

// Filter returns the rows whose Year is in sel.Years, whose Block equals
// sel.Block and whose Category is in sel.Categories. The input table is
// left untouched.
func Filter(t *Table, sel Selection) *Table {
	years := lo.SliceToMap(sel.Years, func(y string) (string, struct{}) { return y, struct{}{} })
	cats := lo.SliceToMap(sel.Categories, func(c string) (string, struct{}) { return c, struct{}{} })

	records := lo.Filter(t.Records, func(r Record, _ int) bool {
		if r.Block != sel.Block {
			return false
		}
		if _, ok := years[r.Year]; !ok {
			return false
		}
		_, ok := cats[r.Category]
		return ok
	})

	return &Table{Columns: t.Columns, Records: records}
}
