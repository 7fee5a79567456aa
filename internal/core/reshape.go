package core

// Reshape melts the filtered wide table into the two long-form tables of a
// report mode: school counts first, enrollment counts second. Each is
// returned with its chart title.
func Reshape(t *Table, mode ReportMode) (LongTable, string, LongTable, string) {
	return melt(t, mode.Schools), mode.Schools.Title, melt(t, mode.Enrollment), mode.Enrollment.Title
}

// melt emits every record once per series: all rows of the first measure in
// table order, then all rows of the second. Zero values are kept.
func melt(t *Table, pair SeriesPair) LongTable {
	out := make(LongTable, 0, len(pair.Series)*t.Len())
	for _, s := range pair.Series {
		for _, r := range t.Records {
			out = append(out, LongRow{
				Year:     r.Year,
				Category: r.Category,
				Series:   s.Label,
				Value:    r.Counts[s.Measure],
			})
		}
	}
	return out
}
