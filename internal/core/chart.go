package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// facetSpacing is the horizontal gap between facet panels, in paper units.
const facetSpacing = 0.03

// hoverTemplate shows series, year, category and value of a segment.
// customdata carries [series, year, category].
const hoverTemplate = "<b>%{customdata[0]}</b><br>Year: %{customdata[1]}<br>Category: %{customdata[2]}<br>Value: %{y:,.0f}<extra></extra>"

// defaultPalette matches the Plotly qualitative palette so the static
// rendering and the browser chart share colors.
var defaultPalette = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A", "#19D3F3"}

// ChartOptions controls the fixed presentation of a chart.
type ChartOptions struct {
	Height      int
	AccentColor string
	Palette     []string
}

// DefaultChartOptions returns the dashboard's standard presentation.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Height: 500, AccentColor: "#0071BC", Palette: defaultPalette}
}

func (o ChartOptions) color(i int) string {
	palette := o.Palette
	if len(palette) == 0 {
		palette = defaultPalette
	}
	return palette[i%len(palette)]
}

// Figure is a Plotly figure: stacked bar traces plus layout. It marshals to
// the JSON accepted by Plotly.newPlot.
type Figure struct {
	Data   []BarTrace `json:"data"`
	Layout Layout     `json:"layout"`
}

// BarTrace is one series within one facet panel.
type BarTrace struct {
	Type             string     `json:"type"`
	Name             string     `json:"name"`
	LegendGroup      string     `json:"legendgroup"`
	ShowLegend       bool       `json:"showlegend"`
	X                []string   `json:"x"`
	Y                []float64  `json:"y"`
	Text             []string   `json:"text"`
	TextPosition     string     `json:"textposition"`
	InsideTextAnchor string     `json:"insidetextanchor"`
	HoverTemplate    string     `json:"hovertemplate"`
	CustomData       [][]string `json:"customdata"`
	Marker           Marker     `json:"marker"`
	XAxis            string     `json:"xaxis"`
	YAxis            string     `json:"yaxis"`
}

type Marker struct {
	Color string `json:"color"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

type Legend struct {
	Title Title `json:"title"`
}

// Annotation is a facet panel header.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor"`
	YAnchor   string  `json:"yanchor"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font"`
}

// Axis is one x or y axis of a facet panel.
type Axis struct {
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	Matches        string    `json:"matches,omitempty"`
	Title          Title     `json:"title"`
	TickAngle      *int      `json:"tickangle,omitempty"`
	TickFormat     string    `json:"tickformat,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	CategoryOrder  string    `json:"categoryorder,omitempty"`
	CategoryArray  []string  `json:"categoryarray,omitempty"`
}

// Layout holds the figure layout. XAxes[i] and YAxes[i] belong to facet i
// and marshal as xaxis, xaxis2, ... and yaxis, yaxis2, ...
type Layout struct {
	Title       Title
	Height      int
	BarMode     string
	Legend      Legend
	Annotations []Annotation
	XAxes       []Axis
	YAxes       []Axis
}

// MarshalJSON flattens the per-facet axes into Plotly's numbered keys.
func (l Layout) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"title":       l.Title,
		"height":      l.Height,
		"barmode":     l.BarMode,
		"legend":      l.Legend,
		"annotations": l.Annotations,
	}
	if l.Annotations == nil {
		m["annotations"] = []Annotation{}
	}
	for i, ax := range l.XAxes {
		m[axisName("xaxis", i)] = ax
	}
	for i, ax := range l.YAxes {
		m[axisName("yaxis", i)] = ax
	}
	return json.Marshal(m)
}

// axisName numbers an axis for facet i: "xaxis", "xaxis2", ... for layout
// keys and "x", "x2", ... for trace references.
func axisName(prefix string, i int) string {
	if i == 0 {
		return prefix
	}
	return prefix + strconv.Itoa(i+1)
}

// BuildChart builds a faceted stacked bar chart from a long-form table:
// x is Category, y the summed Value, color the Series, and one panel per
// Year ordered as strings from left to right.
func BuildChart(long LongTable, title string, opts ChartOptions) *Figure {
	agg := aggregate(long)

	fig := &Figure{
		Data: []BarTrace{},
		Layout: Layout{
			Title:   Title{Text: title},
			Height:  opts.Height,
			BarMode: "stack",
			Legend:  Legend{Title: Title{Text: ""}},
		},
	}

	n := len(agg.years)
	if n == 0 {
		fig.Layout.XAxes = []Axis{xAxis(nil, "y", agg.categories)}
		fig.Layout.YAxes = []Axis{yAxis("x", "", true)}
		return fig
	}

	width := (1 - facetSpacing*float64(n-1)) / float64(n)
	for i, year := range agg.years {
		start := float64(i) * (width + facetSpacing)
		domain := []float64{round4(start), round4(start + width)}

		matches := ""
		if i > 0 {
			matches = "y"
		}
		fig.Layout.XAxes = append(fig.Layout.XAxes, xAxis(domain, axisName("y", i), agg.categories))
		fig.Layout.YAxes = append(fig.Layout.YAxes, yAxis(axisName("x", i), matches, i == 0))

		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			Text:    fmt.Sprintf("<b>%s</b>", year),
			X:       round4(start + width/2),
			Y:       1.0,
			XRef:    "paper",
			YRef:    "paper",
			XAnchor: "center",
			YAnchor: "bottom",
			Font:    Font{Size: 18, Color: opts.AccentColor},
		})

		for si, series := range agg.series {
			cats := agg.present(year, series)
			if len(cats) == 0 {
				continue
			}
			trace := BarTrace{
				Type:             "bar",
				Name:             series,
				LegendGroup:      series,
				ShowLegend:       !agg.seenInEarlierFacet(series, i),
				TextPosition:     "inside",
				InsideTextAnchor: "middle",
				HoverTemplate:    hoverTemplate,
				Marker:           Marker{Color: opts.color(si)},
				XAxis:            axisName("x", i),
				YAxis:            axisName("y", i),
			}
			for _, c := range cats {
				v := agg.sum(year, c, series)
				trace.X = append(trace.X, c)
				trace.Y = append(trace.Y, v)
				trace.Text = append(trace.Text, FormatCount(v))
				trace.CustomData = append(trace.CustomData, []string{series, year, c})
			}
			fig.Data = append(fig.Data, trace)
		}
	}

	return fig
}

func xAxis(domain []float64, anchor string, categories []string) Axis {
	angle := 0
	return Axis{
		Domain:        domain,
		Anchor:        anchor,
		Title:         Title{Text: ""},
		TickAngle:     &angle,
		CategoryOrder: "array",
		CategoryArray: categories,
	}
}

func yAxis(anchor, matches string, showTicks bool) Axis {
	return Axis{
		Anchor:         anchor,
		Matches:        matches,
		Title:          Title{Text: ""},
		TickFormat:     ",",
		ShowTickLabels: &showTicks,
	}
}

func round4(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 4, 64), 64)
	return v
}

// aggregation is a long table summed by (Year, Category, Series).
type aggregation struct {
	years      []string // sorted as strings
	categories []string // order of first appearance
	series     []string // order of first appearance
	sums       map[aggKey]float64
}

type aggKey struct {
	year, category, series string
}

func aggregate(long LongTable) aggregation {
	agg := aggregation{sums: make(map[aggKey]float64)}
	seenYear := make(map[string]bool)
	seenCat := make(map[string]bool)
	seenSeries := make(map[string]bool)

	for _, r := range long {
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			agg.years = append(agg.years, r.Year)
		}
		if !seenCat[r.Category] {
			seenCat[r.Category] = true
			agg.categories = append(agg.categories, r.Category)
		}
		if !seenSeries[r.Series] {
			seenSeries[r.Series] = true
			agg.series = append(agg.series, r.Series)
		}
		agg.sums[aggKey{r.Year, r.Category, r.Series}] += r.Value
	}

	sort.Strings(agg.years)
	return agg
}

// present returns the categories, in display order, that have at least one
// row for the given year and series.
func (a aggregation) present(year, series string) []string {
	var out []string
	for _, c := range a.categories {
		if _, ok := a.sums[aggKey{year, c, series}]; ok {
			out = append(out, c)
		}
	}
	return out
}

// yearCategories returns the categories with any row in a year.
func (a aggregation) yearCategories(year string) []string {
	var out []string
	for _, c := range a.categories {
		for _, s := range a.series {
			if _, ok := a.sums[aggKey{year, c, s}]; ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (a aggregation) sum(year, category, series string) float64 {
	return a.sums[aggKey{year, category, series}]
}

// seenInEarlierFacet reports whether a series already has a trace in a
// facet before index i, so its legend entry is shown once.
func (a aggregation) seenInEarlierFacet(series string, i int) bool {
	for _, year := range a.years[:i] {
		if len(a.present(year, series)) > 0 {
			return true
		}
	}
	return false
}
