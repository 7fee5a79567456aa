package core

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// RenderOptions sizes the static chart rendering.
type RenderOptions struct {
	Chart  ChartOptions
	Width  vg.Length
	Height vg.Length
}

// DefaultRenderOptions returns a 1200x500pt rendering with the standard
// chart presentation.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Chart: DefaultChartOptions(), Width: 1200, Height: 500}
}

const (
	barWidth  = 28 // points
	titleBand = 28 // points reserved above the facet panels
)

// RenderPNG draws the same faceted stacked bar chart as BuildChart as a PNG
// image: one panel per Year, stacked series per Category, values centered
// in each segment and y ticks with thousands separators.
func RenderPNG(w io.Writer, long LongTable, title string, opts RenderOptions) error {
	agg := aggregate(long)

	img := vgimg.New(opts.Width, opts.Height)
	dc := draw.New(img)

	if len(agg.years) == 0 {
		p := plot.New()
		p.Title.Text = title
		p.Y.Min, p.Y.Max = 0, 1
		p.Draw(dc)
	} else {
		accent := parseHexColor(opts.Chart.AccentColor)
		plots := make([]*plot.Plot, len(agg.years))
		for i, year := range agg.years {
			p, err := facetPlot(agg, year, accent, opts.Chart, i == len(agg.years)-1)
			if err != nil {
				return fmt.Errorf("render chart: facet %s: %w", year, err)
			}
			plots[i] = p
		}

		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(plots),
			PadX:      4 * vg.Millimeter,
			PadTop:    titleBand,
			PadBottom: 2 * vg.Millimeter,
			PadLeft:   2 * vg.Millimeter,
			PadRight:  2 * vg.Millimeter,
		}
		canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
		for j, p := range plots {
			p.Draw(canvases[0][j])
		}

		sty := plot.New().Title.TextStyle
		sty.Font.Size = vg.Points(14)
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - 4}, title)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("render chart: encode png: %w", err)
	}
	return nil
}

// facetPlot builds the panel of one year. Only the last panel carries the
// legend.
func facetPlot(agg aggregation, year string, accent color.Color, opts ChartOptions, legend bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = year
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Title.TextStyle.Color = accent
	p.X.Label.Text = ""
	p.Y.Label.Text = ""
	p.Y.Min = 0
	p.Y.Tick.Marker = thousandsTicks{}
	p.Legend.Top = true

	cats := agg.yearCategories(year)
	p.NominalX(cats...)

	tops := make([]float64, len(cats))
	var below *plotter.BarChart
	for si, series := range agg.series {
		values := make(plotter.Values, len(cats))
		for ci, c := range cats {
			values[ci] = agg.sum(year, c, series)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, err
		}
		bars.Color = parseHexColor(opts.color(si))
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		if legend {
			p.Legend.Add(series, bars)
		}

		var xys []plotter.XY
		var labels []string
		for ci, v := range values {
			if v > 0 {
				xys = append(xys, plotter.XY{X: float64(ci), Y: tops[ci] + v/2})
				labels = append(labels, FormatCount(v))
			}
			tops[ci] += v
		}
		if len(xys) > 0 {
			lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
			if err != nil {
				return nil, err
			}
			for i := range lbl.TextStyle {
				lbl.TextStyle[i].XAlign = draw.XCenter
				lbl.TextStyle[i].YAlign = draw.YCenter
				lbl.TextStyle[i].Color = color.White
			}
			p.Add(lbl)
		}
		below = bars
	}

	return p, nil
}

// thousandsTicks labels the default y ticks with thousands separators.
type thousandsTicks struct{}

func (thousandsTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = FormatCount(ticks[i].Value)
		}
	}
	return ticks
}

// parseHexColor parses "#RRGGBB", falling back to black.
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
