package core

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleLong() LongTable {
	return LongTable{
		{Year: "2023", Category: "North", Series: "with", Value: 11},
		{Year: "2022", Category: "North", Series: "with", Value: 10},
		{Year: "2022", Category: "South", Series: "with", Value: 1500},
		{Year: "2023", Category: "North", Series: "without", Value: 4},
		{Year: "2022", Category: "North", Series: "without", Value: 5},
		{Year: "2022", Category: "South", Series: "without", Value: 2},
		{Year: "2022", Category: "South", Series: "without", Value: 1000},
	}
}

func TestBuildChart_Facets(t *testing.T) {
	fig := BuildChart(sampleLong(), "Title", DefaultChartOptions())

	if got := len(fig.Layout.XAxes); got != 2 {
		t.Fatalf("len(XAxes) = %d, want 2", got)
	}

	var headers []string
	for _, a := range fig.Layout.Annotations {
		headers = append(headers, a.Text)
		if a.Font.Size != 18 || a.Font.Color != "#0071BC" {
			t.Errorf("annotation font = %+v, want 18pt accent", a.Font)
		}
	}
	if want := []string{"<b>2022</b>", "<b>2023</b>"}; !reflect.DeepEqual(headers, want) {
		t.Errorf("facet headers = %v, want %v", headers, want)
	}

	first, second := fig.Layout.XAxes[0].Domain, fig.Layout.XAxes[1].Domain
	if !(first[0] == 0 && first[1] < second[0] && second[1] == 1) {
		t.Errorf("domains = %v, %v, want left to right", first, second)
	}
}

func TestBuildChart_Traces(t *testing.T) {
	fig := BuildChart(sampleLong(), "Title", DefaultChartOptions())

	// 2022: with, without; 2023: with, without
	if len(fig.Data) != 4 {
		t.Fatalf("len(Data) = %d, want 4", len(fig.Data))
	}

	tests := []struct {
		idx        int
		name       string
		xaxis      string
		showLegend bool
		x          []string
		y          []float64
		text       []string
	}{
		{0, "with", "x", true, []string{"North", "South"}, []float64{10, 1500}, []string{"10", "1,500"}},
		{1, "without", "x", true, []string{"North", "South"}, []float64{5, 1002}, []string{"5", "1,002"}},
		{2, "with", "x2", false, []string{"North"}, []float64{11}, []string{"11"}},
		{3, "without", "x2", false, []string{"North"}, []float64{4}, []string{"4"}},
	}

	for _, tt := range tests {
		tr := fig.Data[tt.idx]
		if tr.Name != tt.name || tr.XAxis != tt.xaxis || tr.ShowLegend != tt.showLegend {
			t.Errorf("trace %d = {%s %s %v}, want {%s %s %v}", tt.idx, tr.Name, tr.XAxis, tr.ShowLegend, tt.name, tt.xaxis, tt.showLegend)
		}
		if !reflect.DeepEqual(tr.X, tt.x) || !reflect.DeepEqual(tr.Y, tt.y) || !reflect.DeepEqual(tr.Text, tt.text) {
			t.Errorf("trace %d x=%v y=%v text=%v, want x=%v y=%v text=%v", tt.idx, tr.X, tr.Y, tr.Text, tt.x, tt.y, tt.text)
		}
		if tr.TextPosition != "inside" || tr.InsideTextAnchor != "middle" {
			t.Errorf("trace %d text position = %q/%q", tt.idx, tr.TextPosition, tr.InsideTextAnchor)
		}
		if tr.Marker.Color != fig.Data[tt.idx%2].Marker.Color {
			t.Errorf("trace %d color differs from the same series in the first facet", tt.idx)
		}
	}
}

func TestBuildChart_Hover(t *testing.T) {
	fig := BuildChart(sampleLong(), "Title", DefaultChartOptions())
	tr := fig.Data[0]

	for _, part := range []string{"customdata[0]", "Year:", "Category:", "%{y:,.0f}"} {
		if !strings.Contains(tr.HoverTemplate, part) {
			t.Errorf("hover template %q missing %q", tr.HoverTemplate, part)
		}
	}
	if want := []string{"with", "2022", "South"}; !reflect.DeepEqual(tr.CustomData[1], want) {
		t.Errorf("customdata[1] = %v, want %v", tr.CustomData[1], want)
	}
}

func TestBuildChart_Axes(t *testing.T) {
	fig := BuildChart(sampleLong(), "Title", DefaultChartOptions())

	for i, ax := range fig.Layout.XAxes {
		if ax.TickAngle == nil || *ax.TickAngle != 0 {
			t.Errorf("xaxis %d tick angle = %v, want 0", i, ax.TickAngle)
		}
		if ax.Title.Text != "" {
			t.Errorf("xaxis %d title = %q, want empty", i, ax.Title.Text)
		}
	}
	for i, ax := range fig.Layout.YAxes {
		if ax.TickFormat != "," {
			t.Errorf("yaxis %d tickformat = %q, want \",\"", i, ax.TickFormat)
		}
		if want := i == 0; *ax.ShowTickLabels != want {
			t.Errorf("yaxis %d showticklabels = %v, want %v", i, *ax.ShowTickLabels, want)
		}
	}
	if fig.Layout.YAxes[1].Matches != "y" {
		t.Errorf("yaxis2 matches = %q, want y", fig.Layout.YAxes[1].Matches)
	}
	if fig.Layout.Height != 500 || fig.Layout.BarMode != "stack" || fig.Layout.Legend.Title.Text != "" {
		t.Errorf("layout = %+v", fig.Layout)
	}
}

func TestBuildChart_JSON(t *testing.T) {
	fig := BuildChart(sampleLong(), "Title", DefaultChartOptions())

	data, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"xaxis", "xaxis2", "yaxis", "yaxis2", "annotations", "barmode", "height", "title", "legend"} {
		if _, ok := decoded.Layout[key]; !ok {
			t.Errorf("layout missing key %q", key)
		}
	}
	if _, ok := decoded.Layout["XAxes"]; ok {
		t.Error("layout leaked Go field name XAxes")
	}
	if decoded.Data[0]["type"] != "bar" {
		t.Errorf("trace type = %v, want bar", decoded.Data[0]["type"])
	}
}

func TestBuildChart_Empty(t *testing.T) {
	fig := BuildChart(nil, "Nothing", DefaultChartOptions())

	if len(fig.Data) != 0 {
		t.Errorf("len(Data) = %d, want 0", len(fig.Data))
	}
	if len(fig.Layout.XAxes) != 1 || len(fig.Layout.YAxes) != 1 {
		t.Errorf("axes = %d/%d, want 1/1", len(fig.Layout.XAxes), len(fig.Layout.YAxes))
	}

	data, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"data":[]`) || !strings.Contains(string(data), `"annotations":[]`) {
		t.Errorf("JSON = %s, want empty data and annotations arrays", data)
	}
}

func TestAxisName(t *testing.T) {
	tests := []struct {
		prefix string
		i      int
		want   string
	}{
		{"xaxis", 0, "xaxis"},
		{"xaxis", 1, "xaxis2"},
		{"y", 0, "y"},
		{"y", 9, "y10"},
	}
	for _, tt := range tests {
		if got := axisName(tt.prefix, tt.i); got != tt.want {
			t.Errorf("axisName(%q, %d) = %q, want %q", tt.prefix, tt.i, got, tt.want)
		}
	}
}
