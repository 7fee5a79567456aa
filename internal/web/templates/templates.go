// Package templates renders the dashboard pages as templ components.
//
// The *_templ.go files are generated from the .templ sources:
//
//	templ generate ./internal/web/templates
package templates

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/JonMunkholm/painel/internal/core"
)

// PlotlyURL is the script the dashboard loads to draw interactive charts.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Title   string
	Options core.Options
	View    *core.View

	// Years and Categories are the selected values as the controls show
	// them; Categories may hold core.AllCategories.
	Years      []string
	Categories []string

	// RawQuery is the current selection encoded for the export and image
	// links.
	RawQuery string
}

func contains(list []string, v string) bool {
	return lo.Contains(list, v)
}

func figureJSON(fig *core.Figure) (string, error) {
	b, err := json.Marshal(fig)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// exportHref links the xlsx download of a selection.
func exportHref(rawQuery string) string {
	u := url.URL{Path: "/export", RawQuery: rawQuery}
	return u.String()
}

// chartSrc links the static rendering of chart i (0-based) for a selection.
func chartSrc(rawQuery string, i int) string {
	u := url.URL{Path: "/chart/" + strconv.Itoa(i+1) + ".png", RawQuery: rawQuery}
	return u.String()
}
