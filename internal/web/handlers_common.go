package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/JonMunkholm/painel/internal/core"
)

// Query parameters of the dashboard, the export and the API.
const (
	paramBlock     = "block"
	paramYear      = "year"
	paramCategory  = "category"
	paramMode      = "mode"
	paramSubmitted = "submitted"
)

// parseQuery reads a selection from URL query parameters. Years and
// categories may repeat; blank values are dropped.
func parseQuery(r *http.Request) core.Query {
	q := r.URL.Query()
	return core.Query{
		Block:      strings.TrimSpace(q.Get(paramBlock)),
		Years:      cleanValues(q[paramYear]),
		Categories: cleanValues(q[paramCategory]),
		Mode:       strings.TrimSpace(q.Get(paramMode)),
		Explicit:   q.Get(paramSubmitted) == "1",
	}
}

func cleanValues(values []string) []string {
	return lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
}

// encodeQuery is the inverse of parseQuery for a resolved view, so links
// built from it reproduce the same selection.
func encodeQuery(v *core.View) string {
	q := url.Values{}
	q.Set(paramSubmitted, "1")
	q.Set(paramBlock, v.Selection.Block)
	q.Set(paramMode, v.Mode.Key)
	for _, y := range v.Selection.Years {
		q.Add(paramYear, y)
	}
	for _, c := range v.Selection.Categories {
		q.Add(paramCategory, c)
	}
	return q.Encode()
}

// selectedCategories is what the category control shows: AllCategories
// when the whole block is selected, the explicit list otherwise.
func selectedCategories(available []string, sel core.Selection) []string {
	cats := lo.Without(available, core.AllCategories)
	if len(cats) > 0 && len(sel.Categories) == len(cats) &&
		len(lo.Intersect(cats, sel.Categories)) == len(cats) {
		return []string{core.AllCategories}
	}
	return sel.Categories
}

// DataResponse is the filtered wide table as served by /api/data.
type DataResponse struct {
	Selection core.Selection `json:"selection"`
	Mode      string         `json:"mode"`
	Warnings  []core.Warning `json:"warnings"`
	Columns   []string       `json:"columns"`
	Rows      [][]any        `json:"rows"`
}
