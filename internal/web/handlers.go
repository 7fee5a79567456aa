package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/painel/internal/core"
	"github.com/JonMunkholm/painel/internal/logging"
	"github.com/JonMunkholm/painel/internal/web/templates"
)

// handleDashboard renders the main dashboard page for the selection in the
// query string.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := parseQuery(r)

	view, err := s.service.View(ctx, q)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	opts, err := s.service.Options(ctx, view.Selection.Block)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	page := templates.Dashboard(templates.DashboardData{
		Title:      s.cfg.Server.Title,
		Options:    opts,
		View:       view,
		Years:      view.Selection.Years,
		Categories: selectedCategories(opts.Categories, view.Selection),
		RawQuery:   encodeQuery(view),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleExport streams the filtered table as an xlsx download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Export(r.Context(), parseQuery(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", core.ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+core.ExportFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Warn("write export", "error", err)
	}
}

// handleChartPNG serves the static rendering of one chart.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		index = 0 // rejected by the service as an unknown chart
	}

	img, err := s.service.ChartPNG(r.Context(), parseQuery(r), index)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := w.Write(img); err != nil {
		logging.FromContext(r.Context()).Warn("write chart", "error", err)
	}
}

// handleHealth reports whether the dataset is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h, err := s.service.Health(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, r, map[string]any{
			"status":  "unavailable",
			"dataset": h.Dataset,
			"error":   core.MapError(err).Message,
		})
		return
	}

	writeJSON(w, r, map[string]any{
		"status": "ok",
		"health": h,
	})
}

// handleOptions returns the sidebar choices for a block.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.Options(r.Context(), r.URL.Query().Get(paramBlock))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, opts)
}

// handleView returns the resolved selection and both chart figures.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.View(r.Context(), parseQuery(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, view)
}

// handleData returns the filtered wide table.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Resolve(r.Context(), parseQuery(r))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	rows := make([][]any, 0, res.Table.Len())
	for _, rec := range res.Table.Records {
		rows = append(rows, rec.Cells)
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []core.Warning{}
	}

	writeJSON(w, r, DataResponse{
		Selection: res.Selection,
		Mode:      res.Mode.Key,
		Warnings:  warnings,
		Columns:   res.Table.Columns,
		Rows:      rows,
	})
}
