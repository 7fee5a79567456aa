// Package application wires the configuration into the dashboard service.
// The HTTP server and the CLI both start from here.
package application

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"gonum.org/v1/plot/vg"

	"github.com/JonMunkholm/painel/internal/config"
	"github.com/JonMunkholm/painel/internal/core"
	_ "github.com/JonMunkholm/painel/internal/core/reports" // Register report modes
)

// ServiceOptions maps the configuration onto core.ServiceOptions.
func ServiceOptions(cfg *config.Config) core.ServiceOptions {
	chart := core.DefaultChartOptions()
	chart.Height = cfg.Chart.Height
	chart.AccentColor = cfg.Chart.AccentColor

	return core.ServiceOptions{
		Blocks: cfg.Dataset.Blocks,
		Chart:  chart,
		Render: core.RenderOptions{
			Chart:  chart,
			Width:  vg.Length(cfg.Chart.PNGWidth),
			Height: vg.Length(cfg.Chart.PNGHeight),
		},
		RenderTTL:            cfg.Cache.RenderTTL,
		MaxConcurrentRenders: cfg.Chart.MaxConcurrentRenders,
		RenderWait:           cfg.Chart.RenderWait,
	}
}

// Open loads the configured dataset and returns a service over it.
// The dataset is read eagerly so a missing or corrupt file fails here
// rather than on the first request.
func Open(ctx context.Context, cfg *config.Config) (*core.Service, error) {
	data := core.NewDataset(cfg.Dataset.Path, cfg.Dataset.Sheet)
	t, err := data.Load(ctx)
	if err != nil {
		return nil, err
	}

	opts := ServiceOptions(cfg)
	available := t.Blocks()
	opts.Blocks = core.ReconcileBlocks(opts.Blocks, available)
	if len(cfg.Dataset.Blocks) > 0 && len(lo.Intersect(cfg.Dataset.Blocks, available)) == 0 {
		slog.Warn("no configured block found in dataset, using dataset blocks",
			"configured", cfg.Dataset.Blocks,
			"dataset", available,
		)
	}

	slog.Debug("report modes registered", "count", core.ModeCount())
	return core.NewService(data, opts), nil
}
