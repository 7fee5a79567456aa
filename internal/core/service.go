package core

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/JonMunkholm/painel/internal/logging"
)

// ChartCount is the number of charts per report mode: schools, enrollment.
const ChartCount = 2

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// Blocks is the block selector order. Empty means the blocks found in
	// the dataset, in order of first appearance.
	Blocks []string

	Chart  ChartOptions
	Render RenderOptions

	// RenderTTL is how long a rendered PNG is reused. Zero disables the cache.
	RenderTTL time.Duration

	// MaxConcurrentRenders and RenderWait configure the render limiter.
	MaxConcurrentRenders int
	RenderWait           time.Duration
}

// Service runs the dashboard pipeline for web handlers and the CLI.
// It holds no per-request state; every call recomputes from the cached
// base table.
type Service struct {
	data    *Dataset
	blocks  []string
	chart   ChartOptions
	render  RenderOptions
	renders *cache.Cache
	limiter *RenderLimiter
}

// NewService creates a new Service over a dataset.
func NewService(data *Dataset, opts ServiceOptions) *Service {
	s := &Service{
		data:    data,
		blocks:  opts.Blocks,
		chart:   opts.Chart,
		render:  opts.Render,
		limiter: NewRenderLimiter(opts.MaxConcurrentRenders, opts.RenderWait),
	}
	if opts.RenderTTL > 0 {
		s.renders = cache.New(opts.RenderTTL, 2*opts.RenderTTL)
	}
	return s
}

// Query is a raw selection as submitted by a client.
type Query struct {
	Block      string
	Years      []string
	Categories []string
	Mode       string

	// Explicit marks a submitted form. Without it, missing years mean every
	// year and missing categories mean AllCategories; with it, an empty
	// list is taken literally.
	Explicit bool
}

// ModeOption is one entry of the report mode selector.
type ModeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Options lists the choices offered by the sidebar for a block.
type Options struct {
	Block      string       `json:"block"`
	Blocks     []string     `json:"blocks"`
	Years      []string     `json:"years"`
	Categories []string     `json:"categories"`
	Modes      []ModeOption `json:"modes"`
}

// ChartView is one rendered chart of a view.
type ChartView struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Figure *Figure `json:"figure"`
}

// View is the full dashboard state for one selection.
type View struct {
	Selection Selection             `json:"selection"`
	Mode      ModeOption            `json:"mode"`
	Warnings  []Warning             `json:"warnings"`
	Rows      int                   `json:"rows"`
	Charts    [ChartCount]ChartView `json:"charts"`
}

// Result is the filtered table of a selection together with how the
// selection was resolved.
type Result struct {
	Selection Selection
	Mode      ReportMode
	Warnings  []Warning
	Table     *Table
}

// Blocks returns the block selector order: the configured blocks followed
// by any other block found in the dataset. When no configured block occurs
// in the dataset, the dataset's own blocks are used.
func (s *Service) Blocks(ctx context.Context) ([]string, error) {
	t, err := s.data.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ReconcileBlocks(s.blocks, t.Blocks()), nil
}

// ReconcileBlocks merges the configured block order with the blocks present
// in a dataset. A configured block without rows is kept so the selector stays
// fixed; a dataset block missing from the configuration is appended.
func ReconcileBlocks(configured, available []string) []string {
	configured = lo.Uniq(lo.Compact(configured))
	if len(lo.Intersect(configured, available)) == 0 {
		return available
	}
	extra, _ := lo.Difference(available, configured)
	return append(configured, extra...)
}

// Options returns the sidebar choices for a block. An empty block selects
// the first one.
func (s *Service) Options(ctx context.Context, block string) (Options, error) {
	t, err := s.data.Load(ctx)
	if err != nil {
		return Options{}, err
	}
	blocks, err := s.Blocks(ctx)
	if err != nil {
		return Options{}, err
	}
	block, err = pickBlock(blocks, block)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Block:      block,
		Blocks:     blocks,
		Years:      t.Years(),
		Categories: append([]string{AllCategories}, AvailableCategories(t, block)...),
		Modes: lo.Map(Modes(), func(m ReportMode, _ int) ModeOption {
			return ModeOption{Key: m.Key, Label: m.Label}
		}),
	}, nil
}

// Resolve applies the defaults to a query, filters the base table and
// returns the result. Unknown blocks and modes fail with ErrUnknownBlock
// and ErrUnknownMode.
func (s *Service) Resolve(ctx context.Context, q Query) (*Result, error) {
	t, err := s.data.Load(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := s.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	block, err := pickBlock(blocks, q.Block)
	if err != nil {
		return nil, err
	}
	mode, err := pickMode(q.Mode)
	if err != nil {
		return nil, err
	}

	years := lo.Uniq(q.Years)
	if len(years) == 0 && !q.Explicit {
		years = t.Years()
	}

	selected := q.Categories
	if len(selected) == 0 && !q.Explicit {
		selected = []string{AllCategories}
	}
	categories, warnings := ResolveCategories(t, block, selected)

	sel := Selection{Block: block, Years: years, Categories: categories}
	return &Result{
		Selection: sel,
		Mode:      mode,
		Warnings:  warnings,
		Table:     Filter(t, sel),
	}, nil
}

// View runs the whole pipeline and builds both interactive charts.
func (s *Service) View(ctx context.Context, q Query) (*View, error) {
	res, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	schools, schoolsTitle, enrollment, enrollmentTitle := Reshape(res.Table, res.Mode)

	v := &View{
		Selection: res.Selection,
		Mode:      ModeOption{Key: res.Mode.Key, Label: res.Mode.Label},
		Warnings:  res.Warnings,
		Rows:      res.Table.Len(),
		Charts: [ChartCount]ChartView{
			{ID: chartID(), Title: schoolsTitle, Figure: BuildChart(schools, schoolsTitle, s.chart)},
			{ID: chartID(), Title: enrollmentTitle, Figure: BuildChart(enrollment, enrollmentTitle, s.chart)},
		},
	}
	if v.Warnings == nil {
		v.Warnings = []Warning{}
	}
	return v, nil
}

// Export runs the pipeline and serializes the filtered table to xlsx.
func (s *Service) Export(ctx context.Context, q Query) ([]byte, error) {
	res, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := ExportXLSX(res.Table)
	if err != nil {
		return nil, err
	}

	logging.WithFields(ctx, "export_id", uuid.New().String(), "block", res.Selection.Block).Info("export generated",
		"rows", res.Table.Len(),
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

// ChartPNG renders chart index (1 or 2) of a selection as a PNG image.
// Renders are memoized per resolved selection when a TTL is configured.
func (s *Service) ChartPNG(ctx context.Context, q Query, index int) ([]byte, error) {
	if index < 1 || index > ChartCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChart, index)
	}

	res, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	key := renderKey(res, index)
	if s.renders != nil {
		if cached, ok := s.renders.Get(key); ok {
			return cached.([]byte), nil
		}
	}

	logger := logging.WithFields(ctx, "block", res.Selection.Block, "mode", res.Mode.Key, "chart", index)
	if !s.limiter.TryAcquire() {
		logger.Debug("waiting for render slot", "active", s.limiter.ActiveCount())
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
	}
	defer s.limiter.Release()
	start := time.Now()

	schools, schoolsTitle, enrollment, enrollmentTitle := Reshape(res.Table, res.Mode)
	long, title := schools, schoolsTitle
	if index == 2 {
		long, title = enrollment, enrollmentTitle
	}

	var buf bytes.Buffer
	if err := RenderPNG(&buf, long, title, s.render); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	logger.Debug("chart rendered", "bytes", len(out), "duration_ms", time.Since(start).Milliseconds())
	if s.renders != nil {
		s.renders.SetDefault(key, out)
	}
	return out, nil
}

// Health describes the loaded dataset and the renderer.
type Health struct {
	Dataset string              `json:"dataset"`
	Rows    int                 `json:"rows"`
	Years   []string            `json:"years"`
	Renders RenderLimiterStatus `json:"renders"`
}

// Health reports whether the dataset is loaded. It returns the load error
// when it is not.
func (s *Service) Health(ctx context.Context) (Health, error) {
	t, err := s.data.Load(ctx)
	if err != nil {
		return Health{Dataset: s.data.Path()}, err
	}
	return Health{
		Dataset: s.data.Path(),
		Rows:    t.Len(),
		Years:   t.Years(),
		Renders: s.limiter.Status(),
	}, nil
}

// Drain waits for in-flight chart renders to finish.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func pickBlock(blocks []string, block string) (string, error) {
	if block == "" {
		if len(blocks) == 0 {
			return "", fmt.Errorf("%w: no blocks available", ErrUnknownBlock)
		}
		return blocks[0], nil
	}
	if !lo.Contains(blocks, block) {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlock, block)
	}
	return block, nil
}

func pickMode(key string) (ReportMode, error) {
	if key == "" {
		m, ok := DefaultMode()
		if !ok {
			return ReportMode{}, fmt.Errorf("%w: no modes registered", ErrUnknownMode)
		}
		return m, nil
	}
	m, ok := GetMode(key)
	if !ok {
		return ReportMode{}, fmt.Errorf("%w: %q", ErrUnknownMode, key)
	}
	return m, nil
}

func chartID() string {
	return "chart-" + uuid.New().String()
}

// renderKey identifies a render by its resolved selection, mode and index.
// Years and categories are sets, so their order does not change the key.
func renderKey(res *Result, index int) string {
	sep := "\x1f"
	years := slices.Clone(res.Selection.Years)
	slices.Sort(years)
	categories := slices.Clone(res.Selection.Categories)
	slices.Sort(categories)
	return strings.Join([]string{
		res.Selection.Block,
		strings.Join(years, sep),
		strings.Join(categories, sep),
		res.Mode.Key,
		fmt.Sprint(index),
	}, "\x1e")
}

// RenderStatus returns the current state of the render limiter.
func (s *Service) RenderStatus() RenderLimiterStatus {
	return s.limiter.Status()
}
