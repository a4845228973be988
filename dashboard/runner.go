// Package dashboard runs the fetch, shape and render pipeline of each dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"edaboard/api/config"
	"edaboard/api/models"
	"edaboard/api/render"
	"edaboard/api/shaper"
	"edaboard/api/store"
)

var ErrUnknownDashboard = errors.New("unknown dashboard")

// Result is what one dashboard run produced. Failures maps a region to the
// reason it was not drawn.
type Result struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	Summary  []string          `json:"summary,omitempty"`
	Surface  *render.Surface   `json:"-"`
	Failures map[string]string `json:"failures,omitempty"`

	mu sync.Mutex
}

func (r *Result) fail(region string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Failures == nil {
		r.Failures = make(map[string]string)
	}
	r.Failures[region] = err.Error()
}

type Options struct {
	Paths        Paths
	FetchTimeout time.Duration
	Concurrency  int
	Extras       bool
}

type Runner struct {
	store *store.ArtifactStore
	log   *zap.Logger
	opts  Options
}

func NewRunner(s *store.ArtifactStore, log *zap.Logger, opts Options) *Runner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Runner{store: s, log: log, opts: opts}
}

func NewRunnerFromConfig(s *store.ArtifactStore, log *zap.Logger, cfg *config.Config) *Runner {
	return NewRunner(s, log, Options{
		Paths:        DefaultPaths(cfg.PopulationOutputDir),
		FetchTimeout: cfg.FetchTimeout,
		Concurrency:  cfg.RenderConcurrency,
		Extras:       cfg.ExtraVisualizations,
	})
}

// Dashboards lists the available dashboards for the index page.
func (r *Runner) Dashboards() []render.IndexEntry {
	return []render.IndexEntry{
		{Name: Retail, Title: titles[Retail]},
		{Name: Population, Title: titles[Population]},
	}
}

// Run executes one dashboard. Only an unknown name is an error; failures of
// individual visualizations are logged and recorded in the result.
func (r *Runner) Run(ctx context.Context, name string, renderer render.Renderer) (*Result, error) {
	return r.run(ctx, name, "", renderer)
}

// RunRegion executes only the visualization that feeds region. The retail
// summary still comes from its shared fetch.
func (r *Runner) RunRegion(ctx context.Context, name, region string, renderer render.Renderer) (*Result, error) {
	if region == "" {
		return nil, fmt.Errorf("%w: empty name", render.ErrUnknownRegion)
	}
	return r.run(ctx, name, region, renderer)
}

func (r *Runner) run(ctx context.Context, name, only string, renderer render.Renderer) (*Result, error) {
	switch name {
	case Retail:
		return r.runRetail(ctx, renderer, only)
	case Population:
		return r.runPopulation(ctx, renderer, only)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDashboard, name)
	}
}

// selectRegions narrows all to only, when set.
func selectRegions(all []string, only string) ([]string, error) {
	if only == "" {
		return all, nil
	}
	if !slices.Contains(all, only) {
		return nil, fmt.Errorf("%w: %q", render.ErrUnknownRegion, only)
	}
	return []string{only}, nil
}

func (r *Runner) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.FetchTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.FetchTimeout)
	}
	return context.WithCancel(ctx)
}

// runRetail makes a single fetch; the charts render only after it succeeds.
func (r *Runner) runRetail(ctx context.Context, renderer render.Renderer, only string) (*Result, error) {
	regions, err := selectRegions([]string{RegionSalesByCountry, RegionTopProducts}, only)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Name:    Retail,
		Title:   titles[Retail],
		Surface: render.NewSurface(regions...),
	}

	fctx, cancel := r.fetchContext(ctx)
	results, err := r.store.GetEDAResults(fctx, r.opts.Paths.EDAResults)
	cancel()
	if err != nil {
		r.log.Error("Error fetching EDA results",
			zap.String("dashboard", Retail),
			zap.String("path", r.opts.Paths.EDAResults),
			zap.Error(err))
		for _, region := range res.Surface.Regions() {
			res.fail(region, err)
		}
		return res, nil
	}

	res.Summary = render.SummaryLines(shaper.SummaryFrom(results))

	charts := []models.Chart{
		salesByCountryChart(shaper.ObjectToSeries(results.SalesByCountry)),
		topProductsChart(shaper.ObjectToSeries(results.TopProducts)),
	}
	for _, c := range charts {
		if !slices.Contains(regions, c.Region) {
			continue
		}
		if err := draw(renderer, res.Surface, c); err != nil {
			r.log.Error("Error rendering chart",
				zap.String("dashboard", Retail),
				zap.String("region", c.Region),
				zap.Error(err))
			res.fail(c.Region, err)
		}
	}
	return res, nil
}

// visualization is one independent fetch-and-shape step feeding one region.
type visualization struct {
	region string
	path   string
	load   func(ctx context.Context) (models.Chart, error)
}

func (r *Runner) populationVisualizations() []visualization {
	p := r.opts.Paths
	vis := []visualization{
		{region: RegionPopulous, path: p.TopPopulous, load: func(ctx context.Context) (models.Chart, error) {
			return r.recordsChart(ctx, p.TopPopulous, fieldPopulation, populousChart)
		}},
		{region: RegionTrend, path: p.PopulationTrend, load: func(ctx context.Context) (models.Chart, error) {
			return r.mappingChart(ctx, p.PopulationTrend, trendChart)
		}},
		{region: RegionContinent, path: p.PopulationByContinent, load: func(ctx context.Context) (models.Chart, error) {
			return r.mappingChart(ctx, p.PopulationByContinent, continentChart)
		}},
		{region: RegionScatter, path: p.WorldPopulation, load: func(ctx context.Context) (models.Chart, error) {
			text, err := r.store.GetText(ctx, p.WorldPopulation)
			if err != nil {
				return models.Chart{}, err
			}
			return scatterChart(shaper.TextToPoints(text, shaper.WorldPopulationColumns)), nil
		}},
	}
	if r.opts.Extras {
		vis = append(vis,
			visualization{region: RegionHighestGrowth, path: p.HighestGrowth, load: func(ctx context.Context) (models.Chart, error) {
				return r.recordsChart(ctx, p.HighestGrowth, fieldGrowthRate, highestGrowthChart)
			}},
			visualization{region: RegionLargestArea, path: p.LargestArea, load: func(ctx context.Context) (models.Chart, error) {
				return r.recordsChart(ctx, p.LargestArea, fieldArea, largestAreaChart)
			}},
		)
	}
	return vis
}

func (r *Runner) recordsChart(ctx context.Context, path, valueField string, build func(models.Series) models.Chart) (models.Chart, error) {
	records, err := r.store.GetRecords(ctx, path)
	if err != nil {
		return models.Chart{}, err
	}
	series, err := shaper.ArrayToSeries(records, fieldCountry, valueField)
	if err != nil {
		return models.Chart{}, fmt.Errorf("%w: %s: %v", store.ErrInvalidArtifact, path, err)
	}
	return build(series), nil
}

func (r *Runner) mappingChart(ctx context.Context, path string, build func(models.Series) models.Chart) (models.Chart, error) {
	mapping, err := r.store.GetCategoryMapping(ctx, path)
	if err != nil {
		return models.Chart{}, err
	}
	return build(shaper.ObjectToSeries(mapping)), nil
}

// runPopulation runs every visualization concurrently. Each one handles its
// own failure, so the group never sees an error and one failure never
// cancels the others.
func (r *Runner) runPopulation(ctx context.Context, renderer render.Renderer, only string) (*Result, error) {
	vis := r.populationVisualizations()
	regions := make([]string, len(vis))
	for i, v := range vis {
		regions[i] = v.region
	}
	regions, err := selectRegions(regions, only)
	if err != nil {
		return nil, err
	}
	vis = slices.DeleteFunc(vis, func(v visualization) bool {
		return !slices.Contains(regions, v.region)
	})
	res := &Result{
		Name:    Population,
		Title:   titles[Population],
		Surface: render.NewSurface(regions...),
	}

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for _, v := range vis {
		g.Go(func() error {
			if err := r.runVisualization(ctx, v, renderer, res.Surface); err != nil {
				r.log.Error("Error rendering visualization",
					zap.String("dashboard", Population),
					zap.String("region", v.region),
					zap.String("path", v.path),
					zap.Error(err))
				res.fail(v.region, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}

func (r *Runner) runVisualization(ctx context.Context, v visualization, renderer render.Renderer, surface *render.Surface) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	fctx, cancel := r.fetchContext(ctx)
	defer cancel()

	chart, err := v.load(fctx)
	if err != nil {
		return err
	}
	return renderer.Render(surface, chart)
}

// draw renders one chart, turning a renderer panic into an error.
func draw(renderer render.Renderer, surface *render.Surface, c models.Chart) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return renderer.Render(surface, c)
}
