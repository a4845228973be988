package render

import (
	"encoding/json"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"edaboard/api/models"
)

const EChartsContentType = "application/vnd.echarts.option+json"

// EChartsRenderer produces echarts option documents, embedded into a page by WritePage.
type EChartsRenderer struct {
	AssetsHost string
	Width      string
	Height     string
}

type echartsChart interface {
	Validate()
	JSON() map[string]interface{}
}

func (r *EChartsRenderer) Render(surface *Surface, chart models.Chart) error {
	if err := checkChart(chart); err != nil {
		return err
	}

	var c echartsChart
	switch chart.Kind {
	case models.KindBar, models.KindHorizontalBar:
		c = r.bar(chart)
	case models.KindLine:
		c = r.line(chart)
	case models.KindPie:
		c = r.pie(chart)
	case models.KindScatter:
		c = r.scatter(chart)
	}

	c.Validate()
	option, err := json.Marshal(c.JSON())
	if err != nil {
		return fmt.Errorf("chart %q: failed to encode echarts option: %w", chart.Region, err)
	}
	return surface.Draw(Drawing{
		Region:      chart.Region,
		Kind:        chart.Kind,
		ContentType: EChartsContentType,
		Content:     option,
	})
}

func (r *EChartsRenderer) globals(chart models.Chart, trigger string) []charts.GlobalOpts {
	width, height := r.Width, r.Height
	if width == "" {
		width = "900px"
	}
	if height == "" {
		height = "500px"
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:    chart.Region,
			Width:      width,
			Height:     height,
			AssetsHost: r.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: chart.Config.Title}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: trigger}),
	}
}

func (r *EChartsRenderer) axes(cfg models.ChartConfig, valueX bool) []charts.GlobalOpts {
	x := opts.XAxis{Name: cfg.XAxisTitle}
	if valueX {
		x.Type = "value"
	}
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(x),
		charts.WithYAxisOpts(opts.YAxis{Name: cfg.YAxisTitle, Type: "value"}),
	}
}

func (r *EChartsRenderer) bar(chart models.Chart) *charts.Bar {
	cfg := chart.Config
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globals(chart, "axis")...)
	if chart.Kind == models.KindHorizontalBar {
		// XYReversal moves the labels onto the y axis, so the axis types swap too.
		bar.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Name: cfg.YAxisTitle, Type: "value"}),
			charts.WithYAxisOpts(opts.YAxis{Name: cfg.XAxisTitle, Type: "category"}),
		)
	} else {
		bar.SetGlobalOptions(r.axes(cfg, false)...)
	}

	items := make([]opts.BarData, len(chart.Series.Values))
	for i, v := range chart.Series.Values {
		items[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(chart.Series.Labels).
		AddSeries(cfg.SeriesLabel, items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: firstColor(cfg), BorderColor: cfg.BorderColor}))

	if chart.Kind == models.KindHorizontalBar {
		bar.XYReversal()
	}
	return bar
}

func (r *EChartsRenderer) line(chart models.Chart) *charts.Line {
	cfg := chart.Config
	line := charts.NewLine()
	line.SetGlobalOptions(r.globals(chart, "axis")...)
	line.SetGlobalOptions(r.axes(cfg, false)...)

	color := cfg.BorderColor
	if color == "" {
		color = firstColor(cfg)
	}
	items := make([]opts.LineData, len(chart.Series.Values))
	for i, v := range chart.Series.Values {
		items[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(chart.Series.Labels).
		AddSeries(cfg.SeriesLabel, items,
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	return line
}

func (r *EChartsRenderer) pie(chart models.Chart) *charts.Pie {
	cfg := chart.Config
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globals(chart, "item")...)

	items := make([]opts.PieData, len(chart.Series.Values))
	for i, v := range chart.Series.Values {
		items[i] = opts.PieData{Name: chart.Series.Labels[i], Value: v}
		if len(cfg.Colors) > 0 {
			items[i].ItemStyle = &opts.ItemStyle{Color: cfg.Colors[i%len(cfg.Colors)]}
		}
	}
	pie.AddSeries(cfg.SeriesLabel, items)
	return pie
}

func (r *EChartsRenderer) scatter(chart models.Chart) *charts.Scatter {
	cfg := chart.Config
	sc := charts.NewScatter()
	sc.SetGlobalOptions(r.globals(chart, "item")...)
	sc.SetGlobalOptions(r.axes(cfg, true)...)
	if cfg.Tooltip == models.TooltipPointLabel {
		// {b} is the data item's name, which carries the point label.
		sc.SetGlobalOptions(charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{b}"}))
	}

	items := make([]opts.ScatterData, len(chart.Points))
	for i, p := range chart.Points {
		items[i] = opts.ScatterData{Name: p.Label, Value: []float64{p.X, p.Y}}
	}
	sc.AddSeries(cfg.SeriesLabel, items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: firstColor(cfg)}))
	return sc
}

func firstColor(cfg models.ChartConfig) string {
	if len(cfg.Colors) == 0 {
		return ""
	}
	return cfg.Colors[0]
}
