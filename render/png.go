package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"edaboard/api/models"
)

var ErrEmptyChart = errors.New("nothing to draw")

// PNGRenderer draws static images with go-chart. go-chart has no horizontal
// bar chart, so horizontal bars are drawn upright, and a static image has no
// tooltips, so scatter point labels are not shown.
type PNGRenderer struct {
	Width  int
	Height int
}

func (r *PNGRenderer) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}

func (r *PNGRenderer) Render(surface *Surface, c models.Chart) error {
	if err := checkChart(c); err != nil {
		return err
	}

	var buf bytes.Buffer
	var err error
	switch c.Kind {
	case models.KindBar, models.KindHorizontalBar:
		err = r.bar(&buf, c)
	case models.KindLine:
		err = r.line(&buf, c)
	case models.KindPie:
		err = r.pie(&buf, c)
	case models.KindScatter:
		err = r.scatter(&buf, c)
	}
	if err != nil {
		return fmt.Errorf("chart %q: %w", c.Region, err)
	}

	return surface.Draw(Drawing{
		Region:      c.Region,
		Kind:        c.Kind,
		ContentType: "image/png",
		Content:     buf.Bytes(),
	})
}

func (r *PNGRenderer) bar(buf *bytes.Buffer, c models.Chart) error {
	n := c.Series.Len()
	if n == 0 {
		return ErrEmptyChart
	}
	w, h := r.size()

	fill := cssColor(firstColor(c.Config), chart.ColorBlue)
	stroke := cssColor(c.Config.BorderColor, fill)
	bars := make([]chart.Value, n)
	for i, v := range c.Series.Values {
		bars[i] = chart.Value{
			Value: v,
			Label: c.Series.Labels[i],
			Style: chart.Style{FillColor: fill, StrokeColor: stroke, StrokeWidth: 1},
		}
	}

	barWidth := (w - 120) / (2 * n)
	barWidth = max(4, min(barWidth, 60))

	bc := chart.BarChart{
		Title:      c.Config.Title,
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: c.Config.YAxisTitle, Range: barRange(c.Series.Values)},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, buf)
}

func (r *PNGRenderer) line(buf *bytes.Buffer, c models.Chart) error {
	n := c.Series.Len()
	if n == 0 {
		return ErrEmptyChart
	}
	// A continuous series needs two x values; a single entry is one bar.
	if n == 1 {
		single := c
		if single.Config.BorderColor != "" && len(single.Config.Colors) == 0 {
			single.Config.Colors = []string{single.Config.BorderColor}
		}
		return r.bar(buf, single)
	}
	w, h := r.size()

	xs := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, label := range c.Series.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	color := cssColor(c.Config.BorderColor, cssColor(firstColor(c.Config), chart.ColorBlue))
	ch := chart.Chart{
		Title:      c.Config.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.Config.XAxisTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: chart.YAxis{Name: c.Config.YAxisTitle, Range: valueRange(c.Series.Values)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Config.SeriesLabel,
				XValues: xs,
				YValues: c.Series.Values,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 2, DotColor: color, DotWidth: 3},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, buf)
}

func (r *PNGRenderer) pie(buf *bytes.Buffer, c models.Chart) error {
	if c.Series.Len() == 0 {
		return ErrEmptyChart
	}
	w, h := r.size()

	values := make([]chart.Value, c.Series.Len())
	for i, v := range c.Series.Values {
		values[i] = chart.Value{Value: v, Label: c.Series.Labels[i]}
		if len(c.Config.Colors) > 0 {
			values[i].Style = chart.Style{FillColor: cssColor(c.Config.Colors[i%len(c.Config.Colors)], chart.ColorBlue)}
		}
	}

	pc := chart.PieChart{
		Title:  c.Config.Title,
		Width:  w,
		Height: h,
		Values: values,
	}
	return pc.Render(chart.PNG, buf)
}

func (r *PNGRenderer) scatter(buf *bytes.Buffer, c models.Chart) error {
	if len(c.Points) == 0 {
		return ErrEmptyChart
	}
	w, h := r.size()

	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	dot := cssColor(firstColor(c.Config), chart.ColorRed)
	ch := chart.Chart{
		Title:      c.Config.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.Config.XAxisTitle, Range: valueRange(xs)},
		YAxis:      chart.YAxis{Name: c.Config.YAxisTitle, Range: valueRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Config.SeriesLabel,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent, DotColor: dot, DotWidth: 3},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, buf)
}

// barRange keeps zero on the axis so bar heights stay proportional.
func barRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// valueRange pads a degenerate range so go-chart never sees min == max.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
