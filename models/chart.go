package models

// Summary is the validated form of EDAResults' scalar fields.
type Summary struct {
	TotalInvoices  float64 `json:"totalInvoices"`
	CanceledOrders float64 `json:"canceledOrders"`
	UniqueProducts float64 `json:"uniqueProducts"`
	TotalRevenue   float64 `json:"totalRevenue"`
	ReturnRate     float64 `json:"returnRate"`
}

// Series holds parallel label and value arrays of equal length.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int { return len(s.Labels) }

// Point is one scatter point carrying its own display label.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type ChartKind string

const (
	KindBar           ChartKind = "bar"
	KindHorizontalBar ChartKind = "horizontal-bar"
	KindLine          ChartKind = "line"
	KindPie           ChartKind = "pie"
	KindScatter       ChartKind = "scatter"
)

// TooltipMode selects what a chart's tooltip shows for a hovered item.
type TooltipMode string

const (
	TooltipValue      TooltipMode = ""
	TooltipPointLabel TooltipMode = "point-label"
)

// ChartConfig is the static styling handed to a renderer alongside the data.
type ChartConfig struct {
	Title       string      `json:"title,omitempty"`
	SeriesLabel string      `json:"seriesLabel,omitempty"`
	XAxisTitle  string      `json:"xAxisTitle,omitempty"`
	YAxisTitle  string      `json:"yAxisTitle,omitempty"`
	Colors      []string    `json:"colors,omitempty"`
	BorderColor string      `json:"borderColor,omitempty"`
	Tooltip     TooltipMode `json:"tooltip,omitempty"`
}

// Chart is a fully shaped visualization ready for a renderer.
// Series is used by every kind except scatter, which uses Points.
type Chart struct {
	Region string      `json:"region"`
	Kind   ChartKind   `json:"kind"`
	Config ChartConfig `json:"config"`
	Series *Series     `json:"series,omitempty"`
	Points []Point     `json:"points,omitempty"`
}
