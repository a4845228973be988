package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"edaboard/api/models"
	"edaboard/api/utils"
)

var ErrUnsupportedKind = errors.New("unsupported chart kind")

// Renderer draws one shaped chart onto its region of a surface.
type Renderer interface {
	Render(surface *Surface, chart models.Chart) error
}

// checkChart verifies the chart carries the data its kind needs.
func checkChart(chart models.Chart) error {
	switch chart.Kind {
	case models.KindBar, models.KindHorizontalBar, models.KindLine, models.KindPie:
		if chart.Series == nil {
			return fmt.Errorf("chart %q: %s chart needs a series", chart.Region, chart.Kind)
		}
		if len(chart.Series.Labels) != len(chart.Series.Values) {
			return fmt.Errorf("chart %q: %d labels for %d values", chart.Region, len(chart.Series.Labels), len(chart.Series.Values))
		}
	case models.KindScatter:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, chart.Kind)
	}
	return nil
}

// DataRenderer stores the shaped chart itself as JSON.
type DataRenderer struct{}

func (DataRenderer) Render(surface *Surface, chart models.Chart) error {
	if err := checkChart(chart); err != nil {
		return err
	}
	body, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("chart %q: failed to encode: %w", chart.Region, err)
	}
	return surface.Draw(Drawing{
		Region:      chart.Region,
		Kind:        chart.Kind,
		ContentType: "application/json",
		Content:     body,
	})
}

// SummaryLines formats the retail summary list.
func SummaryLines(s models.Summary) []string {
	return []string{
		"Total Invoices: " + utils.FormatNumber(s.TotalInvoices),
		"Canceled Orders: " + utils.FormatNumber(s.CanceledOrders),
		"Unique Products: " + utils.FormatNumber(s.UniqueProducts),
		"Total Revenue: " + utils.FormatCurrency(s.TotalRevenue),
		"Return Rate: " + utils.FormatPercent(s.ReturnRate),
	}
}
