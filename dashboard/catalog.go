package dashboard

import (
	"path"

	"edaboard/api/models"
)

const (
	Retail     = "retail"
	Population = "population"
)

// Region names double as element IDs on the dashboard pages.
const (
	RegionSalesByCountry = "salesByCountryChart"
	RegionTopProducts    = "topProductsChart"
	RegionPopulous       = "populousChart"
	RegionTrend          = "trendChart"
	RegionContinent      = "continentChart"
	RegionScatter        = "scatterChart"
	RegionHighestGrowth  = "highestGrowthChart"
	RegionLargestArea    = "largestAreaChart"
)

const (
	fieldCountry    = "Country/Territory"
	fieldPopulation = "2022 Population"
	fieldGrowthRate = "Growth Rate"
	fieldArea       = "Area (km²)"
)

var titles = map[string]string{
	Retail:     "Online Retail EDA",
	Population: "World Population EDA",
}

// Paths locates every artifact relative to the artifact root.
type Paths struct {
	EDAResults            string
	TopPopulous           string
	PopulationTrend       string
	PopulationByContinent string
	WorldPopulation       string
	HighestGrowth         string
	LargestArea           string
}

// DefaultPaths mirrors the layout the EDA scripts write: the retail results
// and the population CSV at the root, the population JSON under outputDir.
func DefaultPaths(outputDir string) Paths {
	out := func(name string) string { return path.Join(outputDir, name) }
	return Paths{
		EDAResults:            "eda_results.json",
		TopPopulous:           out("top_10_populous.json"),
		PopulationTrend:       out("global_population_trend.json"),
		PopulationByContinent: out("population_by_continent.json"),
		WorldPopulation:       "world_population.csv",
		HighestGrowth:         out("highest_growth.json"),
		LargestArea:           out("largest_area.json"),
	}
}

func salesByCountryChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionSalesByCountry,
		Kind:   models.KindBar,
		Config: models.ChartConfig{
			Title:       "Sales by Country",
			SeriesLabel: "Sales by Country",
			XAxisTitle:  "Country",
			YAxisTitle:  "Sales",
			Colors:      []string{"rgba(75, 192, 192, 0.6)"},
			BorderColor: "rgba(75, 192, 192, 1)",
		},
		Series: &s,
	}
}

func topProductsChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionTopProducts,
		Kind:   models.KindBar,
		Config: models.ChartConfig{
			Title:       "Top Products",
			SeriesLabel: "Top Products",
			XAxisTitle:  "Product Code",
			YAxisTitle:  "Frequency",
			Colors:      []string{"rgba(153, 102, 255, 0.6)"},
			BorderColor: "rgba(153, 102, 255, 1)",
		},
		Series: &s,
	}
}

func populousChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionPopulous,
		Kind:   models.KindHorizontalBar,
		Config: models.ChartConfig{
			Title:       "Top 10 Most Populous Countries (2022)",
			SeriesLabel: "2022 Population",
			Colors:      []string{"rgba(75, 192, 192, 0.6)"},
		},
		Series: &s,
	}
}

func trendChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionTrend,
		Kind:   models.KindLine,
		Config: models.ChartConfig{
			Title:       "Global Population Trend",
			SeriesLabel: "Global Population",
			BorderColor: "blue",
		},
		Series: &s,
	}
}

func continentChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionContinent,
		Kind:   models.KindPie,
		Config: models.ChartConfig{
			Title:  "Population by Continent",
			Colors: []string{"#FF6384", "#36A2EB", "#FFCE56", "#32CD32", "#BA55D3", "#FFA07A"},
		},
		Series: &s,
	}
}

func scatterChart(points []models.Point) models.Chart {
	return models.Chart{
		Region: RegionScatter,
		Kind:   models.KindScatter,
		Config: models.ChartConfig{
			Title:       "Area vs Population",
			SeriesLabel: "Countries",
			XAxisTitle:  "Area (km²)",
			YAxisTitle:  "2022 Population",
			Colors:      []string{"rgba(255, 99, 132, 0.5)"},
			Tooltip:     models.TooltipPointLabel,
		},
		Points: points,
	}
}

func highestGrowthChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionHighestGrowth,
		Kind:   models.KindBar,
		Config: models.ChartConfig{
			Title:       "Highest Population Growth Rate",
			SeriesLabel: "Growth Rate",
			XAxisTitle:  "Country",
			YAxisTitle:  "Growth Rate",
			Colors:      []string{"rgba(255, 159, 64, 0.6)"},
		},
		Series: &s,
	}
}

func largestAreaChart(s models.Series) models.Chart {
	return models.Chart{
		Region: RegionLargestArea,
		Kind:   models.KindHorizontalBar,
		Config: models.ChartConfig{
			Title:       "Largest Countries by Area",
			SeriesLabel: "Area (km²)",
			Colors:      []string{"rgba(54, 162, 235, 0.6)"},
		},
		Series: &s,
	}
}
