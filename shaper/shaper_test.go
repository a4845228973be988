package shaper

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edaboard/api/models"
)

func TestObjectToSeriesPreservesOrder(t *testing.T) {
	var m models.CategoryMapping
	require.NoError(t, json.Unmarshal([]byte(`{"Asia": 4721383274, "Africa": 1426730932, "Europe": 743147538,
		"North America": 600296136, "South America": 436816608, "Oceania": 45038554}`), &m))

	s := ObjectToSeries(m)
	assert.Equal(t, []string{"Asia", "Africa", "Europe", "North America", "South America", "Oceania"}, s.Labels)
	assert.Equal(t, []float64{4721383274, 1426730932, 743147538, 600296136, 436816608, 45038554}, s.Values)
	assert.Equal(t, len(s.Labels), len(s.Values))
}

func TestObjectToSeriesDuplicateKey(t *testing.T) {
	var m models.CategoryMapping
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &m))

	s := ObjectToSeries(m)
	assert.Equal(t, []string{"a", "b"}, s.Labels)
	assert.Equal(t, []float64{3, 2}, s.Values)
}

func TestObjectToSeriesEmpty(t *testing.T) {
	s := ObjectToSeries(models.CategoryMapping{})
	assert.Empty(t, s.Labels)
	assert.Empty(t, s.Values)
}

func TestArrayToSeries(t *testing.T) {
	var recs models.RecordSet
	require.NoError(t, json.Unmarshal([]byte(`[
		{"Rank": 1, "Country/Territory": "China", "2022 Population": 1425887337},
		{"Rank": 2, "Country/Territory": "India", "2022 Population": 1417173173}
	]`), &recs))

	s, err := ArrayToSeries(recs, "Country/Territory", "2022 Population")
	require.NoError(t, err)
	assert.Equal(t, []string{"China", "India"}, s.Labels)
	assert.Equal(t, []float64{1425887337, 1417173173}, s.Values)
}

func TestArrayToSeriesRejectsBadRecords(t *testing.T) {
	cases := map[string]string{
		"missing label": `[{"2022 Population": 1}]`,
		"missing value": `[{"Country/Territory": "China"}]`,
		"null value":    `[{"Country/Territory": "China", "2022 Population": null}]`,
		"string value":  `[{"Country/Territory": "China", "2022 Population": "many"}]`,
		"numeric label": `[{"Country/Territory": 7, "2022 Population": 1}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var recs models.RecordSet
			require.NoError(t, json.Unmarshal([]byte(body), &recs))
			_, err := ArrayToSeries(recs, "Country/Territory", "2022 Population")
			assert.Error(t, err)
		})
	}
}

func TestTextToPointsExample(t *testing.T) {
	text := "header\nid,x,Name,a,b,1000,c,c,c,c,c,c,c,500"

	points := TextToPoints(text, WorldPopulationColumns)
	assert.Equal(t, []models.Point{{X: 500, Y: 1000, Label: "Name"}}, points)
}

func TestTextToPointsDropsTrailingBlankLine(t *testing.T) {
	text := "header\nid,x,Name,a,b,1000,c,c,c,c,c,c,c,500\n"

	points := TextToPoints(text, WorldPopulationColumns)
	assert.Len(t, points, 1)
}

func TestTextToPointsDropsMalformedRows(t *testing.T) {
	text := strings.Join([]string{
		"Rank,CCA3,Country/Territory,Capital,Continent,2022 Population,2020,2015,2010,2000,1990,1980,1970,Area (km²)",
		"36,AFG,Afghanistan,Kabul,Asia,41128771,38972230,33753499,28189672,19542982,10694796,12486631,10752971,652230",
		"bad,row,Nowhere,x,y,lots,0,0,0,0,0,0,0,12",
		"short,row,Tiny",
		"",
		"1,CHN,China,Beijing,Asia,1425887337,1424929781,1393715448,1348191368,1264099069,1153704252,982372466,822534450,9706961\r",
	}, "\n")

	points := TextToPoints(text, WorldPopulationColumns)
	require.Len(t, points, 2)
	assert.Equal(t, models.Point{X: 652230, Y: 41128771, Label: "Afghanistan"}, points[0])
	assert.Equal(t, models.Point{X: 9706961, Y: 1425887337, Label: "China"}, points[1])

	lines := strings.Count(text, "\n") + 1
	assert.LessOrEqual(t, len(points), lines-1)
	for _, p := range points {
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	}
}

func TestTextToPointsEmptyInput(t *testing.T) {
	assert.Empty(t, TextToPoints("", WorldPopulationColumns))
	assert.Empty(t, TextToPoints("header only", WorldPopulationColumns))
}

func TestTextToPointsDropsInfinity(t *testing.T) {
	text := "h\na,b,Far,d,e,Infinity,g,h,i,j,k,l,m,1"
	assert.Empty(t, TextToPoints(text, WorldPopulationColumns))
}

func TestParseFloat(t *testing.T) {
	cases := map[string]float64{
		"1000":     1000,
		"  42":     42,
		"500\r":    500,
		"12kg":     12,
		"-3.5":     -3.5,
		"+7":       7,
		".25":      0.25,
		"5.":       5,
		"1e3":      1000,
		"2E-2":     0.02,
		"4e":       4,
		"6e+":      6,
		"Infinity": math.Inf(1),
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseFloat(in), in)
	}

	for _, in := range []string{"", "   ", "abc", ".", "-", "e5", "NaN", "\r"} {
		assert.True(t, math.IsNaN(ParseFloat(in)), in)
	}
	assert.True(t, math.IsInf(ParseFloat("1e400"), 1))
	assert.True(t, math.IsInf(ParseFloat("-Infinity"), -1))
}

func TestSummaryFrom(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	s := SummaryFrom(&models.EDAResults{
		TotalInvoices:  f(25900),
		CanceledOrders: f(3836),
		UniqueProducts: f(4070),
		TotalRevenue:   f(1234.5),
		ReturnRate:     f(0.1234),
	})
	assert.Equal(t, models.Summary{
		TotalInvoices:  25900,
		CanceledOrders: 3836,
		UniqueProducts: 4070,
		TotalRevenue:   1234.5,
		ReturnRate:     0.1234,
	}, s)
}
