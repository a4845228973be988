package store

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edaboard/api/fetcher"
	"edaboard/api/models"
)

const edaResults = `{
	"total_invoices": 25900,
	"canceled_orders": 3836,
	"unique_products": 4070,
	"total_revenue": 9747747.934,
	"return_rate": 0.0196,
	"sales_by_country": {"United Kingdom": 4263829, "Netherlands": 200128, "EIRE": 142637},
	"top_products": {"85123A": 2313, "22423": 2203}
}`

func newStore(files map[string]string) *ArtifactStore {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return NewArtifactStore(fetcher.NewFSFetcher(fsys))
}

func TestGetEDAResults(t *testing.T) {
	s := newStore(map[string]string{"eda_results.json": edaResults})

	res, err := s.GetEDAResults(context.Background(), "eda_results.json")
	require.NoError(t, err)

	assert.Equal(t, 25900.0, *res.TotalInvoices)
	assert.Equal(t, 0.0196, *res.ReturnRate)
	assert.Equal(t, models.CategoryMapping{
		{Label: "United Kingdom", Value: 4263829},
		{Label: "Netherlands", Value: 200128},
		{Label: "EIRE", Value: 142637},
	}, res.SalesByCountry)
	assert.Len(t, res.TopProducts, 2)
}

func TestGetEDAResultsRejectsMissingFields(t *testing.T) {
	s := newStore(map[string]string{
		"no_revenue.json": `{"total_invoices": 1, "canceled_orders": 0, "unique_products": 1,
			"return_rate": 0, "sales_by_country": {}, "top_products": {}}`,
		"null_rate.json": `{"total_invoices": 1, "canceled_orders": 0, "unique_products": 1,
			"total_revenue": 1, "return_rate": null, "sales_by_country": {}, "top_products": {}}`,
		"no_mapping.json": `{"total_invoices": 1, "canceled_orders": 0, "unique_products": 1,
			"total_revenue": 1, "return_rate": 0, "top_products": {}}`,
	})

	for _, path := range []string{"no_revenue.json", "null_rate.json", "no_mapping.json"} {
		_, err := s.GetEDAResults(context.Background(), path)
		assert.ErrorIs(t, err, ErrInvalidArtifact, path)
	}
}

func TestGetEDAResultsAcceptsEmptyMappings(t *testing.T) {
	s := newStore(map[string]string{"eda_results.json": `{"total_invoices": 0, "canceled_orders": 0,
		"unique_products": 0, "total_revenue": 0, "return_rate": 0, "sales_by_country": {}, "top_products": {}}`})

	res, err := s.GetEDAResults(context.Background(), "eda_results.json")
	require.NoError(t, err)
	assert.Empty(t, res.SalesByCountry)
}

func TestGetEDAResultsMissingFile(t *testing.T) {
	s := newStore(nil)
	_, err := s.GetEDAResults(context.Background(), "eda_results.json")
	assert.ErrorIs(t, err, fetcher.ErrNotFound)
}

func TestGetRecords(t *testing.T) {
	s := newStore(map[string]string{
		"top.json":     `[{"Country/Territory": "China", "2022 Population": 1425887337}]`,
		"object.json":  `{"China": 1}`,
		"null.json":    `null`,
		"nullrec.json": `[null]`,
	})
	ctx := context.Background()

	recs, err := s.GetRecords(ctx, "top.json")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	name, err := recs[0].String("Country/Territory")
	require.NoError(t, err)
	assert.Equal(t, "China", name)

	_, err = s.GetRecords(ctx, "object.json")
	assert.Error(t, err)
	_, err = s.GetRecords(ctx, "null.json")
	assert.ErrorIs(t, err, ErrInvalidArtifact)
	_, err = s.GetRecords(ctx, "nullrec.json")
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestGetCategoryMapping(t *testing.T) {
	s := newStore(map[string]string{
		"trend.json":  `{"1970 Population": 3694136661, "1980 Population": 4442400371, "2022 Population": 7973413042}`,
		"bad.json":    `{"Asia": "lots"}`,
		"array.json":  `[1, 2]`,
		"null.json":   `null`,
	})
	ctx := context.Background()

	m, err := s.GetCategoryMapping(ctx, "trend.json")
	require.NoError(t, err)
	require.Len(t, m, 3)
	assert.Equal(t, "1970 Population", m[0].Label)
	assert.Equal(t, "2022 Population", m[2].Label)

	for _, path := range []string{"bad.json", "array.json", "null.json"} {
		_, err := s.GetCategoryMapping(ctx, path)
		assert.Error(t, err, path)
	}
}

func TestGetText(t *testing.T) {
	s := newStore(map[string]string{"world_population.csv": "Rank,CCA3\n1,CHN\n"})
	text, err := s.GetText(context.Background(), "world_population.csv")
	require.NoError(t, err)
	assert.Equal(t, "Rank,CCA3\n1,CHN\n", text)
}
