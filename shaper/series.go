// Package shaper turns fetched artifacts into the minimal structures charts consume.
package shaper

import (
	"fmt"
	"math"

	"edaboard/api/models"
)

// ObjectToSeries maps an ordered label -> value object onto parallel arrays,
// one entry per key, in document order.
func ObjectToSeries(m models.CategoryMapping) models.Series {
	s := models.Series{
		Labels: make([]string, len(m)),
		Values: make([]float64, len(m)),
	}
	for i, c := range m {
		s.Labels[i] = c.Label
		s.Values[i] = c.Value
	}
	return s
}

// ArrayToSeries takes labels[i] from records[i][labelField] and values[i] from
// records[i][valueField]. A record missing either field, or carrying the wrong
// type, rejects the whole set.
func ArrayToSeries(records models.RecordSet, labelField, valueField string) (models.Series, error) {
	s := models.Series{
		Labels: make([]string, len(records)),
		Values: make([]float64, len(records)),
	}
	for i, rec := range records {
		label, err := rec.String(labelField)
		if err != nil {
			return models.Series{}, fmt.Errorf("record %d: %w", i, err)
		}
		value, err := rec.Number(valueField)
		if err != nil {
			return models.Series{}, fmt.Errorf("record %d: %w", i, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return models.Series{}, fmt.Errorf("record %d: field %q is not finite", i, valueField)
		}
		s.Labels[i] = label
		s.Values[i] = value
	}
	return s, nil
}

// SummaryFrom copies the validated scalar fields of the retail results.
// Callers must validate res first; nil fields panic.
func SummaryFrom(res *models.EDAResults) models.Summary {
	return models.Summary{
		TotalInvoices:  *res.TotalInvoices,
		CanceledOrders: *res.CanceledOrders,
		UniqueProducts: *res.UniqueProducts,
		TotalRevenue:   *res.TotalRevenue,
		ReturnRate:     *res.ReturnRate,
	}
}
