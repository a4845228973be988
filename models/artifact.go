// api/models/artifact.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// EDAResults is the retail analysis summary written by the EDA step (eda_results.json).
// Numbers are pointers so a missing field can be told apart from a zero.
type EDAResults struct {
	TotalInvoices  *float64        `json:"total_invoices" validate:"required"`
	CanceledOrders *float64        `json:"canceled_orders" validate:"required"`
	UniqueProducts *float64        `json:"unique_products" validate:"required"`
	TotalRevenue   *float64        `json:"total_revenue" validate:"required"`
	ReturnRate     *float64        `json:"return_rate" validate:"required"`
	SalesByCountry CategoryMapping `json:"sales_by_country" validate:"required"`
	TopProducts    CategoryMapping `json:"top_products" validate:"required"`
}

// Category is one label/value pair of a CategoryMapping.
type Category struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CategoryMapping is a JSON object of label -> number that keeps document order.
type CategoryMapping []Category

func (m *CategoryMapping) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category mapping must be a JSON object, got %v", tok)
	}

	out := CategoryMapping{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label := tok.(string) // object keys are always strings

		var value *float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for %q: %w", label, err)
		}
		if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
			return fmt.Errorf("value for %q is not a number", label)
		}

		// A repeated key keeps its first position and takes the last value.
		if i, ok := seen[label]; ok {
			out[i].Value = *value
			continue
		}
		seen[label] = len(out)
		out = append(out, Category{Label: label, Value: *value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

// Record is one object of a records-oriented JSON array, fields left undecoded.
type Record map[string]json.RawMessage

// RecordSet is an ordered JSON array of records (e.g. top_10_populous.json).
type RecordSet []Record

// String returns the field as a string.
func (r Record) String(field string) (string, error) {
	raw, ok := r[field]
	if !ok {
		return "", fmt.Errorf("field %q is missing", field)
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return *s, nil
}

// Number returns the field as a finite float64.
func (r Record) Number(field string) (float64, error) {
	raw, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("field %q is missing", field)
	}
	var f *float64
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return 0, fmt.Errorf("field %q is not a number", field)
	}
	return *f, nil
}
