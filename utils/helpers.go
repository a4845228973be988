package utils

import (
	"strconv"
)

func IsValidExportFormat(format string) bool {
	switch format {
	case "png", "html":
		return true
	default:
		return false
	}
}

// FormatNumber prints v the way a browser prints a plain number:
// no trailing zeros, no fixed precision ("541909", "1.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed prints v with exactly digits decimals.
func FormatFixed(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func FormatCurrency(v float64) string {
	return "$" + FormatFixed(v, 2)
}

// FormatPercent renders a 0-1 ratio as a percentage with two decimals.
func FormatPercent(ratio float64) string {
	return FormatFixed(ratio*100, 2) + "%"
}
