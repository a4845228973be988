package shaper

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"edaboard/api/models"
)

// PointColumns names the zero-based column indexes a point is read from.
type PointColumns struct {
	X     int
	Y     int
	Label int
}

// WorldPopulationColumns reads world_population.csv:
// area (km²) on X, 2022 population on Y, country/territory as the label.
var WorldPopulationColumns = PointColumns{X: 13, Y: 5, Label: 2}

const delimiter = ","

// TextToPoints splits text into lines, drops the header line, splits every
// other line on commas and keeps the rows whose X and Y columns parse as
// finite numbers. Blank or short lines fail the numeric parse and are dropped
// like any other malformed row.
func TextToPoints(text string, cols PointColumns) []models.Point {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return []models.Point{}
	}

	points := make([]models.Point, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, delimiter)
		x := ParseFloat(column(fields, cols.X))
		y := ParseFloat(column(fields, cols.Y))
		if !finite(x) || !finite(y) {
			continue
		}
		points = append(points, models.Point{X: x, Y: y, Label: column(fields, cols.Label)})
	}
	return points
}

func column(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseFloat reads the longest numeric prefix of s after leading whitespace,
// so "500\r" is 500 and "12kg" is 12. It returns NaN when s has no numeric prefix.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	// The exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range: ParseFloat already returned ±Inf or ±0.
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
