package render

import (
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]drawing.Color{
	"black": {R: 0, G: 0, B: 0, A: 255},
	"white": {R: 255, G: 255, B: 255, A: 255},
	"red":   {R: 255, G: 0, B: 0, A: 255},
	"green": {R: 0, G: 128, B: 0, A: 255},
	"blue":  {R: 0, G: 0, B: 255, A: 255},
	"gray":  {R: 128, G: 128, B: 128, A: 255},
}

// cssColor converts the CSS colors used in chart configs ("#36A2EB",
// "rgba(75, 192, 192, 0.6)", "blue") for go-chart, returning def for
// anything it cannot read.
func cssColor(s string, def drawing.Color) drawing.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return def
	case strings.HasPrefix(s, "#"):
		return hexColor(s[1:], def)
	case strings.HasPrefix(s, "rgb"):
		return rgbColor(s, def)
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	return def
}

func hexColor(hex string, def drawing.Color) drawing.Color {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return def
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return def
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func rgbColor(s string, def drawing.Color) drawing.Color {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return def
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return def
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return def
		}
		rgb[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return def
		}
		alpha = uint8(a*255 + 0.5)
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}
}
