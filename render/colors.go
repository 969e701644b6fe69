package render

import (
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	White  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	Green  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	Red    = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
)

// DefaultTraceColor is used whenever configured trace color is malformed
var DefaultTraceColor = Green

var hexColorRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ParseTraceColor parses "#rrggbb" (leading '#' optional, case insensitive).
// Malformed values fall back to DefaultTraceColor instead of failing.
func ParseTraceColor(value string) color.NRGBA {
	value = strings.TrimSpace(value)
	if !hexColorRe.MatchString(value) {
		return DefaultTraceColor
	}
	value = strings.TrimPrefix(value, "#")
	rgb, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return DefaultTraceColor
	}
	return color.NRGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}

// FormatTraceColor is the inverse of ParseTraceColor: lower-case "#rrggbb"
func FormatTraceColor(c color.NRGBA) string {
	return "#" + hex2(c.R) + hex2(c.G) + hex2(c.B)
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// withAlpha returns copy of the color with opacity scaled by alpha in [0, 1]
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 || math.IsNaN(alpha) {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}

// hsl builds opaque color from hue in degrees, saturation and lightness in [0, 1]
func hsl(hue, saturation, lightness float64) color.NRGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	chroma := (1 - math.Abs(2*lightness-1)) * saturation
	x := chroma * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := lightness - chroma/2
	var r, g, b float64
	switch {
	case hue < 60:
		r, g, b = chroma, x, 0
	case hue < 120:
		r, g, b = x, chroma, 0
	case hue < 180:
		r, g, b = 0, chroma, x
	case hue < 240:
		r, g, b = 0, x, chroma
	case hue < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// toHSL returns hue in degrees, saturation and lightness of the color
func toHSL(c color.NRGBA) (float64, float64, float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	lightness := (maxC + minC) / 2
	delta := maxC - minC
	if delta == 0 {
		return 0, 0, lightness
	}
	saturation := delta / (1 - math.Abs(2*lightness-1))
	var hue float64
	switch maxC {
	case r:
		hue = 60 * math.Mod((g-b)/delta, 6)
	case g:
		hue = 60 * ((b-r)/delta + 2)
	default:
		hue = 60 * ((r-g)/delta + 4)
	}
	if hue < 0 {
		hue += 360
	}
	return hue, saturation, lightness
}

// contrastColor picks inner stroke color for the trail: hue shifted by 60 degrees for
// saturated colors, black or white for grays
func contrastColor(c color.NRGBA) color.NRGBA {
	hue, saturation, lightness := toHSL(c)
	if saturation < 0.1 {
		if lightness < 0.5 {
			return White
		}
		return Black
	}
	return hsl(hue+60, 1, 0.6)
}
