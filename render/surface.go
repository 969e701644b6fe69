package render

import (
	"image"
	"image/color"

	"github.com/LdDl/golf-trace/trace"
)

// Stroke describes how a line or outline is painted
type Stroke struct {
	Width float64
	Color color.NRGBA
	// Glow is radius of the simulated soft halo around the stroke. Zero disables it
	Glow float64
}

// DrawSurface is a mutable 2D canvas of the same dimensions as processed frames.
// Renderers only draw on it and never resize it.
type DrawSurface interface {
	Bounds() image.Rectangle
	StrokePolyline(points []trace.Point, stroke Stroke)
	StrokeLine(from, to trace.Point, stroke Stroke)
	FillCircle(center trace.Point, radius float64, fill color.NRGBA)
	StrokeCircle(center trace.Point, radius float64, stroke Stroke)
}
