package render

import (
	"image"
	"image/color"

	"github.com/LdDl/golf-trace/trace"
)

type drawCall struct {
	Kind   string
	Points []trace.Point
	Radius float64
	Stroke Stroke
	Fill   color.NRGBA
}

// recordingSurface remembers every drawing call instead of painting
type recordingSurface struct {
	bounds image.Rectangle
	calls  []drawCall
}

func newRecordingSurface(width, height int) *recordingSurface {
	return &recordingSurface{bounds: image.Rect(0, 0, width, height)}
}

func (surface *recordingSurface) Bounds() image.Rectangle {
	return surface.bounds
}

func (surface *recordingSurface) StrokePolyline(points []trace.Point, stroke Stroke) {
	copied := make([]trace.Point, len(points))
	copy(copied, points)
	surface.calls = append(surface.calls, drawCall{Kind: "polyline", Points: copied, Stroke: stroke})
}

func (surface *recordingSurface) StrokeLine(from, to trace.Point, stroke Stroke) {
	surface.calls = append(surface.calls, drawCall{Kind: "line", Points: []trace.Point{from, to}, Stroke: stroke})
}

func (surface *recordingSurface) FillCircle(center trace.Point, radius float64, fill color.NRGBA) {
	surface.calls = append(surface.calls, drawCall{Kind: "fill_circle", Points: []trace.Point{center}, Radius: radius, Fill: fill})
}

func (surface *recordingSurface) StrokeCircle(center trace.Point, radius float64, stroke Stroke) {
	surface.calls = append(surface.calls, drawCall{Kind: "stroke_circle", Points: []trace.Point{center}, Radius: radius, Stroke: stroke})
}

func arc(n int) trace.Trajectory {
	trajectory := make(trace.Trajectory, n)
	for i := range trajectory {
		trajectory[i] = trace.TrajectoryPoint{
			X:               20 + float64(i)*8,
			Y:               200 - float64(i*i)*0.5,
			TimestampMillis: int64(i) * 33,
		}
	}
	return trajectory
}
