package render

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/LdDl/golf-trace/trace"
)

const (
	electricJitter      = 2.5
	electricSparkEvery  = 4
	electricSparkLength = 6.0
	electricGlow        = 15.0
	electricCoreWidth   = 3.0
	electricCoreAlpha   = 0.6

	wavesTickEvery  = 3
	wavesTickLength = 10.0

	fireParticleChance = 0.3
	fireParticleSpread = 15.0

	waterDropEvery = 5
)

// progress of i-th point along the trail: 0 at the tail, 1 at the head
func progress(i, n int) float64 {
	if n < 2 {
		return 1
	}
	return float64(i) / float64(n-1)
}

func jitter(pt trace.Point, amplitude float64, rnd *rand.Rand) trace.Point {
	return trace.Point{
		X: pt.X + (rnd.Float64()*2-1)*amplitude,
		Y: pt.Y + (rnd.Float64()*2-1)*amplitude,
	}
}

// electric: jittered bolt over a single shared glow, white sparks at intervals
func electric(surface DrawSurface, points []trace.Point, base color.NRGBA, rnd *rand.Rand) {
	bolt := make([]trace.Point, len(points))
	for i, pt := range points {
		bolt[i] = jitter(pt, electricJitter, rnd)
	}
	surface.StrokePolyline(bolt, Stroke{
		Width: electricCoreWidth,
		Color: withAlpha(base, electricCoreAlpha),
		Glow:  electricGlow,
	})
	for i := 1; i < len(bolt); i++ {
		surface.StrokeLine(bolt[i-1], bolt[i], Stroke{
			Width: electricCoreWidth + rnd.Float64()*2,
			Color: withAlpha(base, electricCoreAlpha+rnd.Float64()*0.4),
		})
	}
	for i := 0; i < len(points); i += electricSparkEvery {
		angle := rnd.Float64() * 2 * math.Pi
		to := trace.Point{
			X: points[i].X + math.Cos(angle)*electricSparkLength,
			Y: points[i].Y + math.Sin(angle)*electricSparkLength,
		}
		surface.StrokeLine(points[i], to, Stroke{Width: 1.5, Color: White})
	}
}

// normalAt returns unit vector perpendicular to the path at i-th point
func normalAt(points []trace.Point, i int) (float64, float64) {
	prev := points[maxInt(i-1, 0)]
	next := points[minInt(i+1, len(points)-1)]
	dx := next.X - prev.X
	dy := next.Y - prev.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 1
	}
	return -dy / length, dx / length
}

// waves: perpendicular ticks fading in towards the head
func waves(surface DrawSurface, points []trace.Point, base color.NRGBA) {
	n := len(points)
	for i := 0; i < n; i += wavesTickEvery {
		nx, ny := normalAt(points, i)
		half := wavesTickLength / 2
		from := trace.Point{X: points[i].X - nx*half, Y: points[i].Y - ny*half}
		to := trace.Point{X: points[i].X + nx*half, Y: points[i].Y + ny*half}
		surface.StrokeLine(from, to, Stroke{
			Width: 2,
			Color: withAlpha(base, progress(i, n)),
		})
	}
}

// fire: warm hue gradient, tapering width and random particles
func fire(surface DrawSurface, points []trace.Point, rnd *rand.Rand) {
	n := len(points)
	for i := 1; i < n; i++ {
		p := progress(i, n)
		hue := 15 + p*30
		surface.StrokeLine(points[i-1], points[i], Stroke{
			Width: 6 - p*3,
			Color: hsl(hue, 1, 0.5+p*0.3),
		})
		if rnd.Float64() < fireParticleChance {
			particle := jitter(points[i], fireParticleSpread, rnd)
			surface.FillCircle(particle, 2+rnd.Float64()*3, withAlpha(hsl(hue, 1, 0.6), 0.8))
		}
	}
}

// water: droplets with two concentric rings at fixed intervals
func water(surface DrawSurface, points []trace.Point, base color.NRGBA) {
	surface.StrokePolyline(points, Stroke{Width: 4, Color: withAlpha(base, 0.7)})
	for i := 0; i < len(points); i += waterDropEvery {
		surface.FillCircle(points[i], 3, withAlpha(base, 0.4))
		surface.StrokeCircle(points[i], 6, Stroke{Width: 1, Color: withAlpha(base, 0.6)})
		surface.StrokeCircle(points[i], 10, Stroke{Width: 1, Color: withAlpha(base, 0.3)})
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
