package render

import (
	"math/rand"
	"time"

	"github.com/LdDl/golf-trace/trace"
)

// TrailRenderer draws a trajectory as a readable base trail plus the configured decorative effect.
// Rendering is a pure function of the trajectory: decorative randomness is drawn from a fresh source on
// every call and never fed back into trajectory data.
type TrailRenderer struct {
	style   Style
	newRand func() *rand.Rand
}

// TrailOption configures TrailRenderer
type TrailOption func(*TrailRenderer)

// WithRandSource makes every render call use a source seeded with the given value
func WithRandSource(seed int64) TrailOption {
	return func(renderer *TrailRenderer) {
		renderer.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		}
	}
}

// NewTrailRendererDefault creates renderer with DefaultStyle
func NewTrailRendererDefault(options ...TrailOption) *TrailRenderer {
	return NewTrailRenderer(DefaultStyle(), options...)
}

// NewTrailRenderer creates renderer with given style
func NewTrailRenderer(style Style, options ...TrailOption) *TrailRenderer {
	renderer := &TrailRenderer{
		style: style,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, option := range options {
		option(renderer)
	}
	return renderer
}

// Style returns current style
func (renderer *TrailRenderer) Style() Style {
	return renderer.style
}

// SetStyle replaces style, effective from the next Render call
func (renderer *TrailRenderer) SetStyle(style Style) {
	renderer.style = style
}

// Render draws the trajectory. Trajectories shorter than 2 points produce no drawing calls.
func (renderer *TrailRenderer) Render(surface DrawSurface, trajectory trace.Trajectory) {
	if surface == nil || trajectory.Len() < 2 {
		return
	}
	points := trajectory.Points()
	renderer.baseTrail(surface, points)
	rnd := renderer.newRand()
	switch renderer.style.Effect {
	case EffectElectric:
		electric(surface, points, renderer.style.Color, rnd)
	case EffectWaves:
		waves(surface, points, renderer.style.Color)
	case EffectFire:
		fire(surface, points, rnd)
	case EffectWater:
		water(surface, points, renderer.style.Color)
	}
}

func (renderer *TrailRenderer) baseTrail(surface DrawSurface, points []trace.Point) {
	surface.StrokePolyline(points, Stroke{
		Width: renderer.style.BaseWidth,
		Color: renderer.style.Color,
		Glow:  renderer.style.Glow,
	})
	surface.StrokePolyline(points, Stroke{
		Width: renderer.style.InnerWidth,
		Color: contrastColor(renderer.style.Color),
	})
}
