package render

import (
	"image/color"

	"github.com/LdDl/golf-trace/trace"
)

// DrawLockIndicator marks locked resting position of the ball: ring with a dot inside
func DrawLockIndicator(surface DrawSurface, locked trace.Point, c color.NRGBA) {
	surface.StrokeCircle(locked, 25, Stroke{Width: 3, Color: c})
	surface.FillCircle(locked, 12, withAlpha(c, 0.5))
}

// DrawBallMarker highlights current ball candidate
func DrawBallMarker(surface DrawSurface, position trace.Point, c color.NRGBA) {
	surface.StrokeCircle(position, 20, Stroke{Width: 5, Color: c})
	surface.FillCircle(position, 10, withAlpha(c, 0.6))
}
