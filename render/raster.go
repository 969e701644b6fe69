package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/LdDl/golf-trace/trace"
	"golang.org/x/image/vector"
)

const (
	glowLayers = 4
	glowAlpha  = 0.15
)

// RasterSurface is a DrawSurface over *image.RGBA with anti-aliased shapes.
// Every shape is composed into a single path so overlapping parts of one stroke do not double the alpha.
// Only the bounding box of a path is rasterized.
type RasterSurface struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	path []pathVertex
}

type pathVertex struct {
	x, y  float64
	start bool
}

// NewRasterSurface creates transparent surface
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(1, 1),
	}
}

// NewRasterSurfaceFromFrame creates surface holding a copy of the frame pixels
func NewRasterSurfaceFromFrame(frame *trace.Frame) *RasterSurface {
	surface := NewRasterSurface(frame.Width, frame.Height)
	copy(surface.img.Pix, frame.Pix)
	return surface
}

// Image returns underlying image. It is drawn in place.
func (surface *RasterSurface) Image() *image.RGBA {
	return surface.img
}

// Bounds implements DrawSurface
func (surface *RasterSurface) Bounds() image.Rectangle {
	return surface.img.Bounds()
}

// StrokePolyline implements DrawSurface. Joints and ends are round.
func (surface *RasterSurface) StrokePolyline(points []trace.Point, stroke Stroke) {
	if len(points) < 2 || stroke.Width <= 0 {
		return
	}
	surface.withGlow(stroke, func(width float64, c color.NRGBA) {
		surface.fill(c, func() {
			half := width / 2
			for i := 1; i < len(points); i++ {
				surface.segment(points[i-1], points[i], half)
			}
			for _, pt := range points {
				surface.disc(pt, half)
			}
		})
	})
}

// StrokeLine implements DrawSurface
func (surface *RasterSurface) StrokeLine(from, to trace.Point, stroke Stroke) {
	surface.StrokePolyline([]trace.Point{from, to}, stroke)
}

// FillCircle implements DrawSurface
func (surface *RasterSurface) FillCircle(center trace.Point, radius float64, fill color.NRGBA) {
	if radius <= 0 {
		return
	}
	surface.fill(fill, func() {
		surface.disc(center, radius)
	})
}

// StrokeCircle implements DrawSurface
func (surface *RasterSurface) StrokeCircle(center trace.Point, radius float64, stroke Stroke) {
	if radius <= 0 || stroke.Width <= 0 {
		return
	}
	surface.withGlow(stroke, func(width float64, c color.NRGBA) {
		surface.fill(c, func() {
			surface.disc(center, radius+width/2)
			if inner := radius - width/2; inner > 0 {
				surface.hole(center, inner)
			}
		})
	})
}

func (surface *RasterSurface) withGlow(stroke Stroke, paint func(width float64, c color.NRGBA)) {
	if stroke.Glow > 0 {
		for i := glowLayers; i >= 1; i-- {
			paint(stroke.Width+stroke.Glow*float64(i)/glowLayers, withAlpha(stroke.Color, glowAlpha))
		}
	}
	paint(stroke.Width, stroke.Color)
}

func (surface *RasterSurface) fill(c color.NRGBA, build func()) {
	if c.A == 0 {
		return
	}
	surface.path = surface.path[:0]
	build()
	box := surface.pathBounds()
	if box.Empty() {
		return
	}
	surface.z.Reset(box.Dx(), box.Dy())
	surface.z.DrawOp = draw.Over
	ox := float64(box.Min.X)
	oy := float64(box.Min.Y)
	for i, v := range surface.path {
		x := float32(v.x - ox)
		y := float32(v.y - oy)
		if v.start {
			if i > 0 {
				surface.z.ClosePath()
			}
			surface.z.MoveTo(x, y)
			continue
		}
		surface.z.LineTo(x, y)
	}
	surface.z.ClosePath()
	surface.z.Draw(surface.img, box, image.NewUniform(c), image.Point{})
}

// pathBounds returns integer box covering every recorded vertex, clipped to the image
func (surface *RasterSurface) pathBounds() image.Rectangle {
	if len(surface.path) == 0 {
		return image.Rectangle{}
	}
	minX, minY := surface.path[0].x, surface.path[0].y
	maxX, maxY := minX, minY
	for _, v := range surface.path[1:] {
		minX = math.Min(minX, v.x)
		minY = math.Min(minY, v.y)
		maxX = math.Max(maxX, v.x)
		maxY = math.Max(maxY, v.y)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	return box.Intersect(surface.img.Bounds())
}

// segment adds quad around the segment. All sub-paths share orientation so they add up instead of cancelling.
func (surface *RasterSurface) segment(from, to trace.Point, half float64) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx := -dy / length * half
	ny := dx / length * half
	surface.moveTo(from.X+nx, from.Y+ny)
	surface.lineTo(to.X+nx, to.Y+ny)
	surface.lineTo(to.X-nx, to.Y-ny)
	surface.lineTo(from.X-nx, from.Y-ny)
}

func (surface *RasterSurface) disc(center trace.Point, radius float64) {
	surface.circlePath(center, radius, -1)
}

// hole is a disc of opposite orientation: it cancels coverage of the enclosing disc
func (surface *RasterSurface) hole(center trace.Point, radius float64) {
	surface.circlePath(center, radius, 1)
}

func (surface *RasterSurface) circlePath(center trace.Point, radius float64, direction float64) {
	steps := int(math.Ceil(radius * 2))
	if steps < 12 {
		steps = 12
	}
	if steps > 96 {
		steps = 96
	}
	surface.moveTo(center.X+radius, center.Y)
	for i := 1; i < steps; i++ {
		angle := direction * 2 * math.Pi * float64(i) / float64(steps)
		surface.lineTo(center.X+radius*math.Cos(angle), center.Y+radius*math.Sin(angle))
	}
}

func (surface *RasterSurface) moveTo(x, y float64) {
	x, y = surface.clamp(x, y)
	surface.path = append(surface.path, pathVertex{x: x, y: y, start: true})
}

func (surface *RasterSurface) lineTo(x, y float64) {
	x, y = surface.clamp(x, y)
	surface.path = append(surface.path, pathVertex{x: x, y: y})
}

// clamp keeps vertices inside the image
func (surface *RasterSurface) clamp(x, y float64) (float64, float64) {
	size := surface.img.Bounds().Size()
	return clampCoord(x, float64(size.X)), clampCoord(y, float64(size.Y))
}

func clampCoord(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
