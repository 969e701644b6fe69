package trace

import "math"

// Rectangle is an axis-aligned region in pixel space (top-left origin).
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Contains reports whether the point lies inside the rectangle (right/bottom edges exclusive)
func (rect Rectangle) Contains(pt Point) bool {
	return pt.X >= rect.X && pt.X < rect.X+rect.Width && pt.Y >= rect.Y && pt.Y < rect.Y+rect.Height
}

// Point is a floating point pixel coordinate
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns Euclidean distance between two points
func (pt Point) DistanceTo(other Point) float64 {
	return euclideanDistance(pt, other)
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}

// searchWindow is an integer scan window [x0, x1) x [y0, y1) in block origins
type searchWindow struct {
	x0, y0 int
	x1, y1 int
}

// fullWindow spans every block origin that keeps a whole block inside the frame
func fullWindow(width, height, blockSize int) searchWindow {
	return searchWindow{
		x0: 0,
		y0: 0,
		x1: width - blockSize,
		y1: height - blockSize,
	}
}

// windowAround restricts the scan to a square of given radius centered on pt, clamped to the frame
func windowAround(pt Point, radius float64, width, height, blockSize int) searchWindow {
	full := fullWindow(width, height, blockSize)
	return searchWindow{
		x0: maxInt(full.x0, int(math.Floor(pt.X-radius))),
		y0: maxInt(full.y0, int(math.Floor(pt.Y-radius))),
		x1: minInt(full.x1, int(math.Ceil(pt.X+radius))),
		y1: minInt(full.y1, int(math.Ceil(pt.Y+radius))),
	}
}
