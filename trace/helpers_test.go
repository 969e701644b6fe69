package trace

import "math"

const (
	background = 10
)

// solidFrame returns frame filled with a single gray level
func solidFrame(width, height int, level byte, timestampMillis int64) *Frame {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = level
		pix[i+1] = level
		pix[i+2] = level
		pix[i+3] = 255
	}
	frame, err := NewFrame(width, height, pix, timestampMillis)
	if err != nil {
		panic(err)
	}
	return frame
}

// fillRect paints [x0, x0+w) x [y0, y0+h) clipped to the frame
func fillRect(frame *Frame, x0, y0, w, h int, r, g, b byte) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if x < 0 || y < 0 || x >= frame.Width || y >= frame.Height {
				continue
			}
			idx := frame.offset(x, y)
			frame.Pix[idx] = r
			frame.Pix[idx+1] = g
			frame.Pix[idx+2] = b
		}
	}
}

// fillDisk paints pixels within radius of (cx, cy)
func fillDisk(frame *Frame, cx, cy, radius int, r, g, b byte) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) > radius*radius {
				continue
			}
			fillRect(frame, x, y, 1, 1, r, g, b)
		}
	}
}

// squareFrame draws white square of given side centered at (cx, cy) on dark background
func squareFrame(width, height int, cx, cy float64, side int, timestampMillis int64) *Frame {
	frame := solidFrame(width, height, background, timestampMillis)
	x0 := int(math.Round(cx - float64(side)/2.0))
	y0 := int(math.Round(cy - float64(side)/2.0))
	fillRect(frame, x0, y0, side, side, 255, 255, 255)
	return frame
}

// movingSquare returns frames of a square moving linearly between two centers
func movingSquare(width, height int, from, to Point, side, count int, stepMillis int64) ([]*Frame, []Point) {
	frames := make([]*Frame, count)
	centers := make([]Point, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		center := Point{
			X: from.X + (to.X-from.X)*t,
			Y: from.Y + (to.Y-from.Y)*t,
		}
		centers[i] = center
		frames[i] = squareFrame(width, height, center.X, center.Y, side, int64(i)*stepMillis)
	}
	return frames, centers
}

func trajectoryOf(coords ...float64) Trajectory {
	trajectory := make(Trajectory, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		trajectory = append(trajectory, TrajectoryPoint{X: coords[i], Y: coords[i+1], TimestampMillis: int64(i/2) * 33})
	}
	return trajectory
}
