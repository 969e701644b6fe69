package capture

import (
	"image"
	"time"
)

// streamClock assigns frame timestamps. Files use container positions, cameras use wall clock.
// Timestamps never go backwards: decoders report position 0 on some trailing frames.
type streamClock struct {
	fromStream bool
	start      time.Time
	last       int64
	started    bool
}

func newStreamClock(fromStream bool, start time.Time) *streamClock {
	return &streamClock{fromStream: fromStream, start: start}
}

func (clock *streamClock) timestamp(posMsec float64, now time.Time) int64 {
	var ts int64
	if clock.fromStream && posMsec > 0 {
		ts = int64(posMsec)
	} else if clock.fromStream {
		ts = clock.last
	} else {
		ts = now.Sub(clock.start).Milliseconds()
	}
	if clock.started && ts < clock.last {
		ts = clock.last
	}
	clock.last = ts
	clock.started = true
	return ts
}

// packed returns RGBA pixels without row padding
func packed(img *image.RGBA) []byte {
	bounds := img.Bounds()
	rowBytes := bounds.Dx() * 4
	if img.Stride == rowBytes && bounds.Min == (image.Point{}) {
		return img.Pix[:rowBytes*bounds.Dy()]
	}
	pix := make([]byte, 0, rowBytes*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start := img.PixOffset(bounds.Min.X, y)
		pix = append(pix, img.Pix[start:start+rowBytes]...)
	}
	return pix
}
