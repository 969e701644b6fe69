package trace

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
)

var (
	// ErrFrameSize is returned when a pixel buffer does not match the declared dimensions
	ErrFrameSize = errors.New("pixel buffer size does not match frame dimensions")
)

// Frame is a snapshot of RGBA pixel data: 4 bytes per pixel, row-major, top-left origin, no row padding.
// Detectors only read frames; overlays are drawn on a separate surface.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
	// Capture (or presentation) time of the frame
	TimestampMillis int64
}

// NewFrame wraps existing RGBA buffer. Buffer is not copied.
func NewFrame(width, height int, pix []byte, timestampMillis int64) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrFrameSize, "non-positive dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, errors.Wrapf(ErrFrameSize, "expected %d bytes for %dx%d, got %d", width*height*4, width, height, len(pix))
	}
	return &Frame{
		Width:           width,
		Height:          height,
		Pix:             pix,
		TimestampMillis: timestampMillis,
	}, nil
}

// FrameFromImage converts any image into tightly packed RGBA frame
func FrameFromImage(img image.Image, timestampMillis int64) (*Frame, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.Wrap(ErrFrameSize, "empty image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return NewFrame(bounds.Dx(), bounds.Dy(), rgba.Pix, timestampMillis)
}

// Valid reports whether the pixel buffer matches the declared dimensions.
// Frames built as struct literals are not checked by NewFrame.
func (frame *Frame) Valid() bool {
	if frame == nil || frame.Width <= 0 || frame.Height <= 0 {
		return false
	}
	return len(frame.Pix) == frame.Width*frame.Height*4
}

// SameSize reports whether both frames have identical dimensions
func (frame *Frame) SameSize(other *Frame) bool {
	if frame == nil || other == nil {
		return false
	}
	return frame.Width == other.Width && frame.Height == other.Height
}

// Clone returns deep copy of the frame
func (frame *Frame) Clone() *Frame {
	pix := make([]byte, len(frame.Pix))
	copy(pix, frame.Pix)
	return &Frame{
		Width:           frame.Width,
		Height:          frame.Height,
		Pix:             pix,
		TimestampMillis: frame.TimestampMillis,
	}
}

// Image exposes the frame as *image.RGBA sharing the same buffer
func (frame *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    frame.Pix,
		Stride: frame.Width * 4,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}
}

// Bounds returns the frame rectangle
func (frame *Frame) Bounds() Rectangle {
	return NewRect(0, 0, float64(frame.Width), float64(frame.Height))
}

// offset returns index of the R channel for pixel (x, y)
func (frame *Frame) offset(x, y int) int {
	return (y*frame.Width + x) * 4
}

// rgb returns color channels of pixel (x, y) as ints
func (frame *Frame) rgb(x, y int) (int, int, int) {
	idx := frame.offset(x, y)
	return int(frame.Pix[idx]), int(frame.Pix[idx+1]), int(frame.Pix[idx+2])
}
