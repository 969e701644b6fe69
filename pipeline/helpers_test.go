package pipeline

import (
	"context"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/LdDl/golf-trace/trace"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sliceSource replays prepared frames, then reports io.EOF
type sliceSource struct {
	frames []*trace.Frame
	next   int
	// beforeNext runs before each frame is handed out with the index of that frame
	beforeNext func(idx int)
}

func (source *sliceSource) Next(ctx context.Context) (*trace.Frame, error) {
	if source.next >= len(source.frames) {
		return nil, io.EOF
	}
	if source.beforeNext != nil {
		source.beforeNext(source.next)
	}
	frame := source.frames[source.next]
	source.next++
	return frame, nil
}

type failingSource struct {
	err error
}

func (source failingSource) Next(ctx context.Context) (*trace.Frame, error) {
	return nil, source.err
}

type recordingSink struct {
	timestamps []int64
	sizes      []image.Point
}

func (sink *recordingSink) Write(img *image.RGBA, timestampMillis int64) error {
	sink.timestamps = append(sink.timestamps, timestampMillis)
	sink.sizes = append(sink.sizes, img.Bounds().Size())
	return nil
}

func grayFrame(width, height int, level byte, timestampMillis int64) *trace.Frame {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = level, level, level, 255
	}
	frame, err := trace.NewFrame(width, height, pix, timestampMillis)
	if err != nil {
		panic(err)
	}
	return frame
}

func paintDisk(frame *trace.Frame, cx, cy, radius int, level byte) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || y < 0 || x >= frame.Width || y >= frame.Height {
				continue
			}
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) > radius*radius {
				continue
			}
			idx := (y*frame.Width + x) * 4
			frame.Pix[idx], frame.Pix[idx+1], frame.Pix[idx+2] = level, level, level
		}
	}
}

func paintRect(frame *trace.Frame, x0, y0, side int, level byte) {
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			idx := (y*frame.Width + x) * 4
			frame.Pix[idx], frame.Pix[idx+1], frame.Pix[idx+2] = level, level, level
		}
	}
}

// movingSquareFrames renders 6x6 white square moving from (10, 10) to (50, 50) on 64x64 frames
func movingSquareFrames(count int, stepMillis int64) []*trace.Frame {
	frames := make([]*trace.Frame, count)
	for i := range frames {
		t := float64(i) / float64(count-1)
		c := 10 + 40*t
		frame := grayFrame(64, 64, 10, int64(i)*stepMillis)
		x0 := int(math.Round(c - 3))
		paintRect(frame, x0, x0, 6, 255)
		frames[i] = frame
	}
	return frames
}

// pollingSource has nothing ready for the first `empty` polls, then replays frames
type pollingSource struct {
	empty int
	polls int
	sliceSource
}

func (source *pollingSource) Next(ctx context.Context) (*trace.Frame, error) {
	source.polls++
	if source.empty < 0 || source.polls <= source.empty {
		return nil, nil
	}
	return source.sliceSource.Next(ctx)
}
