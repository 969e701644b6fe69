package capture

import (
	"context"
	"io"
	"time"

	"github.com/LdDl/golf-trace/trace"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// VideoSource reads frames from a video file or a camera and converts them into RGBA frames
type VideoSource struct {
	video *gocv.VideoCapture
	bgr   gocv.Mat
	rgba  gocv.Mat
	clock *streamClock
}

// OpenFile opens video file. Frame timestamps are stream positions.
func OpenFile(path string) (*VideoSource, error) {
	video, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video file '%s'", path)
	}
	return newVideoSource(video, newStreamClock(true, time.Now())), nil
}

// OpenDevice opens camera by index. Frame timestamps are wall clock milliseconds since open.
func OpenDevice(device int) (*VideoSource, error) {
	video, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open video device %d", device)
	}
	return newVideoSource(video, newStreamClock(false, time.Now())), nil
}

func newVideoSource(video *gocv.VideoCapture, clock *streamClock) *VideoSource {
	return &VideoSource{
		video: video,
		bgr:   gocv.NewMat(),
		rgba:  gocv.NewMat(),
		clock: clock,
	}
}

// FPS returns native frame rate reported by the container or the driver
func (source *VideoSource) FPS() float64 {
	return source.video.Get(gocv.VideoCaptureFPS)
}

// Next implements pipeline.FrameSource. Every call returns a frame with its own pixel buffer.
func (source *VideoSource) Next(ctx context.Context) (*trace.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := source.video.Read(&source.bgr); !ok {
		return nil, io.EOF
	}
	if source.bgr.Empty() {
		return nil, nil
	}
	ts := source.clock.timestamp(source.video.Get(gocv.VideoCapturePosMsec), time.Now())
	gocv.CvtColor(source.bgr, &source.rgba, gocv.ColorBGRToRGBA)
	frame, err := trace.NewFrame(source.rgba.Cols(), source.rgba.Rows(), source.rgba.ToBytes(), ts)
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert frame")
	}
	return frame, nil
}

// Close releases the capture device and conversion buffers
func (source *VideoSource) Close() error {
	source.bgr.Close()
	source.rgba.Close()
	return source.video.Close()
}
