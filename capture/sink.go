package capture

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DefaultCodec is FourCC used for overlay videos
const DefaultCodec = "MJPG"

// VideoSink writes rendered overlays into a video file. The writer is opened on the first frame,
// when dimensions become known.
type VideoSink struct {
	path   string
	codec  string
	fps    float64
	writer *gocv.VideoWriter
	size   image.Point
	bgr    gocv.Mat
}

// NewVideoSink prepares sink. fps outside (0, 120] falls back to 30.
func NewVideoSink(path string, fps float64) *VideoSink {
	if fps <= 0 || fps > 120 {
		fps = 30
	}
	return &VideoSink{
		path:  path,
		codec: DefaultCodec,
		fps:   fps,
		bgr:   gocv.NewMat(),
	}
}

// Write implements pipeline.FrameSink
func (sink *VideoSink) Write(img *image.RGBA, timestampMillis int64) error {
	size := img.Bounds().Size()
	if sink.writer == nil {
		writer, err := gocv.VideoWriterFile(sink.path, sink.codec, sink.fps, size.X, size.Y, true)
		if err != nil {
			return errors.Wrapf(err, "Can't open video writer '%s'", sink.path)
		}
		sink.writer = writer
		sink.size = size
	}
	if size != sink.size {
		return errors.Errorf("overlay size changed from %v to %v", sink.size, size)
	}
	rgba, err := gocv.NewMatFromBytes(size.Y, size.X, gocv.MatTypeCV8UC4, packed(img))
	if err != nil {
		return errors.Wrap(err, "Can't wrap overlay")
	}
	defer rgba.Close()
	gocv.CvtColor(rgba, &sink.bgr, gocv.ColorRGBAToBGR)
	if err := sink.writer.Write(sink.bgr); err != nil {
		return errors.Wrap(err, "Can't write overlay frame")
	}
	return nil
}

// Close finalizes the video file
func (sink *VideoSink) Close() error {
	sink.bgr.Close()
	if sink.writer == nil {
		return nil
	}
	return sink.writer.Close()
}
