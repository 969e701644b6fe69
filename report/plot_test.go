package report

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LdDl/golf-trace/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shotCapture() trace.Capture {
	trajectory := make(trace.Trajectory, 12)
	for i := range trajectory {
		trajectory[i] = trace.TrajectoryPoint{X: 300 + float64(i*i)/2, Y: 400 - float64(i)*30, TimestampMillis: int64(i) * 33}
	}
	return trace.Capture{
		Trajectory: trajectory,
		Locked:     &trace.Point{X: 300, Y: 410},
		Width:      640,
		Height:     480,
	}
}

func TestSaveTrajectoryPlotPNG(t *testing.T) {
	capture := shotCapture()
	smoothed, err := trace.MovingAverage{}.Smooth(capture.Trajectory)
	require.NoError(t, err)
	summary := trace.Summarize(capture)

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, SaveTrajectoryPlot(path, capture, smoothed, summary))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 100)
	assert.Equal(t, cfg.Width, cfg.Height)
}

func TestSaveTrajectoryPlotSVGEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.svg")
	require.NoError(t, SaveTrajectoryPlot(path, trace.Capture{}, nil, trace.Summary{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<svg"))
}

func TestTitle(t *testing.T) {
	assert.Contains(t, title(trace.Summary{Points: 2}), "not enough")
	summary := trace.SummarizeTrajectory(shotCapture().Trajectory)
	assert.Contains(t, title(summary), string(trace.ShapeSlice))
}

func TestSaveTrajectoryPlotUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.bogus")
	assert.Error(t, SaveTrajectoryPlot(path, shotCapture(), nil, trace.Summary{}))
}
