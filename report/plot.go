package report

import (
	"fmt"
	"image/color"

	"github.com/LdDl/golf-trace/trace"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	rawColor      = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	smoothedColor = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	lockColor     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// PlotSize is side of the saved square figure
const PlotSize = 6 * vg.Inch

// NewTrajectoryPlot builds image-space plot of raw and smoothed trajectories. Y axis grows downwards like image rows.
func NewTrajectoryPlot(capture trace.Capture, smoothed trace.Trajectory, summary trace.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title(summary)
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())
	if capture.Width > 0 && capture.Height > 0 {
		p.X.Min, p.X.Max = 0, float64(capture.Width)
		p.Y.Min, p.Y.Max = 0, float64(capture.Height)
	}

	if capture.Trajectory.Len() > 0 {
		raw, err := plotter.NewScatter(xys(capture.Trajectory))
		if err != nil {
			return nil, errors.Wrap(err, "Can't build raw series")
		}
		raw.GlyphStyle.Color = rawColor
		raw.GlyphStyle.Radius = vg.Points(2)
		raw.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(raw)
		p.Legend.Add("raw", raw)
	}
	if smoothed.Len() > 1 {
		line, err := plotter.NewLine(xys(smoothed))
		if err != nil {
			return nil, errors.Wrap(err, "Can't build smoothed series")
		}
		line.Color = smoothedColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("smoothed", line)
	}
	if capture.Locked != nil {
		lock, err := plotter.NewScatter(plotter.XYs{{X: capture.Locked.X, Y: capture.Locked.Y}})
		if err != nil {
			return nil, errors.Wrap(err, "Can't build lock marker")
		}
		lock.GlyphStyle.Color = lockColor
		lock.GlyphStyle.Radius = vg.Points(5)
		lock.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(lock)
		p.Legend.Add("lock", lock)
	}
	return p, nil
}

// SaveTrajectoryPlot writes the plot to path. Format follows the extension (png, svg, pdf, ...).
func SaveTrajectoryPlot(path string, capture trace.Capture, smoothed trace.Trajectory, summary trace.Summary) error {
	p, err := NewTrajectoryPlot(capture, smoothed, summary)
	if err != nil {
		return err
	}
	if err := p.Save(PlotSize, PlotSize, path); err != nil {
		return errors.Wrapf(err, "Can't save plot '%s'", path)
	}
	return nil
}

func title(summary trace.Summary) string {
	if !summary.Valid {
		return fmt.Sprintf("Shot: %d points, not enough to summarize", summary.Points)
	}
	return fmt.Sprintf("%s, %.0f°, %.0f px in %d ms", summary.Shape, summary.DirectionDegrees, summary.PixelDistance, summary.DurationMillis)
}

func xys(trajectory trace.Trajectory) plotter.XYs {
	pts := make(plotter.XYs, trajectory.Len())
	for i, tp := range trajectory {
		pts[i].X = tp.X
		pts[i].Y = tp.Y
	}
	return pts
}
