package trace

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Shape is a coarse left/right classification of a shot as seen by the camera
type Shape string

const (
	ShapeStraight Shape = "Straight"
	// ShapeSlice - ball finishes right of the start point
	ShapeSlice Shape = "Slice"
	// ShapeHook - ball finishes left of the start point
	ShapeHook Shape = "Hook"
)

const (
	// lateralShapeThreshold is horizontal pixel offset beyond which a shot is no longer straight
	lateralShapeThreshold = 30.0
	// minSummaryPoints - trajectories with this many points or fewer are not summarized
	minSummaryPoints = 3
)

// Summary holds pixel-space statistics of a finished trajectory.
// Conversion into physical units is left to the consumer.
type Summary struct {
	// Valid is false when trajectory is too short to summarize
	Valid  bool
	Points int
	Start  Point
	End    Point
	DeltaX float64
	DeltaY float64
	// PixelDistance is straight line distance from first to last point
	PixelDistance float64
	// PathLength is sum of distances between consecutive points
	PathLength float64
	// MeanStep is average distance between consecutive points
	MeanStep float64
	Shape    Shape
	// DirectionDegrees is compass-like heading: 0 is up the image, 90 is right
	DirectionDegrees float64
	DurationMillis   int64
	// Curvature is RMS horizontal residual (px) of a straight line fit x = a + b*y
	Curvature float64
}

// Summarize derives single distance/shape/direction summary from a finished capture
func Summarize(capture Capture) Summary {
	return SummarizeTrajectory(capture.Trajectory)
}

// SummarizeTrajectory derives summary from an ordered trajectory
func SummarizeTrajectory(trajectory Trajectory) Summary {
	summary := Summary{
		Points: trajectory.Len(),
		Shape:  ShapeStraight,
	}
	if trajectory.Len() <= minSummaryPoints {
		return summary
	}
	summary.Valid = true
	first := trajectory.First()
	last := trajectory.Last()
	summary.Start = first.Point()
	summary.End = last.Point()
	summary.DeltaX = last.X - first.X
	summary.DeltaY = last.Y - first.Y
	summary.PixelDistance = euclideanDistance(summary.Start, summary.End)
	summary.DurationMillis = last.TimestampMillis - first.TimestampMillis

	if math.Abs(summary.DeltaX) > lateralShapeThreshold {
		if summary.DeltaX > 0 {
			summary.Shape = ShapeSlice
		} else {
			summary.Shape = ShapeHook
		}
	}

	angle := math.Atan2(summary.DeltaY, summary.DeltaX) * 180.0 / math.Pi
	summary.DirectionDegrees = math.Mod(angle+90.0+360.0, 360.0)

	steps := make([]float64, 0, trajectory.Len()-1)
	for i := 1; i < trajectory.Len(); i++ {
		steps = append(steps, euclideanDistance(trajectory[i-1].Point(), trajectory[i].Point()))
	}
	summary.MeanStep = stat.Mean(steps, nil)
	summary.PathLength = summary.MeanStep * float64(len(steps))
	summary.Curvature = lateralResidual(trajectory)
	return summary
}

// lateralResidual fits x as linear function of y and returns RMS residual
func lateralResidual(trajectory Trajectory) float64 {
	xs := make([]float64, trajectory.Len())
	ys := make([]float64, trajectory.Len())
	for i, tp := range trajectory {
		xs[i] = tp.X
		ys[i] = tp.Y
	}
	if stat.Variance(ys, nil) == 0 {
		return 0
	}
	alpha, beta := stat.LinearRegression(ys, xs, nil, false)
	sumSq := 0.0
	for i := range xs {
		residual := xs[i] - (alpha + beta*ys[i])
		sumSq += residual * residual
	}
	rms := math.Sqrt(sumSq / float64(len(xs)))
	if math.IsNaN(rms) || math.IsInf(rms, 0) {
		return 0
	}
	return rms
}
