package trace

import "strings"

// Smoothing strategy names
const (
	SmoothingMovingAverage = "moving_average"
	SmoothingKalman        = "kalman"
)

// Smoother derives a smoothed copy of a trajectory.
// Implementations must return inputs shorter than 3 points unchanged, keep first and last
// points untouched and must not modify the input slice.
type Smoother interface {
	Smooth(points Trajectory) (Trajectory, error)
}

// NewSmoother returns smoothing strategy by name. Unknown names fall back to moving average.
func NewSmoother(name string) Smoother {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SmoothingKalman:
		return NewKalmanSmootherDefault()
	default:
		return MovingAverage{}
	}
}

// MovingAverage is a fixed 3-tap weighted moving average over interior points
type MovingAverage struct{}

const (
	sideWeight   = 0.2
	centerWeight = 0.6
)

// Smooth implements Smoother
func (MovingAverage) Smooth(points Trajectory) (Trajectory, error) {
	if len(points) < 3 {
		return points.Clone(), nil
	}
	smoothed := make(Trajectory, len(points))
	smoothed[0] = points[0]
	for i := 1; i < len(points)-1; i++ {
		prev := points[i-1]
		curr := points[i]
		next := points[i+1]
		smoothed[i] = TrajectoryPoint{
			X:               prev.X*sideWeight + curr.X*centerWeight + next.X*sideWeight,
			Y:               prev.Y*sideWeight + curr.Y*centerWeight + next.Y*sideWeight,
			TimestampMillis: curr.TimestampMillis,
		}
	}
	smoothed[len(points)-1] = points[len(points)-1]
	return smoothed, nil
}
