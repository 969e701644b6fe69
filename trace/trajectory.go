package trace

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfOrder is returned when appended point is older than the last one in the trajectory
	ErrOutOfOrder = errors.New("trajectory point is older than the last accepted point")
)

const (
	// DefaultRetentionMillis is how long accepted points stay in the trajectory
	DefaultRetentionMillis = 5000
	// MinRetentionMillis and MaxRetentionMillis bound the retention window
	MinRetentionMillis = 2000
	MaxRetentionMillis = 5000
)

// TrajectoryPoint is an accepted ball position
type TrajectoryPoint struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	TimestampMillis int64   `json:"ts_ms"`
}

// Point returns position of the trajectory point
func (tp TrajectoryPoint) Point() Point {
	return Point{X: tp.X, Y: tp.Y}
}

// Trajectory is an ordered sequence of points with non-decreasing timestamps
type Trajectory []TrajectoryPoint

// Len returns number of points
func (trajectory Trajectory) Len() int {
	return len(trajectory)
}

// First returns the oldest point. Trajectory must not be empty.
func (trajectory Trajectory) First() TrajectoryPoint {
	return trajectory[0]
}

// Last returns the newest point. Trajectory must not be empty.
func (trajectory Trajectory) Last() TrajectoryPoint {
	return trajectory[len(trajectory)-1]
}

// Clone returns copy of the trajectory
func (trajectory Trajectory) Clone() Trajectory {
	if trajectory == nil {
		return nil
	}
	cloned := make(Trajectory, len(trajectory))
	copy(cloned, trajectory)
	return cloned
}

// Points returns positions without timestamps
func (trajectory Trajectory) Points() []Point {
	points := make([]Point, len(trajectory))
	for i, tp := range trajectory {
		points[i] = tp.Point()
	}
	return points
}

// ClampRetention bounds retention window into [MinRetentionMillis, MaxRetentionMillis]
func ClampRetention(windowMillis int64) int64 {
	if windowMillis < MinRetentionMillis {
		return MinRetentionMillis
	}
	if windowMillis > MaxRetentionMillis {
		return MaxRetentionMillis
	}
	return windowMillis
}

// Accumulator collects accepted detections in chronological order
type Accumulator struct {
	points   Trajectory
	smoother Smoother
}

// NewAccumulatorDefault creates accumulator with moving average smoothing
func NewAccumulatorDefault() *Accumulator {
	return NewAccumulator(MovingAverage{})
}

// NewAccumulator creates accumulator with given smoothing strategy. Nil means moving average.
func NewAccumulator(smoother Smoother) *Accumulator {
	if smoother == nil {
		smoother = MovingAverage{}
	}
	return &Accumulator{
		points:   make(Trajectory, 0, 150),
		smoother: smoother,
	}
}

// Append adds point to the end of trajectory
func (acc *Accumulator) Append(point TrajectoryPoint) error {
	if n := len(acc.points); n > 0 && point.TimestampMillis < acc.points[n-1].TimestampMillis {
		return errors.Wrapf(ErrOutOfOrder, "got %d after %d", point.TimestampMillis, acc.points[n-1].TimestampMillis)
	}
	acc.points = append(acc.points, point)
	return nil
}

// EvictOlderThan keeps only points with now - timestamp < window
func (acc *Accumulator) EvictOlderThan(nowMillis, windowMillis int64) {
	kept := acc.points[:0]
	for _, point := range acc.points {
		if nowMillis-point.TimestampMillis < windowMillis {
			kept = append(kept, point)
		}
	}
	// Release references beyond new length
	for i := len(kept); i < len(acc.points); i++ {
		acc.points[i] = TrajectoryPoint{}
	}
	acc.points = kept
}

// Smoothed returns derived smoothed copy of the trajectory. Raw points are never modified.
func (acc *Accumulator) Smoothed() (Trajectory, error) {
	smoothed, err := acc.smoother.Smooth(acc.points.Clone())
	if err != nil {
		return acc.points.Clone(), errors.Wrap(err, "Can't smooth trajectory")
	}
	return smoothed, nil
}

// Raw returns copy of accumulated points
func (acc *Accumulator) Raw() Trajectory {
	return acc.points.Clone()
}

// Len returns number of accumulated points
func (acc *Accumulator) Len() int {
	return len(acc.points)
}

// Reset drops all points
func (acc *Accumulator) Reset() {
	acc.points = make(Trajectory, 0, 150)
}

// SetSmoother swaps smoothing strategy. Nil means moving average.
func (acc *Accumulator) SetSmoother(smoother Smoother) {
	if smoother == nil {
		smoother = MovingAverage{}
	}
	acc.smoother = smoother
}
