package trace

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// KalmanSmoother filters interior trajectory points through a 2D constant-acceleration Kalman filter.
// It is an alternative to MovingAverage behind the same Smoother contract.
type KalmanSmoother struct {
	ux       float64
	uy       float64
	stdDevA  float64
	stdDevMx float64
	stdDevMy float64
}

// NewKalmanSmootherDefault creates smoother with the same filter props the tracked blobs use
func NewKalmanSmootherDefault() *KalmanSmoother {
	return NewKalmanSmoother(1.0, 1.0, 2.0, 0.1, 0.1)
}

// NewKalmanSmoother creates smoother with custom control inputs and noise deviations
func NewKalmanSmoother(ux, uy, stdDevA, stdDevMx, stdDevMy float64) *KalmanSmoother {
	return &KalmanSmoother{
		ux:       ux,
		uy:       uy,
		stdDevA:  stdDevA,
		stdDevMx: stdDevMx,
		stdDevMy: stdDevMy,
	}
}

// Smooth implements Smoother. Filter is seeded with the first point and its time step is the
// mean interval between points in seconds.
func (smoother *KalmanSmoother) Smooth(points Trajectory) (Trajectory, error) {
	if len(points) < 3 {
		return points.Clone(), nil
	}
	dt := meanIntervalSeconds(points)
	first := points[0]
	kf := kalman_filter.NewKalman2D(dt, smoother.ux, smoother.uy, smoother.stdDevA, smoother.stdDevMx, smoother.stdDevMy, kalman_filter.WithState2D(first.X, first.Y))

	smoothed := make(Trajectory, len(points))
	smoothed[0] = first
	for i := 1; i < len(points)-1; i++ {
		kf.Predict()
		err := kf.Update(points[i].X, points[i].Y)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't update filter at point %d", i)
		}
		stateX, stateY := kf.GetState()
		smoothed[i] = TrajectoryPoint{
			X:               stateX,
			Y:               stateY,
			TimestampMillis: points[i].TimestampMillis,
		}
	}
	smoothed[len(points)-1] = points[len(points)-1]
	return smoothed, nil
}

func meanIntervalSeconds(points Trajectory) float64 {
	span := points[len(points)-1].TimestampMillis - points[0].TimestampMillis
	if span <= 0 {
		return 1.0
	}
	return float64(span) / float64(len(points)-1) / 1000.0
}
