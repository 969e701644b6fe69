package pipeline

import "math"

const (
	// DefaultMaxFPS is processing rate cap when nothing is configured
	DefaultMaxFPS = 30.0
	MinMaxFPS     = 1.0
	MaxMaxFPS     = 60.0
	// DefaultLockHoldFrames is how many processed frames the runner stays locked before tracking
	DefaultLockHoldFrames = 10
)

// Cadence controls processing rate and pre-roll timing
type Cadence struct {
	// MaxFPS caps processed frames per second of stream time
	MaxFPS float64
	// PreRollFrames limits frames spent searching for a resting ball. Tracking then starts without lock.
	// Zero means no limit.
	PreRollFrames int
	// LockHoldFrames is the wait in Locked state before tracking starts
	LockHoldFrames int
	// SkipPreRoll starts tracking immediately without stationary search
	SkipPreRoll bool
}

// DefaultCadence returns 30 fps cadence with unlimited pre-roll
func DefaultCadence() Cadence {
	return Cadence{
		MaxFPS:         DefaultMaxFPS,
		LockHoldFrames: DefaultLockHoldFrames,
	}
}

// Normalize clamps MaxFPS into [MinMaxFPS, MaxMaxFPS] and frame counters to non-negative values
func (cadence Cadence) Normalize() Cadence {
	switch {
	case math.IsNaN(cadence.MaxFPS) || cadence.MaxFPS == 0:
		cadence.MaxFPS = DefaultMaxFPS
	case cadence.MaxFPS < MinMaxFPS:
		cadence.MaxFPS = MinMaxFPS
	case cadence.MaxFPS > MaxMaxFPS:
		cadence.MaxFPS = MaxMaxFPS
	}
	if cadence.PreRollFrames < 0 {
		cadence.PreRollFrames = 0
	}
	if cadence.LockHoldFrames < 0 {
		cadence.LockHoldFrames = 0
	}
	return cadence
}

// intervalMillis is minimum stream time between two processed frames
func (cadence Cadence) intervalMillis() float64 {
	return 1000.0 / cadence.MaxFPS
}

// slotTolerance lets frames slightly ahead of their slot through, so a source running exactly at
// the cap with millisecond-rounded timestamps is not halved
const slotTolerance = 0.1

// throttle decides which frames are processed, keyed on frame timestamps rather than wall clock
type throttle struct {
	interval float64
	next     float64
	last     int64
	started  bool
}

func newThrottle(cadence Cadence) *throttle {
	return &throttle{interval: cadence.intervalMillis()}
}

// admit reports whether frame with given timestamp should be processed
func (th *throttle) admit(timestampMillis int64) bool {
	ts := float64(timestampMillis)
	// stream restarted or looped
	if th.started && timestampMillis < th.last {
		th.started = false
	}
	th.last = timestampMillis
	if th.started && ts < th.next-th.interval*slotTolerance {
		return false
	}
	th.started = true
	th.next = ts + th.interval
	return true
}
