package trace

// Candidate is a single frame's best guess of the ball location.
// Score ranking is detector specific and must not be compared across detectors.
type Candidate struct {
	X          float64
	Y          float64
	Score      float64
	Brightness float64
}

// Point returns candidate's position
func (candidate Candidate) Point() Point {
	return Point{X: candidate.X, Y: candidate.Y}
}

// AcceptNearLock is the caller-side post-filter for motion candidates.
// While nothing has been accepted yet, a candidate farther than maxDistance from the locked
// position is treated as noise. Once the trajectory has points the detector is trusted.
func AcceptNearLock(candidate Candidate, locked *Point, trajectoryLen int, maxDistance float64) bool {
	if locked == nil || trajectoryLen > 0 {
		return true
	}
	return euclideanDistance(candidate.Point(), *locked) <= maxDistance
}
