package trace

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidTransition is returned when a state change is requested from a state that does not allow it
	ErrInvalidTransition = errors.New("invalid session state transition")
)

// State is a capture session phase
type State uint16

const (
	// StateIdle - no processing, empty trajectory, no lock
	StateIdle State = iota
	// StatePreDetecting - stationary locator runs on every frame
	StatePreDetecting
	// StateLocked - ball position is known, waiting for tracking to start
	StateLocked
	// StateTracking - motion detector runs on every frame and trajectory grows
	StateTracking
	// StateFinished - trajectory is frozen. Session returns to idle right after hand-off
	StateFinished
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StatePreDetecting:
		return "pre-detecting"
	case StateLocked:
		return "locked"
	case StateTracking:
		return "tracking"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// FrameResult describes what happened to a single processed frame
type FrameResult struct {
	State State
	// Candidate is valid when Detected is true
	Candidate Candidate
	// Detected is true when a detector produced a candidate for this frame
	Detected bool
	// Accepted is true when the candidate was appended to the trajectory
	Accepted bool
	// LockedNow is true when the stationary ball was locked on this frame
	LockedNow bool
	// Reset is true when frame dimensions changed and the session was reset
	Reset bool
}

// Capture is the frozen result of a finished session, handed to summarizers
type Capture struct {
	ID               uuid.UUID
	Trajectory       Trajectory
	Locked           *Point
	Width            int
	Height           int
	StartedAtMillis  int64
	FinishedAtMillis int64
}

// Session owns every piece of mutable state of a capture: lock, previous frame and trajectory.
// It is not safe for concurrent use: frames must be processed one at a time.
type Session struct {
	id         uuid.UUID
	state      State
	params     DetectorParams
	locator    *StationaryLocator
	detector   *MotionDetector
	acc        *Accumulator
	locked     *Point
	previous   *Frame
	width      int
	height     int
	retention  int64
	startedAt  int64
	lastSeenAt int64
	logger     *slog.Logger
}

// SessionOption configures Session
type SessionOption func(*Session)

// WithLogger sets structured logger
func WithLogger(logger *slog.Logger) SessionOption {
	return func(session *Session) {
		if logger != nil {
			session.logger = logger
		}
	}
}

// WithSmoother sets smoothing strategy used for rendering
func WithSmoother(smoother Smoother) SessionOption {
	return func(session *Session) {
		session.acc.SetSmoother(smoother)
	}
}

// WithSensitivity sets initial detection sensitivity
func WithSensitivity(sensitivity float64) SessionOption {
	return func(session *Session) {
		session.detector.SetSensitivity(sensitivity)
	}
}

// WithRetention sets trajectory retention window in milliseconds
func WithRetention(windowMillis int64) SessionOption {
	return func(session *Session) {
		session.retention = ClampRetention(windowMillis)
	}
}

// NewSessionDefault creates session with standard detector parameters
func NewSessionDefault(options ...SessionOption) *Session {
	return NewSession(DefaultDetectorParams(), options...)
}

// NewSession creates idle session
func NewSession(params DetectorParams, options ...SessionOption) *Session {
	params = params.Normalize()
	session := &Session{
		id:        uuid.New(),
		state:     StateIdle,
		params:    params,
		locator:   NewStationaryLocator(params),
		detector:  NewMotionDetector(params, DefaultSensitivity),
		acc:       NewAccumulatorDefault(),
		retention: DefaultRetentionMillis,
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(session)
	}
	return session
}

// ID returns identifier of current capture
func (session *Session) ID() uuid.UUID {
	return session.id
}

// State returns current phase
func (session *Session) State() State {
	return session.state
}

// Locked returns copy of locked ball position or nil
func (session *Session) Locked() *Point {
	if session.locked == nil {
		return nil
	}
	locked := *session.locked
	return &locked
}

// Trajectory returns copy of raw accumulated points
func (session *Session) Trajectory() Trajectory {
	return session.acc.Raw()
}

// Smoothed returns smoothed copy of the trajectory. On smoothing failure raw copy is returned with the error.
func (session *Session) Smoothed() (Trajectory, error) {
	return session.acc.Smoothed()
}

// SetSensitivity changes detection sensitivity, effective from the next processed frame
func (session *Session) SetSensitivity(sensitivity float64) {
	session.detector.SetSensitivity(sensitivity)
}

// Sensitivity returns current detection sensitivity
func (session *Session) Sensitivity() float64 {
	return session.detector.Sensitivity()
}

// Params returns normalized detector parameters
func (session *Session) Params() DetectorParams {
	return session.params
}

// Dimensions returns frame size seen by the session, zero before the first frame
func (session *Session) Dimensions() (int, int) {
	return session.width, session.height
}

// BeginPreDetect starts searching for stationary ball: Idle -> PreDetecting
func (session *Session) BeginPreDetect() error {
	if session.state != StateIdle {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", session.state, StatePreDetecting)
	}
	session.newCapture()
	session.setState(StatePreDetecting)
	return nil
}

// Lock sets ball position manually: PreDetecting -> Locked
func (session *Session) Lock(position Point) error {
	if session.state != StatePreDetecting {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", session.state, StateLocked)
	}
	session.lock(position)
	return nil
}

// StartTracking starts motion detection: Idle, PreDetecting or Locked -> Tracking.
// Tracking without lock scans the whole frame.
func (session *Session) StartTracking() error {
	switch session.state {
	case StateIdle:
		session.newCapture()
	case StatePreDetecting, StateLocked:
	default:
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", session.state, StateTracking)
	}
	session.setState(StateTracking)
	return nil
}

// Stop freezes the trajectory and returns it, then resets session to Idle.
// Previous frame buffer is released.
func (session *Session) Stop() (Capture, error) {
	if session.state == StateIdle || session.state == StateFinished {
		return Capture{}, errors.Wrapf(ErrInvalidTransition, "%s -> %s", session.state, StateFinished)
	}
	session.setState(StateFinished)
	capture := Capture{
		ID:               session.id,
		Trajectory:       session.acc.Raw(),
		Locked:           session.Locked(),
		Width:            session.width,
		Height:           session.height,
		StartedAtMillis:  session.startedAt,
		FinishedAtMillis: session.lastSeenAt,
	}
	session.logger.Info("session: capture finished",
		"session", session.id.String(),
		"points", capture.Trajectory.Len(),
	)
	session.Reset()
	return capture, nil
}

// Reset clears trajectory, lock and previous frame and returns to Idle
func (session *Session) Reset() {
	session.acc.Reset()
	session.locked = nil
	session.previous = nil
	session.width = 0
	session.height = 0
	session.startedAt = 0
	session.lastSeenAt = 0
	session.setState(StateIdle)
}

// ProcessFrame runs the detector matching the current phase on the frame.
// Nil or malformed frame means nothing to process on this tick.
func (session *Session) ProcessFrame(frame *Frame) FrameResult {
	if !frame.Valid() || session.state == StateIdle || session.state == StateFinished {
		return FrameResult{State: session.state}
	}
	if session.width != 0 && (frame.Width != session.width || frame.Height != session.height) {
		session.logger.Warn("session: frame dimensions changed, resetting",
			"session", session.id.String(),
			"was", []int{session.width, session.height},
			"now", []int{frame.Width, frame.Height},
		)
		session.Reset()
		return FrameResult{State: session.state, Reset: true}
	}
	if session.width == 0 {
		session.width = frame.Width
		session.height = frame.Height
		session.startedAt = frame.TimestampMillis
	}
	session.lastSeenAt = frame.TimestampMillis

	result := FrameResult{}
	switch session.state {
	case StatePreDetecting:
		if candidate, ok := session.locator.Locate(frame); ok {
			result.Candidate = candidate
			result.Detected = true
			result.LockedNow = true
			session.lock(candidate.Point())
		}
	case StateLocked:
		// waiting for tracking to start
	case StateTracking:
		result = session.track(frame)
	}
	session.retainPrevious(frame)
	result.State = session.state
	return result
}

func (session *Session) track(frame *Frame) FrameResult {
	result := FrameResult{}
	candidate, ok := session.detector.Detect(frame, session.previous, session.locked)
	if ok {
		result.Candidate = candidate
		result.Detected = true
		if AcceptNearLock(candidate, session.locked, session.acc.Len(), session.params.LockRejectDistance) {
			err := session.acc.Append(TrajectoryPoint{X: candidate.X, Y: candidate.Y, TimestampMillis: frame.TimestampMillis})
			if err != nil {
				session.logger.Debug("session: point skipped", "session", session.id.String(), "error", err)
			} else {
				result.Accepted = true
			}
		} else {
			session.logger.Debug("session: candidate too far from locked position",
				"session", session.id.String(),
				"x", candidate.X,
				"y", candidate.Y,
			)
		}
	}
	session.acc.EvictOlderThan(frame.TimestampMillis, session.retention)
	return result
}

// retainPrevious copies frame into the previous-frame buffer, reusing allocation when possible
func (session *Session) retainPrevious(frame *Frame) {
	if session.previous != nil && session.previous.SameSize(frame) {
		copy(session.previous.Pix, frame.Pix)
		session.previous.TimestampMillis = frame.TimestampMillis
		return
	}
	session.previous = frame.Clone()
}

func (session *Session) lock(position Point) {
	session.locked = &Point{X: position.X, Y: position.Y}
	session.logger.Info("session: ball locked",
		"session", session.id.String(),
		"x", position.X,
		"y", position.Y,
	)
	session.setState(StateLocked)
}

func (session *Session) newCapture() {
	session.Reset()
	session.id = uuid.New()
}

func (session *Session) setState(state State) {
	if session.state == state {
		return
	}
	session.logger.Debug("session: state changed",
		"session", session.id.String(),
		"from", session.state.String(),
		"to", state.String(),
	)
	session.state = state
}
