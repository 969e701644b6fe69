package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/LdDl/golf-trace/render"
	"github.com/LdDl/golf-trace/trace"
	"github.com/pkg/errors"
)

// DefaultIdleWait is pause before polling a source again after it had nothing ready
const DefaultIdleWait = 5 * time.Millisecond

var (
	// ErrSessionStopped is returned when a stopped runner is asked to run or stop again
	ErrSessionStopped = errors.New("session stopped")
)

// FrameSource supplies frames in presentation order. io.EOF ends the stream.
// A nil frame with nil error means nothing is ready on this tick: the runner waits for the idle
// interval before asking again, so Next may return immediately.
type FrameSource interface {
	Next(ctx context.Context) (*trace.Frame, error)
}

// FrameSink receives rendered overlay of every processed frame. Image is reused after Write returns.
type FrameSink interface {
	Write(img *image.RGBA, timestampMillis int64) error
}

// FrameObserver is notified after every processed frame
type FrameObserver func(frame *trace.Frame, result trace.FrameResult)

// Stats counts frames seen by the runner
type Stats struct {
	Received  uint64
	Processed uint64
	// Dropped frames were skipped by the cadence throttle
	Dropped  uint64
	Detected uint64
	Accepted uint64
	// Resets counts sessions restarted because frame dimensions changed
	Resets uint64
}

// Runner owns the processing loop of a single capture
type Runner struct {
	mu       sync.Mutex
	source   FrameSource
	session  *trace.Session
	renderer *render.TrailRenderer
	sink     FrameSink
	observer FrameObserver
	cadence  Cadence
	throttle *throttle
	idleWait time.Duration
	logger   *slog.Logger

	stats         Stats
	preRollFrames int
	holdFrames    int
	stopped       bool
	capture       trace.Capture
	markerColor   color.NRGBA
}

// Option configures Runner
type Option func(*Runner)

// WithLogger sets structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(runner *Runner) {
		if logger != nil {
			runner.logger = logger
		}
	}
}

// WithSink sets overlay consumer. Without sink nothing is rendered.
func WithSink(sink FrameSink) Option {
	return func(runner *Runner) {
		runner.sink = sink
	}
}

// WithRenderer sets trail renderer
func WithRenderer(renderer *render.TrailRenderer) Option {
	return func(runner *Runner) {
		if renderer != nil {
			runner.renderer = renderer
		}
	}
}

// WithCadence sets processing rate and pre-roll timing
func WithCadence(cadence Cadence) Option {
	return func(runner *Runner) {
		runner.cadence = cadence.Normalize()
	}
}

// WithIdleWait sets pause between polls of a source that had no frame ready. Non-positive values keep the default.
func WithIdleWait(wait time.Duration) Option {
	return func(runner *Runner) {
		if wait > 0 {
			runner.idleWait = wait
		}
	}
}

// WithObserver sets per-frame callback. It runs inside the processing step and must not call Stop.
func WithObserver(observer FrameObserver) Option {
	return func(runner *Runner) {
		runner.observer = observer
	}
}

// NewRunner creates runner for the session fed by the source
func NewRunner(source FrameSource, session *trace.Session, options ...Option) *Runner {
	runner := &Runner{
		source:      source,
		session:     session,
		renderer:    render.NewTrailRendererDefault(),
		cadence:     DefaultCadence(),
		idleWait:    DefaultIdleWait,
		logger:      slog.Default(),
		markerColor: render.Yellow,
	}
	for _, option := range options {
		option(runner)
	}
	runner.throttle = newThrottle(runner.cadence)
	return runner
}

// Run processes frames until the source ends, ctx is cancelled or Stop is called, then returns the
// frozen capture. Cancellation is a normal way to finish and is not reported as an error.
func (runner *Runner) Run(ctx context.Context) (trace.Capture, error) {
	runner.mu.Lock()
	if runner.stopped {
		runner.mu.Unlock()
		return trace.Capture{}, ErrSessionStopped
	}
	err := runner.begin()
	runner.mu.Unlock()
	if err != nil {
		return trace.Capture{}, errors.Wrap(err, "Can't start session")
	}

	runner.logger.Info("pipeline: started",
		"session", runner.session.ID().String(),
		"max_fps", runner.cadence.MaxFPS,
		"skip_preroll", runner.cadence.SkipPreRoll,
	)
	for {
		if ctx.Err() != nil {
			runner.logger.Debug("pipeline: context cancelled")
			return runner.finish(nil)
		}
		frame, err := runner.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				runner.logger.Info("pipeline: end of stream")
				return runner.finish(nil)
			}
			if ctx.Err() != nil {
				return runner.finish(nil)
			}
			return runner.finish(errors.Wrap(err, "Can't read frame"))
		}
		stop, err := runner.step(frame)
		if err != nil {
			return runner.finish(err)
		}
		if stop {
			return runner.capturedResult()
		}
		if frame == nil {
			runner.idle(ctx)
		}
	}
}

// idle waits before the next poll of a source that had nothing ready. Cancellation cuts the wait short.
func (runner *Runner) idle(ctx context.Context) {
	timer := time.NewTimer(runner.idleWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Stop halts processing synchronously: once it returns no frame is processed any more and the
// previous-frame buffer is released.
func (runner *Runner) Stop() (trace.Capture, error) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.stopped {
		return trace.Capture{}, ErrSessionStopped
	}
	return runner.stopLocked()
}

// Stats returns snapshot of frame counters
func (runner *Runner) Stats() Stats {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.stats
}

// SetSensitivity changes detection sensitivity, effective from the next processed frame
func (runner *Runner) SetSensitivity(sensitivity float64) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.session.SetSensitivity(sensitivity)
}

// SetStyle changes trail style, effective from the next processed frame
func (runner *Runner) SetStyle(style render.Style) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.renderer.SetStyle(style)
}

func (runner *Runner) finish(cause error) (trace.Capture, error) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.stopped {
		return runner.capture, cause
	}
	capture, err := runner.stopLocked()
	if cause != nil {
		return capture, cause
	}
	return capture, err
}

func (runner *Runner) capturedResult() (trace.Capture, error) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.capture, nil
}

func (runner *Runner) stopLocked() (trace.Capture, error) {
	runner.stopped = true
	capture, err := runner.session.Stop()
	if err != nil {
		if !errors.Is(err, trace.ErrInvalidTransition) {
			return trace.Capture{}, errors.Wrap(err, "Can't stop session")
		}
		// nothing was captured: session already idle
		capture = trace.Capture{ID: runner.session.ID()}
	}
	runner.capture = capture
	runner.logger.Info("pipeline: stopped",
		"session", capture.ID.String(),
		"points", capture.Trajectory.Len(),
		"processed", runner.stats.Processed,
		"dropped", runner.stats.Dropped,
	)
	return capture, nil
}

func (runner *Runner) begin() error {
	runner.preRollFrames = 0
	runner.holdFrames = 0
	if runner.cadence.SkipPreRoll {
		return runner.session.StartTracking()
	}
	return runner.session.BeginPreDetect()
}

// step processes one frame under the runner lock. It reports true when the runner was stopped.
func (runner *Runner) step(frame *trace.Frame) (bool, error) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.stopped {
		return true, nil
	}
	if frame == nil {
		return false, nil
	}
	runner.stats.Received++
	if !runner.throttle.admit(frame.TimestampMillis) {
		runner.stats.Dropped++
		runner.logger.Debug("pipeline: frame dropped", "ts", frame.TimestampMillis)
		return false, nil
	}
	runner.stats.Processed++

	result := runner.session.ProcessFrame(frame)
	if result.Detected {
		runner.stats.Detected++
	}
	if result.Accepted {
		runner.stats.Accepted++
	}
	if result.Reset {
		runner.stats.Resets++
		if err := runner.begin(); err != nil {
			return false, errors.Wrap(err, "Can't restart session after reset")
		}
	}
	if err := runner.advance(result); err != nil {
		return false, err
	}
	result.State = runner.session.State()

	if runner.sink != nil {
		if err := runner.draw(frame, result); err != nil {
			return false, err
		}
	}
	if runner.observer != nil {
		runner.observer(frame, result)
	}
	return false, nil
}

// advance moves the session along pre-roll timing
func (runner *Runner) advance(result trace.FrameResult) error {
	switch runner.session.State() {
	case trace.StatePreDetecting:
		runner.preRollFrames++
		if runner.cadence.PreRollFrames > 0 && runner.preRollFrames >= runner.cadence.PreRollFrames {
			runner.logger.Info("pipeline: no resting ball found, tracking whole frame",
				"session", runner.session.ID().String(),
				"frames", runner.preRollFrames,
			)
			return errors.Wrap(runner.session.StartTracking(), "Can't start tracking")
		}
	case trace.StateLocked:
		if runner.holdFrames >= runner.cadence.LockHoldFrames {
			return errors.Wrap(runner.session.StartTracking(), "Can't start tracking")
		}
		runner.holdFrames++
	}
	return nil
}

func (runner *Runner) draw(frame *trace.Frame, result trace.FrameResult) error {
	surface := render.NewRasterSurfaceFromFrame(frame)
	style := runner.renderer.Style()
	switch result.State {
	case trace.StateLocked, trace.StatePreDetecting:
		if locked := runner.session.Locked(); locked != nil {
			render.DrawLockIndicator(surface, *locked, style.Color)
		}
	case trace.StateTracking:
		smoothed, err := runner.session.Smoothed()
		if err != nil {
			runner.logger.Warn("pipeline: smoothing failed, drawing raw trajectory", "error", err)
		}
		runner.renderer.Render(surface, smoothed)
		if result.Accepted {
			render.DrawBallMarker(surface, result.Candidate.Point(), runner.markerColor)
		}
	}
	render.DrawLabel(surface.Image(), 8, 8, runner.label(result), render.White)
	err := runner.sink.Write(surface.Image(), frame.TimestampMillis)
	if err != nil {
		return errors.Wrap(err, "Can't write overlay")
	}
	return nil
}

func (runner *Runner) label(result trace.FrameResult) string {
	if result.State == trace.StateTracking {
		return fmt.Sprintf("%s: %d pts", result.State, runner.session.Trajectory().Len())
	}
	return result.State.String()
}
