// Package trace locates a small, fast, bright ball in a stream of RGBA frames and assembles
// accepted positions into a time-ordered trajectory.
//
// Pipeline per capture session:
//
//	Idle -> PreDetecting (StationaryLocator) -> Locked -> Tracking (MotionDetector + Accumulator) -> Finished
//
// The package never draws: overlays are produced by package render from the smoothed trajectory.
package trace
