// Package pipeline drives a trace.Session from a frame source at a throttled cadence and hands
// rendered overlays to a sink.
//
// Processing is frame-synchronous: a frame is detected, accumulated and rendered before the next one
// is requested. Frames arriving faster than the cadence allows are dropped, never queued.
package pipeline
