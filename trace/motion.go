package trace

import (
	"math"
	"sync/atomic"
)

// motionBlock is a scanned block whose motion exceeded the threshold
type motionBlock struct {
	x          int
	y          int
	motion     float64
	brightness float64
}

// MotionDetector compares consecutive frames and picks the block with the strongest localized change.
type MotionDetector struct {
	params DetectorParams
	// math.Float64bits of current sensitivity. Adjustable from another goroutine, read once per Detect
	sensitivity atomic.Uint64
}

// NewMotionDetectorDefault creates detector with standard parameters and default sensitivity
func NewMotionDetectorDefault() *MotionDetector {
	return NewMotionDetector(DefaultDetectorParams(), DefaultSensitivity)
}

// NewMotionDetector creates detector with given parameters and sensitivity
func NewMotionDetector(params DetectorParams, sensitivity float64) *MotionDetector {
	detector := &MotionDetector{
		params: params.Normalize(),
	}
	detector.SetSensitivity(sensitivity)
	return detector
}

// SetSensitivity updates detection sensitivity. Out of range values are clamped.
// New value is used starting from the next Detect call.
func (detector *MotionDetector) SetSensitivity(sensitivity float64) {
	detector.sensitivity.Store(math.Float64bits(ClampSensitivity(sensitivity)))
}

// Sensitivity returns current detection sensitivity
func (detector *MotionDetector) Sensitivity() float64 {
	return math.Float64frombits(detector.sensitivity.Load())
}

// EffectiveThreshold returns the sensitivity adjusted acceptance bar
func (detector *MotionDetector) EffectiveThreshold() float64 {
	return detector.params.MotionThreshold * (2.0 - detector.Sensitivity())
}

// Params returns detector parameters
func (detector *MotionDetector) Params() DetectorParams {
	return detector.params
}

// Detect returns zero or one ball candidate for the transition previous -> current.
// Missing or malformed frames and dimension mismatch yield no candidate.
// When locked is set the scan is restricted to a square window around it.
func (detector *MotionDetector) Detect(current, previous *Frame, locked *Point) (Candidate, bool) {
	if !current.Valid() || !previous.Valid() || !current.SameSize(previous) {
		return Candidate{}, false
	}
	blockSize := detector.params.BlockSize
	if current.Width < blockSize || current.Height < blockSize {
		return Candidate{}, false
	}
	window := fullWindow(current.Width, current.Height, blockSize)
	if locked != nil {
		window = windowAround(*locked, detector.params.SearchRadius, current.Width, current.Height, blockSize)
	}

	threshold := detector.params.MotionThreshold

	// strongest block, first in scan order on ties
	var best *motionBlock
	for y := window.y0; y <= window.y1; y += blockSize {
		for x := window.x0; x <= window.x1; x += blockSize {
			motion := detector.blockMotion(current, previous, x, y)
			if motion <= threshold || (best != nil && motion <= best.motion) {
				continue
			}
			best = &motionBlock{
				x:          x,
				y:          y,
				motion:     motion,
				brightness: pixelBrightness(current, x+blockSize/2, y+blockSize/2),
			}
		}
	}
	if best == nil {
		return Candidate{}, false
	}

	accepted := best.motion > detector.EffectiveThreshold()
	if !accepted && best.motion > threshold*detector.params.CandidateFactor {
		// strong motion rejected by a strict sensitivity still counts above the fallback bar
		accepted = best.motion > threshold*detector.params.FallbackFactor
	}
	if !accepted {
		return Candidate{}, false
	}
	return detector.toCandidate(current, previous, best), true
}

// blockMotion is mean absolute per-channel difference over subsampled block pixels
func (detector *MotionDetector) blockMotion(current, previous *Frame, x0, y0 int) float64 {
	stride := detector.params.SampleStride
	blockSize := detector.params.BlockSize
	motion := 0.0
	samples := 0
	for dy := 0; dy < blockSize; dy += stride {
		for dx := 0; dx < blockSize; dx += stride {
			motion += pixelDiff(current, previous, x0+dx, y0+dy)
			samples++
		}
	}
	if samples == 0 {
		return 0
	}
	return motion / float64(samples)
}

func (detector *MotionDetector) toCandidate(current, previous *Frame, block *motionBlock) Candidate {
	half := float64(detector.params.BlockSize) / 2.0
	candidate := Candidate{
		X:          float64(block.x) + half,
		Y:          float64(block.y) + half,
		Score:      block.motion,
		Brightness: block.brightness,
	}
	if !detector.params.Refine {
		return candidate
	}
	if refined, ok := detector.refine(current, previous, block); ok {
		candidate.X = refined.X
		candidate.Y = refined.Y
		candidate.Brightness = pixelBrightness(current, int(refined.X), int(refined.Y))
	}
	return candidate
}

// refine locates motion centroid at full resolution in the 3x3 block neighbourhood.
// Pixels that got brighter are preferred: a white ball lands on them in the current frame,
// while the spot it left behind gets darker.
func (detector *MotionDetector) refine(current, previous *Frame, block *motionBlock) (Point, bool) {
	blockSize := detector.params.BlockSize
	x0 := maxInt(0, block.x-blockSize)
	y0 := maxInt(0, block.y-blockSize)
	x1 := minInt(current.Width, block.x+2*blockSize)
	y1 := minInt(current.Height, block.y+2*blockSize)
	noise := detector.params.MotionThreshold * 0.5

	var brightSumX, brightSumY, brightWeight float64
	var diffSumX, diffSumY, diffWeight float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			diff := pixelDiff(current, previous, x, y) - noise
			if diff <= 0 {
				continue
			}
			cx := float64(x) + 0.5
			cy := float64(y) + 0.5
			diffSumX += cx * diff
			diffSumY += cy * diff
			diffWeight += diff
			gain := pixelBrightness(current, x, y) - pixelBrightness(previous, x, y)
			if gain > 0 {
				brightSumX += cx * gain
				brightSumY += cy * gain
				brightWeight += gain
			}
		}
	}
	if brightWeight > 0 {
		return Point{X: brightSumX / brightWeight, Y: brightSumY / brightWeight}, true
	}
	if diffWeight > 0 {
		return Point{X: diffSumX / diffWeight, Y: diffSumY / diffWeight}, true
	}
	return Point{}, false
}

func pixelDiff(current, previous *Frame, x, y int) float64 {
	idx := current.offset(x, y)
	dr := absInt(int(current.Pix[idx]) - int(previous.Pix[idx]))
	dg := absInt(int(current.Pix[idx+1]) - int(previous.Pix[idx+1]))
	db := absInt(int(current.Pix[idx+2]) - int(previous.Pix[idx+2]))
	return float64(dr+dg+db) / 3.0
}

func pixelBrightness(frame *Frame, x, y int) float64 {
	x = clampInt(x, 0, frame.Width-1)
	y = clampInt(y, 0, frame.Height-1)
	r, g, b := frame.rgb(x, y)
	return float64(r+g+b) / 3.0
}
