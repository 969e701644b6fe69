package trace

import "strings"

const (
	// MinSensitivity is the least permissive detection sensitivity
	MinSensitivity = 0.3
	// MaxSensitivity is the most permissive detection sensitivity
	MaxSensitivity = 1.0
	// DefaultSensitivity is used when sensitivity is not configured or invalid
	DefaultSensitivity = 0.7
)

// Preset names accepted by PresetParams
const (
	PresetStandard = "standard"
	PresetMobile   = "mobile"
	PresetPrecise  = "precise"
)

// ClampSensitivity bounds sensitivity into [MinSensitivity, MaxSensitivity]. NaN becomes DefaultSensitivity.
func ClampSensitivity(sensitivity float64) float64 {
	return clampFloat64(sensitivity, MinSensitivity, MaxSensitivity, DefaultSensitivity)
}

// DetectorParams holds every tunable constant of the stationary locator and the motion detector.
type DetectorParams struct {
	// Stationary locator: side of a square probe cell in pixels. Disk radius is half of it
	CellSize int
	// Stationary locator: pixel brightness floor for "white-like" pixels
	WhiteFloor float64
	// Stationary locator: max |R-G| and |G-B| for "white-like" pixels
	ChromaCeiling int
	// Stationary locator: score weights
	BrightnessWeight float64
	WhiteRatioWeight float64
	// Stationary locator: acceptance floors for mean brightness and white ratio of a cell
	BrightnessFloor float64
	WhiteRatioFloor float64

	// Motion detector: side of a square block in pixels
	BlockSize int
	// Motion detector: pixel subsampling stride inside a block
	SampleStride int
	// Motion detector: base motion threshold (mean absolute channel difference)
	MotionThreshold float64
	// Motion detector: blocks above MotionThreshold*CandidateFactor are kept as fallback candidates
	CandidateFactor float64
	// Motion detector: fallback candidate must exceed MotionThreshold*FallbackFactor
	FallbackFactor float64
	// Motion detector: half-side of the scan window around locked position
	SearchRadius float64
	// Motion detector: refine accepted block to motion-weighted centroid
	Refine bool

	// Post-filter: max distance from locked position while trajectory is empty
	LockRejectDistance float64
}

// DefaultDetectorParams returns the standard preset
func DefaultDetectorParams() DetectorParams {
	return DetectorParams{
		CellSize:           16,
		WhiteFloor:         180,
		ChromaCeiling:      30,
		BrightnessWeight:   0.6,
		WhiteRatioWeight:   200,
		BrightnessFloor:    150,
		WhiteRatioFloor:    0.3,
		BlockSize:          12,
		SampleStride:       2,
		MotionThreshold:    12,
		CandidateFactor:    1.5,
		FallbackFactor:     0.8,
		SearchRadius:       200,
		Refine:             true,
		LockRejectDistance: 500,
	}
}

// MobileDetectorParams trades precision for speed on small devices
func MobileDetectorParams() DetectorParams {
	params := DefaultDetectorParams()
	params.CellSize = 20
	params.BlockSize = 16
	params.SampleStride = 3
	params.SearchRadius = 250
	return params
}

// PreciseDetectorParams scans with smaller cells and without subsampling
func PreciseDetectorParams() DetectorParams {
	params := DefaultDetectorParams()
	params.CellSize = 12
	params.WhiteFloor = 150
	params.BrightnessWeight = 0.3
	params.BrightnessFloor = 130
	params.WhiteRatioFloor = 0.2
	params.SampleStride = 1
	params.SearchRadius = 300
	return params
}

// PresetParams returns parameters for a named preset. Unknown names fall back to the standard one.
func PresetParams(name string) DetectorParams {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetMobile:
		return MobileDetectorParams()
	case PresetPrecise:
		return PreciseDetectorParams()
	default:
		return DefaultDetectorParams()
	}
}

// Normalize clamps every value into its supported range
func (params DetectorParams) Normalize() DetectorParams {
	def := DefaultDetectorParams()
	params.CellSize = clampInt(params.CellSize, 4, 64)
	params.WhiteFloor = clampFloat64(params.WhiteFloor, 0, 255, def.WhiteFloor)
	params.ChromaCeiling = clampInt(params.ChromaCeiling, 0, 255)
	params.BrightnessWeight = clampFloat64(params.BrightnessWeight, 0, 10, def.BrightnessWeight)
	params.WhiteRatioWeight = clampFloat64(params.WhiteRatioWeight, 0, 1000, def.WhiteRatioWeight)
	params.BrightnessFloor = clampFloat64(params.BrightnessFloor, 0, 255, def.BrightnessFloor)
	params.WhiteRatioFloor = clampFloat64(params.WhiteRatioFloor, 0, 1, def.WhiteRatioFloor)
	params.BlockSize = clampInt(params.BlockSize, 4, 64)
	params.SampleStride = clampInt(params.SampleStride, 1, params.BlockSize)
	params.MotionThreshold = clampFloat64(params.MotionThreshold, 1, 255, def.MotionThreshold)
	params.CandidateFactor = clampFloat64(params.CandidateFactor, 1, 3, def.CandidateFactor)
	params.FallbackFactor = clampFloat64(params.FallbackFactor, 0.1, 1, def.FallbackFactor)
	params.SearchRadius = clampFloat64(params.SearchRadius, float64(params.BlockSize), 10000, def.SearchRadius)
	params.LockRejectDistance = clampFloat64(params.LockRejectDistance, 0, 100000, def.LockRejectDistance)
	return params
}
