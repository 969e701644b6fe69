package trace

import "math"

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// clampFloat64 bounds v into [lo, hi]. NaN collapses to fallback.
func clampFloat64(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return maxFloat64(lo, minFloat64(hi, v))
}

func clampInt(v, lo, hi int) int {
	return maxInt(lo, minInt(hi, v))
}
