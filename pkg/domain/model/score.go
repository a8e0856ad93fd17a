package model

import "math"

// ClampScore limits v to the 0-100 range used by every score, likelihood and
// confidence field. NaN becomes 0.
func ClampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
