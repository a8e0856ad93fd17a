package types

import (
	"math"
	"strings"
)

// Direction is the direction of a trend or forecast
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// stableEpsilon absorbs float noise when deriving a direction from a delta
const stableEpsilon = 1e-9

// DirectionFromDelta derives the direction from the sign of delta
func DirectionFromDelta(delta float64) Direction {
	switch {
	case math.IsNaN(delta), math.Abs(delta) <= stableEpsilon:
		return DirectionStable
	case delta > 0:
		return DirectionIncreasing
	default:
		return DirectionDecreasing
	}
}

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	switch d {
	case DirectionIncreasing, DirectionDecreasing, DirectionStable:
		return true
	default:
		return false
	}
}

// NormalizeDirection lowercases s and returns DirectionStable when it is unknown
func NormalizeDirection(s string) Direction {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return DirectionStable
	}
	return d
}

// String returns the string representation of the direction
func (d Direction) String() string {
	return string(d)
}
