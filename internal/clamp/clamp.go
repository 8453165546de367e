// Package clamp holds the saturation rules shared by every geometry and
// airflow setter in the duct model.
//
// Out-of-range input is never rejected: it is bounded to the nearest legal
// value. All functions are idempotent, clamp(clamp(x)) == clamp(x).
package clamp

import (
	"cmp"
	"math"
)

// Rectangular side and round diameter limits in millimetres
const (
	MinSide     = 100
	MaxSide     = 2000
	MinDiameter = 80
	MaxDiameter = 1600
)

// RoundingFactor is the largest rounding radius as a fraction of the width
const RoundingFactor = 0.6

// Value bounds v to [lo, hi]
func Value[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Width clamps a rectangular width to [100, 2000] mm
func Width(w int) int {
	return Value(w, MinSide, MaxSide)
}

// Height clamps a rectangular height to [100, 2000] mm
func Height(h int) int {
	return Value(h, MinSide, MaxSide)
}

// Diameter clamps a round diameter to [80, 1600] mm
func Diameter(d int) int {
	return Value(d, MinDiameter, MaxDiameter)
}

// AirFlow clamps an airflow in m³/h to be at least min
func AirFlow(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// MaxRounding returns ceil(0.6 * width)
func MaxRounding(width int) int {
	return int(math.Ceil(RoundingFactor * float64(width)))
}

// Rounding clamps a rounding radius to [0, ceil(0.6*width)]
func Rounding(r, width int) int {
	return Value(r, 0, MaxRounding(width))
}

// Percent clamps to [0, 100]
func Percent(p float64) float64 {
	return Value(p, 0, 100)
}
