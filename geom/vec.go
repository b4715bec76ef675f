// SPDX-License-Identifier: MIT

package geom

import "gonum.org/v1/gonum/spatial/r3"

// Axis indices for Component / SetComponent and for split-axis selection.
const (
	AxisX = iota
	AxisY
	AxisZ

	// Dims is the spatial dimensionality of every kernel in this package.
	Dims = 3
)

// Component returns the axis-th coordinate of v.
// Axis must be AxisX, AxisY or AxisZ; any other value yields the Z coordinate.
func Component(v r3.Vec, axis int) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// SetComponent writes val into the axis-th coordinate of v.
func SetComponent(v *r3.Vec, axis int, val float64) {
	switch axis {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	default:
		v.Z = val
	}
}

// clamp01 confines t to the closed interval [0,1].
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
