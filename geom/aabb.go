// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// boxInit is the magnitude used to initialize an empty box: Min starts at
// +boxInit and Max at -boxInit on every axis, so the first Extend wins.
const boxInit = 1.0e18

// AABB is an axis-aligned bounding box described by its extreme corners.
// The zero value is NOT a valid empty box; use Empty().
type AABB struct {
	Min r3.Vec
	Max r3.Vec
}

// Empty returns an inverted box that contains no point. Extending it with
// any point produces the degenerate box around that point.
func Empty() AABB {
	return AABB{
		Min: r3.Vec{X: boxInit, Y: boxInit, Z: boxInit},
		Max: r3.Vec{X: -boxInit, Y: -boxInit, Z: -boxInit},
	}
}

// Extend grows the box in place so that it contains p.
func (b *AABB) Extend(p r3.Vec) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Inflate returns a copy of b grown by t on both sides of every axis.
// Negative t shrinks the box; callers are responsible for keeping it valid.
func (b AABB) Inflate(t float64) AABB {
	off := r3.Vec{X: t, Y: t, Z: t}

	return AABB{Min: r3.Sub(b.Min, off), Max: r3.Add(b.Max, off)}
}

// ContainsExpanded reports whether p lies inside the box grown by r on both
// sides of every axis. Bounds are inclusive. This is the pruning predicate
// of the bv-tree descent: r is the current search radius.
//
// Complexity: O(1).
func (b AABB) ContainsExpanded(p r3.Vec, r float64) bool {
	if p.X < b.Min.X-r || p.X > b.Max.X+r {
		return false
	}
	if p.Y < b.Min.Y-r || p.Y > b.Max.Y+r {
		return false
	}
	if p.Z < b.Min.Z-r || p.Z > b.Max.Z+r {
		return false
	}

	return true
}

// Overlaps reports whether b and o intersect. Touching faces count as an
// overlap (inclusive comparison on every axis).
//
// Complexity: O(1).
func (b AABB) Overlaps(o AABB) bool {
	if b.Max.X < o.Min.X || o.Max.X < b.Min.X {
		return false
	}
	if b.Max.Y < o.Min.Y || o.Max.Y < b.Min.Y {
		return false
	}
	if b.Max.Z < o.Min.Z || o.Max.Z < b.Min.Z {
		return false
	}

	return true
}
