// SPDX-License-Identifier: MIT

package bvtree

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Project returns the projection of p onto the mesh surface: the closest
// surface point found by signed-distance queries with a progressively
// growing radius. The search starts at r and multiplies it by 1.5 until a
// cell is hit, so any positive r eventually converges on a non-empty mesh.
// An empty tree returns p unchanged.
func (t *Tree) Project(p r3.Vec, r float64) r3.Vec {
	if t.nnodes == 0 || t.mesh == nil {
		return p
	}

	var (
		d = math.MaxFloat64
		n r3.Vec
	)
	for math.Abs(d) >= Sentinel {
		d, _, n = t.SignedDistance(p, r)
		r *= projectGrowth
	}

	return r3.Sub(p, r3.Scale(d, n))
}
