// SPDX-License-Identifier: MIT

// distance.go - point-to-simplex kernels with barycentric output.
//
// Contracts shared by every kernel:
//   - The returned distance is the minimum Euclidean distance, always >= 0.
//   - The returned point is the closest point ON the simplex.
//   - Barycentric coordinates are non-negative and sum to 1; they weight the
//     simplex vertices and are consumed by signed-distance orientation.

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RegionInterior marks a closest point that is not attributable to a fan
// sub-triangle of a general simplex (segments, triangles, empty input).
const RegionInterior = -1

// DistancePointSegment returns the distance from p to the segment [a,b],
// the closest point on the segment, and the barycentric pair (lambda[0] for
// a, lambda[1] for b) with lambda[0]+lambda[1] == 1.
//
// A zero-length segment degenerates to vertex a.
//
// Complexity: O(1).
func DistancePointSegment(p, a, b r3.Vec) (float64, r3.Vec, [2]float64) {
	ab := r3.Sub(b, a)

	var t float64
	if den := r3.Norm2(ab); den > 0 {
		t = clamp01(r3.Dot(r3.Sub(p, a), ab) / den)
	}

	xp := r3.Add(a, r3.Scale(t, ab))

	return r3.Norm(r3.Sub(p, xp)), xp, [2]float64{1 - t, t}
}

// DistancePointTriangle returns the distance from p to triangle (a,b,c),
// the closest point on the triangle, and barycentric coordinates with
// respect to (a,b,c): sum(lambda) == 1, lambda[i] >= 0.
//
// The closest point is located by Voronoi-region classification: vertex
// regions first, then edge regions, finally the interior. A degenerate
// (zero-area) triangle is handled edge-wise and never yields NaN.
//
// Complexity: O(1).
func DistancePointTriangle(p, a, b, c r3.Vec) (float64, r3.Vec, [3]float64) {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)

	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		// vertex region a
		return r3.Norm(r3.Sub(p, a)), a, [3]float64{1, 0, 0}
	}

	bp := r3.Sub(p, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		// vertex region b
		return r3.Norm(r3.Sub(p, b)), b, [3]float64{0, 1, 0}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		// edge region ab
		v := safeDiv(d1, d1-d3)
		xp := r3.Add(a, r3.Scale(v, ab))

		return r3.Norm(r3.Sub(p, xp)), xp, [3]float64{1 - v, v, 0}
	}

	cp := r3.Sub(p, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		// vertex region c
		return r3.Norm(r3.Sub(p, c)), c, [3]float64{0, 0, 1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		// edge region ac
		w := safeDiv(d2, d2-d6)
		xp := r3.Add(a, r3.Scale(w, ac))

		return r3.Norm(r3.Sub(p, xp)), xp, [3]float64{1 - w, 0, w}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		// edge region bc
		w := safeDiv(d4-d3, (d4-d3)+(d5-d6))
		xp := r3.Add(b, r3.Scale(w, r3.Sub(c, b)))

		return r3.Norm(r3.Sub(p, xp)), xp, [3]float64{0, 1 - w, w}
	}

	den := va + vb + vc
	if den <= 0 {
		// Degenerate triangle: every proper region test failed. Fall back to
		// the best of the three edges and lift the pair into triangle space.
		return degenerateTriangle(p, a, b, c)
	}

	v := vb / den
	w := vc / den
	xp := r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))

	return r3.Norm(r3.Sub(p, xp)), xp, [3]float64{1 - v - w, v, w}
}

// DistancePointSimplex returns the distance from p to the simplex spanned
// by vs, the closest point on it, and a region flag:
//   - RegionInterior for segments, triangles and empty input;
//   - for a general (nV > 3) simplex, the index i of the winning fan
//     triangle (vs[0], vs[i+1], vs[i+2]).
//
// Vertex counts outside {2,3} are fan-decomposed around vs[0]; a single
// vertex degenerates to point distance. This is the dispatch fallback for
// unsupported cell arities and is never fatal.
//
// Complexity: O(nV).
func DistancePointSimplex(p r3.Vec, vs []r3.Vec) (float64, r3.Vec, int) {
	switch len(vs) {
	case 0:
		return math.Inf(1), p, RegionInterior
	case 1:
		return r3.Norm(r3.Sub(p, vs[0])), vs[0], RegionInterior
	case 2:
		d, xp, _ := DistancePointSegment(p, vs[0], vs[1])

		return d, xp, RegionInterior
	case 3:
		d, xp, _ := DistancePointTriangle(p, vs[0], vs[1], vs[2])

		return d, xp, RegionInterior
	}

	best := math.Inf(1)
	bestXP := vs[0]
	region := RegionInterior
	for i := 0; i+2 < len(vs); i++ {
		d, xp, _ := DistancePointTriangle(p, vs[0], vs[i+1], vs[i+2])
		if d < best {
			best, bestXP, region = d, xp, i
		}
	}

	return best, bestXP, region
}

// degenerateTriangle resolves a zero-area triangle by the closest of its
// three edges, remapping the segment barycentrics onto the triangle's.
func degenerateTriangle(p, a, b, c r3.Vec) (float64, r3.Vec, [3]float64) {
	dab, xab, lab := DistancePointSegment(p, a, b)
	dac, xac, lac := DistancePointSegment(p, a, c)
	dbc, xbc, lbc := DistancePointSegment(p, b, c)

	d, xp, lambda := dab, xab, [3]float64{lab[0], lab[1], 0}
	if dac < d {
		d, xp, lambda = dac, xac, [3]float64{lac[0], 0, lac[1]}
	}
	if dbc < d {
		d, xp, lambda = dbc, xbc, [3]float64{0, lbc[0], lbc[1]}
	}

	return d, xp, lambda
}

// safeDiv divides num by den, returning 0 for a vanishing denominator.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
