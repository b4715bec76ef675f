// SPDX-License-Identifier: MIT

package bvtree

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nuaawqf/mimmo/geom"
)

// maxCellVerts sizes the stack scratch used to gather cell vertices; cells
// with more vertices spill to the heap.
const maxCellVerts = 8

// Distance returns the unsigned distance from p to the nearest cell whose
// box lies within r of p, together with that cell's label. When no cell
// qualifies - empty tree, no mesh, or nothing inside the radius - it
// returns (Sentinel, NoCell).
//
// The descent prunes children against their boxes expanded by the current
// search radius, and tightens the radius to the best distance found so far,
// so later siblings are tested against a strictly smaller ball. Ties on
// equal distance resolve to the first cell encountered.
//
// Complexity: O(log n) expected per query on well-shaped meshes.
func (t *Tree) Distance(p r3.Vec, r float64) (float64, int64) {
	if t.nnodes == 0 || t.mesh == nil {
		return Sentinel, NoCell
	}

	live := r
	h, id := t.search(p, 0, &live, Sentinel, NoCell)
	if h > r {
		return Sentinel, NoCell
	}

	return h, id
}

// SignedDistance returns the signed distance from p to the nearest cell
// within r, the cell label, and the unit pseudo-normal pointing from the
// closest surface point toward p (flipped together with the sign). Misses
// return (Sentinel, NoCell, zero vector).
//
// The sign comes from an outward surface normal reconstructed at the
// closest point by barycentric blending of the cell's per-edge normals:
// positive when p lies on the outward side. If p coincides with its
// closest point the pseudo-normal falls back to the blended surface
// normal; no division by zero occurs.
func (t *Tree) SignedDistance(p r3.Vec, r float64) (float64, int64, r3.Vec) {
	if t.nnodes == 0 || t.mesh == nil {
		return Sentinel, NoCell, r3.Vec{}
	}

	live := r
	h, id := t.search(p, 0, &live, Sentinel, NoCell)
	if h > r || id == NoCell {
		return Sentinel, NoCell, r3.Vec{}
	}

	return t.orient(p, id)
}

// search is the shared recursive descent. h is the best distance found so
// far and id its cell; r is the live search radius, tightened in place so
// the caller's remaining children prune against the updated value.
func (t *Tree) search(p r3.Vec, idx int, r *float64, h float64, id int64) (float64, int64) {
	node := &t.nodes[idx]

	if !node.Leaf {
		for _, child := range [2]int{node.LChild, node.RChild} {
			if child == NoChild {
				continue
			}
			if !t.nodes[child].Box.ContainsExpanded(p, *r) {
				continue
			}
			if hc, idc := t.search(p, child, r, h, id); hc < h {
				h, id = hc, idc
				if h < *r {
					*r = h
				}
			}
		}

		return h, id
	}

	var buf [maxCellVerts]r3.Vec
	for i := node.Begin; i < node.End; i++ {
		cell := t.elements[i].Label
		d := t.cellDistance(p, cell, buf[:0])
		if d < h {
			h, id = d, cell
			if h < *r {
				*r = h
			}
		}
	}

	return h, id
}

// cellDistance gathers the cell vertices into scratch and dispatches on the
// vertex count: segments and triangles hit the dedicated kernels, anything
// else falls through to the generic simplex kernel.
func (t *Tree) cellDistance(p r3.Vec, cell int64, scratch []r3.Vec) float64 {
	vs := t.cellVertices(cell, scratch)

	var d float64
	switch len(vs) {
	case 2:
		d, _, _ = geom.DistancePointSegment(p, vs[0], vs[1])
	case 3:
		d, _, _ = geom.DistancePointTriangle(p, vs[0], vs[1], vs[2])
	default:
		d, _, _ = geom.DistancePointSimplex(p, vs)
	}

	return d
}

// cellVertices appends the cell's vertex coordinates to scratch.
func (t *Tree) cellVertices(cell int64, scratch []r3.Vec) []r3.Vec {
	nV := t.mesh.CellVertexCount(cell)
	for i := 0; i < nV; i++ {
		scratch = append(scratch, t.mesh.VertexCoords(t.mesh.CellVertex(cell, i)))
	}

	return scratch
}

// orient recomputes the closest point on the winning cell and signs the
// distance. Runs once per query, at the top frame only.
func (t *Tree) orient(p r3.Vec, cell int64) (float64, int64, r3.Vec) {
	var buf [maxCellVerts]r3.Vec
	vs := t.cellVertices(cell, buf[:0])

	var (
		d      float64
		xp     r3.Vec
		normal r3.Vec
	)
	switch len(vs) {
	case 2:
		var lambda [2]float64
		d, xp, lambda = geom.DistancePointSegment(p, vs[0], vs[1])
		normal = r3.Add(
			r3.Scale(lambda[0], t.mesh.EdgeNormal(cell, 0)),
			r3.Scale(lambda[1], t.mesh.EdgeNormal(cell, 1)),
		)
	case 3:
		var lambda [3]float64
		d, xp, lambda = geom.DistancePointTriangle(p, vs[0], vs[1], vs[2])
		for e := 0; e < 3; e++ {
			normal = r3.Add(normal, r3.Scale(lambda[e], t.mesh.EdgeNormal(cell, e)))
		}
	default:
		// Generic simplex: no barycentric contract; average the edge normals.
		d, xp, _ = geom.DistancePointSimplex(p, vs)
		for e := range vs {
			normal = r3.Add(normal, t.mesh.EdgeNormal(cell, e))
		}
		normal = r3.Scale(1/float64(len(vs)), normal)
	}

	dir := r3.Sub(p, xp)

	s := 1.0
	if r3.Dot(normal, dir) < 0 {
		s = -1
	}

	var n r3.Vec
	if r3.Norm(dir) > 0 {
		n = r3.Scale(s/r3.Norm(dir), dir)
	} else if r3.Norm(normal) > 0 {
		// p sits exactly on the surface: defer to the surface normal.
		n = r3.Unit(normal)
	}

	return s * d, cell, n
}
