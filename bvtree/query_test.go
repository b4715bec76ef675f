// Package bvtree_test: query engine coverage.
// Focus:
//  1. Canonical scenarios: single triangle, radius miss, disjoint patches,
//     segment meshes, closed cube (signed distance).
//  2. Laws: exhaustive-search equivalence, radius monotonicity, projection
//     identity and idempotence, sign consistency.
package bvtree_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nuaawqf/mimmo/bvtree"
	"github.com/nuaawqf/mimmo/geom"
	"github.com/nuaawqf/mimmo/mesh"
)

// wideOpen is a search radius below the sentinel but above any distance in
// these scenes, so it behaves as r = infinity.
const wideOpen = 1.0e17

// bruteDistance scans every cell of the mesh with the raw kernels,
// bypassing the tree. Time: O(cells).
func bruteDistance(m mesh.Provider, p r3.Vec) (float64, int64) {
	best := math.Inf(1)
	bestID := bvtree.NoCell
	for _, cell := range m.Cells() {
		nV := m.CellVertexCount(cell)
		vs := make([]r3.Vec, nV)
		for i := 0; i < nV; i++ {
			vs[i] = m.VertexCoords(m.CellVertex(cell, i))
		}
		d, _, _ := geom.DistancePointSimplex(p, vs)
		if d < best {
			best, bestID = d, cell
		}
	}

	return best, bestID
}

func built(t *testing.T, m mesh.Provider, opts ...bvtree.Option) *bvtree.Tree {
	t.Helper()

	tree := bvtree.New(m, opts...)
	require.NoError(t, tree.Build())

	return tree
}

// S1: unit-normal distance to a lone triangle.
func TestDistance_SingleTriangle(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Triangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)))

	d, id := tree.Distance(vec(0, 0, 1), wideOpen)
	require.InDelta(t, 1, d, eps)
	require.Equal(t, int64(0), id)

	sd, sid, n := tree.SignedDistance(vec(0, 0, 1), wideOpen)
	require.InDelta(t, 1, sd, eps)
	require.Equal(t, int64(0), sid)
	require.InDelta(t, 0, r3.Norm(r3.Sub(n, vec(0, 0, 1))), eps)
}

// S2: a radius that excludes every cell yields the sentinel.
func TestDistance_RadiusMiss(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Triangle(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0)))

	d, id := tree.Distance(vec(2, 0, 0), 0.5)
	require.Equal(t, float64(bvtree.Sentinel), d)
	require.Equal(t, bvtree.NoCell, id)

	sd, sid, n := tree.SignedDistance(vec(2, 0, 0), 0.5)
	require.Equal(t, float64(bvtree.Sentinel), sd)
	require.Equal(t, bvtree.NoCell, sid)
	require.Equal(t, r3.Vec{}, n)
}

// S3: two disjoint triangles; the near one wins and pruning skips the far one.
func TestDistance_DisjointTriangles(t *testing.T) {
	t.Parallel()

	m := mesh.NewTriMesh()
	lowA := m.AddVertex(vec(0, 0, 0))
	lowB := m.AddVertex(vec(1, 0, 0))
	lowC := m.AddVertex(vec(0, 1, 0))
	highA := m.AddVertex(vec(0, 0, 10))
	highB := m.AddVertex(vec(1, 0, 10))
	highC := m.AddVertex(vec(0, 1, 10))

	low, err := m.AddCell(lowA, lowB, lowC)
	require.NoError(t, err)
	_, err = m.AddCell(highA, highB, highC)
	require.NoError(t, err)

	tree := built(t, m)

	d, id := tree.Distance(vec(0, 0, 4), wideOpen)
	require.InDelta(t, 4, d, eps)
	require.Equal(t, low, id)
}

// S4: segment mesh goes through the segment kernel.
func TestDistance_Segment(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.SegmentStrip(vec(0, 0, 0), vec(1, 0, 0)))

	d, id := tree.Distance(vec(0.5, 1, 0), wideOpen)
	require.InDelta(t, 1, d, eps)
	require.Equal(t, int64(0), id)
}

// S5: closed cube; the interior is negative at half the edge length.
func TestSignedDistance_CubeInterior(t *testing.T) {
	t.Parallel()

	const edge = 1.0
	tree := built(t, mesh.Cube(vec(0, 0, 0), edge))

	d, id, n := tree.SignedDistance(vec(0, 0, 0), wideOpen)
	require.InDelta(t, -edge/2, d, eps)
	require.NotEqual(t, bvtree.NoCell, id)
	require.InDelta(t, 1, r3.Norm(n), eps)
}

// Law 7: outside a closed surface the sign is positive, inside negative.
func TestSignedDistance_SignConsistency(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Cube(vec(0, 0, 0), 2))

	outside := []r3.Vec{vec(0, 0, 3), vec(2, 2, 2), vec(-5, 0.3, 0.2), vec(0.9, 0.9, 1.4)}
	for _, p := range outside {
		d, _, _ := tree.SignedDistance(p, wideOpen)
		require.Positive(t, d, "point %v", p)
	}

	inside := []r3.Vec{vec(0, 0, 0), vec(0.5, 0.5, 0.5), vec(-0.9, 0.1, 0.2), vec(0, -0.8, 0)}
	for _, p := range inside {
		d, _, _ := tree.SignedDistance(p, wideOpen)
		require.Negative(t, d, "point %v", p)
	}
}

// The pseudo-normal flips with the sign: it always points from the surface
// toward the outside of the query point's side.
func TestSignedDistance_PseudoNormalDirection(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Cube(vec(0, 0, 0), 2))

	// outside above the top face: normal +Z
	d, _, n := tree.SignedDistance(vec(0.2, 0.3, 2), wideOpen)
	require.InDelta(t, 1, d, eps)
	require.InDelta(t, 0, r3.Norm(r3.Sub(n, vec(0, 0, 1))), eps)

	// inside near the top face: the sign flip turns (p - xp) back into the
	// outward surface direction
	d, _, n = tree.SignedDistance(vec(0.2, 0.3, 0.8), wideOpen)
	require.InDelta(t, -0.2, d, eps)
	require.InDelta(t, 0, r3.Norm(r3.Sub(n, vec(0, 0, 1))), eps)

	// p - d*n lands on the surface in both cases
	proj := tree.Project(vec(0.2, 0.3, 0.8), 1)
	require.InDelta(t, 0, r3.Norm(r3.Sub(proj, vec(0.2, 0.3, 1))), eps)
}

// Law 5: the tree agrees with exhaustive search over every cell.
func TestDistance_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	meshes := map[string]mesh.Provider{
		"cube":  mesh.Cube(vec(0.3, -0.2, 0.5), 1.7),
		"quad":  mesh.Quad(vec(0, 0, 0), vec(2, 0, 0), vec(2, 2, 0), vec(0, 2, 0)),
		"strip": mesh.SegmentStrip(vec(0, 0, 0), vec(1, 0.5, 0), vec(2, 0, 1), vec(3, -1, 0)),
	}

	rng := rand.New(rand.NewSource(42))
	for name, m := range meshes {
		tree := built(t, m)
		for i := 0; i < 200; i++ {
			p := vec(rng.Float64()*8-4, rng.Float64()*8-4, rng.Float64()*8-4)

			want, _ := bruteDistance(m, p)
			got, id := tree.Distance(p, wideOpen)
			require.InDelta(t, want, got, 1e-10, "%s: point %v", name, p)
			require.NotEqual(t, bvtree.NoCell, id)
		}
	}
}

// Law 8: a larger radius can only find equal or closer cells.
func TestDistance_RadiusMonotonicity(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Cube(vec(0, 0, 0), 2))

	rng := rand.New(rand.NewSource(7))
	radii := []float64{0.25, 0.5, 1, 2, 4, wideOpen}
	for i := 0; i < 50; i++ {
		p := vec(rng.Float64()*6-3, rng.Float64()*6-3, rng.Float64()*6-3)

		// radii grow left to right: results must be non-increasing
		for j := 1; j < len(radii); j++ {
			wide, _ := tree.Distance(p, radii[j])
			narrow, _ := tree.Distance(p, radii[j-1])
			require.LessOrEqual(t, wide, narrow, "point %v radii %v vs %v", p, radii[j-1], radii[j])
		}
	}
}

// Law 6: projection identity and idempotence.
func TestProject_Identity(t *testing.T) {
	t.Parallel()

	tree := built(t, mesh.Cube(vec(0, 0, 0), 1))

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		p := vec(rng.Float64()*4-2, rng.Float64()*4-2, rng.Float64()*4-2)

		d, _, n := tree.SignedDistance(p, wideOpen)
		want := r3.Sub(p, r3.Scale(d, n))

		// starting from a tiny radius exercises the growth loop
		got := tree.Project(p, 1e-3)
		require.InDelta(t, 0, r3.Norm(r3.Sub(got, want)), 1e-9, "point %v", p)

		// idempotence: projecting a surface point is a fixed point
		again := tree.Project(got, 1e-3)
		require.InDelta(t, 0, r3.Norm(r3.Sub(again, got)), 1e-9, "point %v", p)
	}
}

func TestProject_EmptyTree(t *testing.T) {
	t.Parallel()

	tree := bvtree.New(mesh.NewTriMesh())
	require.NoError(t, tree.Build())

	p := vec(1, 2, 3)
	require.Equal(t, p, tree.Project(p, 1))
}

// Tie-break: equidistant cells resolve to the first one encountered, and
// the distance itself is exact either way.
func TestDistance_Ties(t *testing.T) {
	t.Parallel()

	m := mesh.NewTriMesh()
	a0 := m.AddVertex(vec(-2, -1, 0))
	b0 := m.AddVertex(vec(-1, -1, 0))
	c0 := m.AddVertex(vec(-2, 1, 0))
	a1 := m.AddVertex(vec(1, -1, 0))
	b1 := m.AddVertex(vec(2, -1, 0))
	c1 := m.AddVertex(vec(2, 1, 0))

	_, err := m.AddCell(a0, b0, c0)
	require.NoError(t, err)
	_, err = m.AddCell(a1, b1, c1)
	require.NoError(t, err)

	tree := built(t, m)

	// exactly between both patches
	d, id := tree.Distance(vec(0, 0, 0), wideOpen)
	require.InDelta(t, 1, d, eps)
	require.Contains(t, []int64{0, 1}, id)
}
