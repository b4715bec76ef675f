// SPDX-License-Identifier: MIT
//
// builder.go - curated mesh constructors used by tests, examples and quick
// experiments. Each constructor returns a fully populated TriMesh with
// outward-oriented cells.

package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Triangle builds a mesh holding the single triangle (a, b, c).
// Counter-clockwise order, seen from the outward side, yields an outward
// face normal by the right-hand rule.
func Triangle(a, b, c r3.Vec) *TriMesh {
	m := NewTriMesh()
	va := m.AddVertex(a)
	vb := m.AddVertex(b)
	vc := m.AddVertex(c)
	mustCell(m, va, vb, vc)

	return m
}

// Quad builds a planar quadrilateral (a, b, c, d) split into the two
// triangles (a, b, c) and (a, c, d).
func Quad(a, b, c, d r3.Vec) *TriMesh {
	m := NewTriMesh()
	va := m.AddVertex(a)
	vb := m.AddVertex(b)
	vc := m.AddVertex(c)
	vd := m.AddVertex(d)
	mustCell(m, va, vb, vc)
	mustCell(m, va, vc, vd)

	return m
}

// SegmentStrip builds an open polyline of len(points)-1 segment cells.
// At least two points are required; fewer yield an empty mesh.
func SegmentStrip(points ...r3.Vec) *TriMesh {
	m := NewTriMesh()
	if len(points) < 2 {
		return m
	}

	ids := make([]int64, len(points))
	for i, p := range points {
		ids[i] = m.AddVertex(p)
	}
	for i := 0; i+1 < len(ids); i++ {
		mustCell(m, ids[i], ids[i+1])
	}

	return m
}

// Cube builds the closed 12-triangle surface of an axis-aligned cube with
// the given center and edge length. Every face normal points outward, so
// signed distances are negative inside the box.
func Cube(center r3.Vec, edge float64) *TriMesh {
	h := edge / 2
	m := NewTriMesh()

	// corner layout: 0-3 walk the bottom face (-Z) counter-clockwise seen
	// from +Z, starting at (-X, -Y); 4-7 repeat the walk on the top face (+Z)
	corners := [8]r3.Vec{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}

	ids := make([]int64, 8)
	for i, c := range corners {
		ids[i] = m.AddVertex(r3.Add(center, c))
	}

	// outward-wound quads, two triangles each
	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom, -Z
		{4, 5, 6, 7}, // top, +Z
		{0, 1, 5, 4}, // front, -Y
		{2, 3, 7, 6}, // back, +Y
		{0, 4, 7, 3}, // left, -X
		{1, 2, 6, 5}, // right, +X
	}
	for _, q := range quads {
		mustCell(m, ids[q[0]], ids[q[1]], ids[q[2]])
		mustCell(m, ids[q[0]], ids[q[2]], ids[q[3]])
	}

	return m
}

// mustCell adds a cell whose vertex ids are constructor-controlled, so a
// failure is a programmer error.
func mustCell(m *TriMesh, ids ...int64) {
	if _, err := m.AddCell(ids...); err != nil {
		panic(err)
	}
}
