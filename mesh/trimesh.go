// SPDX-License-Identifier: MIT

package mesh

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey identifies an undirected edge by its sorted vertex pair.
type edgeKey struct{ lo, hi int64 }

func makeEdgeKey(a, b int64) edgeKey {
	if a > b {
		a, b = b, a
	}

	return edgeKey{lo: a, hi: b}
}

// TriMesh is an indexed unstructured surface mesh: a vertex pool plus cells
// of two or more vertex references. Cell labels are the insertion indices
// and remain stable for the lifetime of the mesh.
//
// Mutation (AddVertex, AddCell) is not safe concurrently with reads; once
// the mesh is handed to a tree it must be treated as frozen, matching the
// Provider contract.
type TriMesh struct {
	verts []r3.Vec
	cells [][]int64

	// caches, built lazily on first normal query; adjMu serializes the
	// build so concurrent readers race neither the maps nor each other
	adjMu       sync.Mutex
	adjBuilt    bool
	faceNormals []r3.Vec
	edgeCells   map[edgeKey][]int64 // undirected edge -> adjacent cells (nV >= 3)
	vertexCells map[int64][]int64   // endpoint vertex -> adjacent segments (nV == 2)
}

// NewTriMesh returns an empty mesh.
func NewTriMesh() *TriMesh {
	return &TriMesh{
		verts: make([]r3.Vec, 0),
		cells: make([][]int64, 0),
	}
}

// AddVertex appends a vertex and returns its id.
func (m *TriMesh) AddVertex(p r3.Vec) int64 {
	m.verts = append(m.verts, p)
	m.dropCaches()

	return int64(len(m.verts) - 1)
}

// AddCell appends a cell referencing previously added vertices and returns
// its label. Vertex order fixes the orientation: counter-clockwise seen
// from outside yields outward face normals.
//
// Errors: ErrCellTooSmall, ErrVertexOutOfRange (wrapped with the offending
// index).
func (m *TriMesh) AddCell(vertexIDs ...int64) (int64, error) {
	if len(vertexIDs) < 2 {
		return 0, errors.Wrapf(ErrCellTooSmall, "got %d vertices", len(vertexIDs))
	}
	for _, v := range vertexIDs {
		if v < 0 || v >= int64(len(m.verts)) {
			return 0, errors.Wrapf(ErrVertexOutOfRange, "vertex %d of %d", v, len(m.verts))
		}
	}

	cell := make([]int64, len(vertexIDs))
	copy(cell, vertexIDs)
	m.cells = append(m.cells, cell)
	m.dropCaches()

	return int64(len(m.cells) - 1), nil
}

// VertexCount returns the number of vertices in the pool.
func (m *TriMesh) VertexCount() int { return len(m.verts) }

// CellCount implements Provider.
func (m *TriMesh) CellCount() int { return len(m.cells) }

// Cells implements Provider; labels are returned in insertion order.
func (m *TriMesh) Cells() []int64 {
	out := make([]int64, len(m.cells))
	for i := range out {
		out[i] = int64(i)
	}

	return out
}

// CellCentroid implements Provider: the arithmetic mean of the cell vertices.
func (m *TriMesh) CellCentroid(cell int64) r3.Vec {
	vs := m.cells[cell]
	var c r3.Vec
	for _, v := range vs {
		c = r3.Add(c, m.verts[v])
	}

	return r3.Scale(1/float64(len(vs)), c)
}

// CellVertexCount implements Provider.
func (m *TriMesh) CellVertexCount(cell int64) int { return len(m.cells[cell]) }

// CellVertex implements Provider.
func (m *TriMesh) CellVertex(cell int64, i int) int64 { return m.cells[cell][i] }

// VertexCoords implements Provider.
func (m *TriMesh) VertexCoords(vertex int64) r3.Vec { return m.verts[vertex] }

// FaceNormal returns the unit outward normal of the given cell.
//
// Cells with three or more vertices use Newell's method over the vertex
// cycle, so planar polygons and slightly warped quads both resolve to a
// stable normal. Segments use the in-plane convention normal = (dy, -dx, 0)
// of a counter-clockwise 2D polyline; a segment parallel to Z falls back to
// the X axis as reference. Degenerate cells return the zero vector.
func (m *TriMesh) FaceNormal(cell int64) r3.Vec {
	m.ensureAdjacency()

	return m.faceNormals[cell]
}

// EdgeNormal implements Provider.
//
// For a polygonal cell, local edge i joins vertices i and i+1 (mod nV); the
// pseudo-normal is the normalized sum of the face normals of every cell
// sharing that edge, which degrades to the own face normal on boundary
// edges. For a segment cell the "edges" are its two endpoints and adjacency
// runs through the shared vertex.
func (m *TriMesh) EdgeNormal(cell int64, edge int) r3.Vec {
	m.ensureAdjacency()

	vs := m.cells[cell]

	var adjacent []int64
	if len(vs) == 2 {
		adjacent = m.vertexCells[vs[edge%2]]
	} else {
		k := makeEdgeKey(vs[edge%len(vs)], vs[(edge+1)%len(vs)])
		adjacent = m.edgeCells[k]
	}

	var n r3.Vec
	for _, c := range adjacent {
		n = r3.Add(n, m.faceNormals[c])
	}
	if r3.Norm(n) == 0 {
		return m.faceNormals[cell]
	}

	return r3.Unit(n)
}

// Validate checks structural consistency and aggregates every defect found
// instead of stopping at the first one.
func (m *TriMesh) Validate() error {
	var err error
	if len(m.cells) == 0 {
		err = multierr.Append(err, ErrEmptyMesh)
	}
	for label, vs := range m.cells {
		if len(vs) < 2 {
			err = multierr.Append(err, errors.Wrapf(ErrCellTooSmall, "cell %d", label))
		}
		for _, v := range vs {
			if v < 0 || v >= int64(len(m.verts)) {
				err = multierr.Append(err, errors.Wrapf(ErrVertexOutOfRange, "cell %d vertex %d", label, v))
			}
		}
	}

	return err
}

// dropCaches invalidates the lazily built normals and adjacency.
func (m *TriMesh) dropCaches() {
	m.adjBuilt = false
	m.faceNormals = nil
	m.edgeCells = nil
	m.vertexCells = nil
}

// ensureAdjacency builds face normals and edge/vertex adjacency once per
// mutation generation.
func (m *TriMesh) ensureAdjacency() {
	m.adjMu.Lock()
	defer m.adjMu.Unlock()
	if m.adjBuilt {
		return
	}

	m.faceNormals = make([]r3.Vec, len(m.cells))
	m.edgeCells = make(map[edgeKey][]int64)
	m.vertexCells = make(map[int64][]int64)

	for i, vs := range m.cells {
		label := int64(i)
		m.faceNormals[i] = m.computeFaceNormal(vs)

		if len(vs) == 2 {
			m.vertexCells[vs[0]] = append(m.vertexCells[vs[0]], label)
			m.vertexCells[vs[1]] = append(m.vertexCells[vs[1]], label)
			continue
		}
		for j := range vs {
			k := makeEdgeKey(vs[j], vs[(j+1)%len(vs)])
			m.edgeCells[k] = append(m.edgeCells[k], label)
		}
	}

	m.adjBuilt = true
}

// computeFaceNormal derives the unit outward normal of one cell; see
// FaceNormal for the conventions.
func (m *TriMesh) computeFaceNormal(vs []int64) r3.Vec {
	if len(vs) == 2 {
		dir := r3.Sub(m.verts[vs[1]], m.verts[vs[0]])
		if r3.Norm(dir) == 0 {
			return r3.Vec{}
		}
		dir = r3.Unit(dir)
		n := r3.Vec{X: dir.Y, Y: -dir.X}
		if r3.Norm(n) == 0 {
			// segment along Z: use the X axis as reference instead
			n = r3.Cross(dir, r3.Vec{X: 1})
		}
		if r3.Norm(n) == 0 {
			return r3.Vec{}
		}

		return r3.Unit(n)
	}

	// Newell's method over the vertex cycle.
	var n r3.Vec
	for j := range vs {
		a := m.verts[vs[j]]
		b := m.verts[vs[(j+1)%len(vs)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}

	return r3.Unit(n)
}
