// SPDX-License-Identifier: MIT

package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Provider is the only contract between a bv-tree and the outside world.
// Implementations must be stable for the whole lifetime of any tree built
// on top of them: centroids, vertices and normals may not change between
// Build and the last query.
//
// All methods are read-only and must be safe for concurrent callers.
type Provider interface {
	// CellCount returns the number of cells in the mesh.
	CellCount() int

	// Cells returns the cell labels in iteration order.
	Cells() []int64

	// CellCentroid returns the centroid of the given cell.
	CellCentroid(cell int64) r3.Vec

	// CellVertexCount returns the number of vertices of the given cell.
	CellVertexCount(cell int64) int

	// CellVertex returns the vertex id at local index i of the given cell.
	CellVertex(cell int64, i int) int64

	// VertexCoords returns the coordinates of the given vertex.
	VertexCoords(vertex int64) r3.Vec

	// EdgeNormal returns the unit outward pseudo-normal associated with
	// local edge index edge of the given cell. It is only consulted by
	// signed-distance queries; unsigned distance and selection never call it.
	EdgeNormal(cell int64, edge int) r3.Vec
}
