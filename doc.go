// Package mimmo hosts fast proximity queries between points and
// unstructured surface meshes, built around a bounding volume hierarchy.
//
// What lives where:
//
//	geom/   — point-to-simplex distance kernels & axis-aligned boxes
//	mesh/   — the mesh-provider contract + an indexed TriMesh implementation
//	bvtree/ — the tree itself: build, distance, signed distance, projection,
//	          batch facade and mesh-vs-mesh selection
//
// Why this shape?
//
//   - Narrow seams     — the tree only ever talks to a mesh.Provider
//   - Flat arenas      — nodes reference children by index, no pointer webs
//   - Read-mostly      — one Build, then any number of concurrent queries
//   - Sentinel misses  — queries return 1e18 / -1 instead of errors
//
// Quick sketch:
//
//	tree := bvtree.New(mesh.Cube(r3.Vec{}, 1))
//	_ = tree.Build()
//	d, cell := tree.Distance(p, 1e17)
//
// See bvtree's package documentation for the construction and pruning
// details.
//
//	go get github.com/nuaawqf/mimmo
package mimmo
