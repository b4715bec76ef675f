// Package mesh defines the capability contract between the bv-tree and the
// surface geometry it indexes, plus a self-contained indexed implementation.
//
// The tree never sees vertex storage or cell topology directly; it consumes
// a Provider, a narrow read-only capability set:
//
//	cell count & iteration -> element table population
//	per-cell centroids     -> split-plane selection
//	per-cell vertices      -> bounding boxes and distance kernels
//	per-edge normals       -> signed-distance orientation
//
// TriMesh is the bundled Provider: an indexed surface mesh of segments,
// triangles and planar polygons with cached face normals and lazy edge
// adjacency. Curated constructors (Triangle, Quad, Cube, SegmentStrip)
// build common fixtures.
package mesh
