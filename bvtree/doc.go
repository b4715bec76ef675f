// Package bvtree implements a bounding volume hierarchy over an
// unstructured surface mesh, accelerating nearest-element lookup, signed
// and unsigned point-to-surface distance, point projection, and
// mesh-vs-mesh proximity selection.
//
// Construction is top-down: the element table - one (label, centroid) entry
// per mesh cell - is permuted in place so every node owns a contiguous
// half-open slice of it. A node splits on the axis of largest centroid
// spread, partitioning its slice around the mean centroid; nodes live in a
// flat arena and reference children by index, never by pointer. Queries
// descend recursively, pruning any subtree whose box lies farther than the
// current search radius, and tighten that radius as better candidates are
// found.
//
// Design principles:
//   - Read-only after Build: any number of goroutines may query one tree
//     concurrently as long as no mutator (Build, Clean, SetMesh,
//     SetMaxLeafSize) runs.
//   - Sentinel results, not errors: a query that finds no cell within its
//     radius returns Sentinel / NoCell; the hot path never allocates an
//     error.
//   - The mesh stays external: the tree holds a non-owning mesh.Provider
//     reference that must outlive it.
package bvtree
