// Package geom provides the numeric kernels behind the bv-tree proximity
// queries: point-to-simplex distance with barycentric output, and the
// axis-aligned bounding box (AABB) primitives used for branch pruning.
//
// Design principles:
//   - Pure functions: no state, no allocation on the hot path.
//   - Non-negative distances: orientation (sign) is applied by callers.
//   - Degenerate inputs (zero-length segments, zero-area triangles) never
//     produce NaN; the closest point falls back to the nearest sub-feature.
//
// All coordinates are gonum spatial vectors (r3.Vec).
package geom
