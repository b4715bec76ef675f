// SPDX-License-Identifier: MIT

// batch.go - convenience entry points looping queries over point arrays.
//
// The tree is immutable during queries, so batches fan out across a bounded
// errgroup worker pool (WithBatchWorkers). Every point starts from the
// caller's radius: results are independent per point and a miss surfaces as
// the usual Sentinel / NoCell pair in that point's slot.

package bvtree

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// DistanceBatch runs Distance for every input point with search radius r,
// returning one distance and one cell label per point, index-aligned.
func (t *Tree) DistanceBatch(ps []r3.Vec, r float64) ([]float64, []int64) {
	dist := make([]float64, len(ps))
	ids := make([]int64, len(ps))

	var g errgroup.Group
	g.SetLimit(t.batchWorkers)
	for i := range ps {
		i := i
		g.Go(func() error {
			dist[i], ids[i] = t.Distance(ps[i], r)

			return nil
		})
	}
	_ = g.Wait() // workers never fail; misses are sentinel-encoded

	return dist, ids
}

// SignedDistanceBatch runs SignedDistance for every input point with search
// radius r, returning distances, cell labels and pseudo-normals,
// index-aligned.
func (t *Tree) SignedDistanceBatch(ps []r3.Vec, r float64) ([]float64, []int64, []r3.Vec) {
	dist := make([]float64, len(ps))
	ids := make([]int64, len(ps))
	normals := make([]r3.Vec, len(ps))

	var g errgroup.Group
	g.SetLimit(t.batchWorkers)
	for i := range ps {
		i := i
		g.Go(func() error {
			dist[i], ids[i], normals[i] = t.SignedDistance(ps[i], r)

			return nil
		})
	}
	_ = g.Wait()

	return dist, ids, normals
}

// ProjectBatch projects every input point onto the surface, starting each
// search at radius r.
func (t *Tree) ProjectBatch(ps []r3.Vec, r float64) []r3.Vec {
	out := make([]r3.Vec, len(ps))

	var g errgroup.Group
	g.SetLimit(t.batchWorkers)
	for i := range ps {
		i := i
		g.Go(func() error {
			out[i] = t.Project(ps[i], r)

			return nil
		})
	}
	_ = g.Wait()

	return out
}
