// SPDX-License-Identifier: MIT

package bvtree

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nuaawqf/mimmo/geom"
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Sentinels & defaults
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

const (
	// Sentinel is the "no result" distance: returned whenever a query finds
	// no cell within its search radius, or the tree is empty.
	Sentinel = 1.0e18

	// NoCell is the label returned alongside Sentinel.
	NoCell int64 = -1

	// NoChild marks an absent child slot in a node.
	NoChild = -1

	// DefaultMaxLeafSize is the largest element count a leaf may hold unless
	// overridden by WithMaxLeafSize / SetMaxLeafSize.
	DefaultMaxLeafSize = 1

	// DefaultTolerance inflates every node box on both sides of every axis,
	// absorbing floating-point jitter in the containment tests.
	DefaultTolerance = 1.0e-8

	// minStack is the smallest arena growth chunk; the effective chunk is
	// max(minStack, mesh vertex count), or max(minStack, cell count) for a
	// provider that does not report a vertex count.
	minStack = 10

	// projectGrowth is the radius multiplier applied between projection
	// attempts until a cell is hit.
	projectGrowth = 1.5
)

// Sentinel errors. Queries never return errors (misses are sentinel-encoded);
// only explicit mutators can fail.
var (
	// ErrNoMesh indicates Build was invoked with no mesh attached.
	ErrNoMesh = errors.New("bvtree: no mesh attached")
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Data model
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Element is one entry of the element table: a mesh cell label paired with
// the centroid it had at build time. The table is permuted in place during
// construction and is read-only afterwards.
type Element struct {
	// Label is the stable identifier of the mesh cell.
	Label int64

	// Centroid is the cell centroid cached from the mesh provider.
	Centroid r3.Vec
}

// Node is one arena slot of the tree.
//
// Invariants after Build:
//   - a non-leaf node has two valid children whose element ranges partition
//     [Begin, End) exactly;
//   - Box contains every vertex of every cell in [Begin, End), inflated by
//     the tree tolerance;
//   - a leaf holds between 1 and maxLeafSize elements, except the forced
//     leaf produced by a degenerate (no-progress) split, which may exceed
//     maxLeafSize.
type Node struct {
	// LChild and RChild are arena indices of the children, or NoChild.
	LChild, RChild int

	// Begin and End delimit the half-open element-table slice of this node.
	Begin, End int

	// Leaf is true iff the node is terminal.
	Leaf bool

	// Box is the inflated AABB over all vertices of all cells in the slice.
	Box geom.AABB
}

// Range returns the number of elements owned by the node.
func (n Node) Range() int { return n.End - n.Begin }
