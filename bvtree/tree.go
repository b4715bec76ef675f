// SPDX-License-Identifier: MIT

package bvtree

import (
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nuaawqf/mimmo/geom"
	"github.com/nuaawqf/mimmo/mesh"
)

// Tree is a bounding volume hierarchy over the cells of a surface mesh.
//
// The zero value is not usable; construct with New. After Build the tree is
// read-only and safe for concurrent queries; the mesh provider must outlive
// the tree and stay unchanged between Build and the last query.
type Tree struct {
	mesh mesh.Provider

	nodes    []Node
	elements []Element

	nnodes int
	nleaf  int
	depth  int

	maxLeafSize  int
	tol          float64
	maxStack     int
	batchWorkers int

	log *zap.Logger
}

// New creates an empty tree over the given mesh provider. The provider may
// be nil and attached later with SetMesh; Build fails until one is present.
func New(m mesh.Provider, opts ...Option) *Tree {
	t := &Tree{
		maxLeafSize:  DefaultMaxLeafSize,
		tol:          DefaultTolerance,
		batchWorkers: defaultBatchWorkers(),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.SetMesh(m)

	return t
}

// SetMesh replaces the mesh provider and discards any built state. Must not
// be called while queries are in flight.
func (t *Tree) SetMesh(m mesh.Provider) {
	t.mesh = m
	t.nodes = nil
	t.elements = nil
	t.nnodes = 0
	t.nleaf = 0
	t.depth = 0
	t.maxStack = minStack
}

// SetMaxLeafSize changes the leaf capacity for the next Build. It has no
// effect on an already built tree until Build runs again.
func (t *Tree) SetMaxLeafSize(n int) {
	if n < 1 {
		panic(panicLeafSizeInvalid)
	}
	t.maxLeafSize = n
}

// Clean resets the tree to its post-New state on an absent mesh: counters
// zeroed, arena and element table released, leaf size and tolerance back to
// defaults.
func (t *Tree) Clean() {
	t.mesh = nil
	t.nodes = nil
	t.elements = nil
	t.nnodes = 0
	t.nleaf = 0
	t.depth = 0
	t.maxLeafSize = DefaultMaxLeafSize
	t.tol = DefaultTolerance
	t.maxStack = minStack
}

// NumNodes returns the number of nodes in the arena after Build.
func (t *Tree) NumNodes() int { return t.nnodes }

// NumLeaves returns the number of leaf nodes after Build.
func (t *Tree) NumLeaves() int { return t.nleaf }

// NumElements returns the number of entries in the element table.
func (t *Tree) NumElements() int { return len(t.elements) }

// Node returns a copy of the i-th arena node.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Nodes returns the node arena. The slice is owned by the tree and must be
// treated as read-only.
func (t *Tree) Nodes() []Node { return t.nodes }

// Elements returns the permuted element table. The slice is owned by the
// tree and must be treated as read-only.
func (t *Tree) Elements() []Element { return t.elements }

// Element returns a copy of the i-th element-table entry.
func (t *Tree) Element(i int) Element { return t.elements[i] }

// Root returns the root node; valid only when NumNodes() > 0.
func (t *Tree) Root() Node { return t.nodes[0] }

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Construction
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Build populates the node arena and permutes the element table so the root
// describes the whole mesh. Rebuilding an already built tree restarts from
// the current mesh state.
//
// Contracts:
//   - a mesh provider must be attached (ErrNoMesh otherwise);
//   - an empty mesh builds an empty tree, not an error;
//   - after return, nodes are shrunk to the exact count and every tree
//     invariant of the package documentation holds.
//
// Complexity: O(n log^2 n) expected over n cells (a sort per level),
// O(total vertices) per level for bounding boxes.
func (t *Tree) Build() error {
	if t.mesh == nil {
		return ErrNoMesh
	}

	t.setup()
	n := len(t.elements)
	if n == 0 {
		t.nodes = t.nodes[:0:0]

		return nil
	}

	// Stage 1 - element table: one (label, centroid) pair per cell.
	for i, id := range t.mesh.Cells() {
		t.elements[i] = Element{Label: id, Centroid: t.mesh.CellCentroid(id)}
	}

	// Stage 2 - root node over the full slice, then recursive fill.
	t.nodes[0] = Node{LChild: NoChild, RChild: NoChild, Begin: 0, End: n}
	t.nnodes = 1
	t.fill(0, 1)

	// Stage 3 - mandatory shrink of the arena to the exact node count.
	t.nodes = t.nodes[:t.nnodes:t.nnodes]

	t.log.Debug("bv-tree built",
		zap.Int("elements", n),
		zap.Int("nodes", t.nnodes),
		zap.Int("leaves", t.nleaf),
		zap.Int("depth", t.depth),
		zap.Int("max_leaf_size", t.maxLeafSize),
	)

	return nil
}

// setup sizes the element table and reserves the first arena chunk from the
// current mesh, resetting any previously built state.
func (t *Tree) setup() {
	nCells := t.mesh.CellCount()

	t.maxStack = minStack
	if vp, ok := t.mesh.(interface{ VertexCount() int }); ok {
		if vp.VertexCount() > minStack {
			t.maxStack = vp.VertexCount()
		}
	} else if nCells > minStack {
		// provider does not expose a vertex count; scale the chunk by cells
		t.maxStack = nCells
	}

	t.elements = make([]Element, nCells)
	t.nodes = t.nodes[:0]
	t.nnodes = 0
	t.nleaf = 0
	t.depth = 0
	t.grow()
}

// grow extends the arena by one maxStack chunk.
func (t *Tree) grow() {
	t.nodes = append(t.nodes, make([]Node, t.maxStack)...)
}

// fill completes the subtree rooted at the given arena index: it computes
// the node box, decides leaf vs split, and recurses into freshly emplaced
// children.
//
// A split that makes no progress - every centroid collapsed on the chosen
// axis, so one side would inherit the whole parent slice - forces a leaf
// even beyond maxLeafSize; recursing would never terminate.
func (t *Tree) fill(idx, depth int) {
	if depth > t.depth {
		t.depth = depth
	}

	t.computeBox(idx)

	node := &t.nodes[idx]
	if node.Range() <= t.maxLeafSize {
		node.Leaf = true
		t.nleaf++

		return
	}

	begin, end := node.Begin, node.End

	// Split plane: mean centroid on the axis of largest centroid spread.
	mean, dir := t.splitPlane(begin, end)

	slice := t.elements[begin:end]
	sort.Slice(slice, func(i, j int) bool {
		return geom.Component(slice[i].Centroid, dir) < geom.Component(slice[j].Centroid, dir)
	})

	// First element strictly right of the mean (upper bound on the sorted slice).
	firstRight := begin + sort.Search(len(slice), func(i int) bool {
		return geom.Component(slice[i].Centroid, dir) > mean
	})

	if firstRight == begin || firstRight == end {
		// Degenerate centroids: no progress possible, force a leaf.
		t.nodes[idx].Leaf = true
		t.nleaf++

		return
	}

	lchild := t.emplace(begin, firstRight)
	t.nodes[idx].LChild = lchild
	t.fill(lchild, depth+1)

	rchild := t.emplace(firstRight, end)
	t.nodes[idx].RChild = rchild
	t.fill(rchild, depth+1)
}

// splitPlane returns the mean centroid coordinate and the axis of largest
// centroid spread over the slice [begin, end); ties break to the lowest
// axis index.
func (t *Tree) splitPlane(begin, end int) (float64, int) {
	var sum r3.Vec
	cbox := geom.Empty()
	for i := begin; i < end; i++ {
		c := t.elements[i].Centroid
		sum = r3.Add(sum, c)
		cbox.Extend(c)
	}
	mean := r3.Scale(1/float64(end-begin), sum)

	dir := geom.AxisX
	spread := cbox.Max.X - cbox.Min.X
	if s := cbox.Max.Y - cbox.Min.Y; s > spread {
		dir, spread = geom.AxisY, s
	}
	if s := cbox.Max.Z - cbox.Min.Z; s > spread {
		dir = geom.AxisZ
	}

	return geom.Component(mean, dir), dir
}

// emplace appends a fresh node over [begin, end), growing the arena by a
// chunk when at most one free slot remains, and returns its index.
func (t *Tree) emplace(begin, end int) int {
	if len(t.nodes) <= t.nnodes+1 {
		t.grow()
	}
	idx := t.nnodes
	t.nodes[idx] = Node{LChild: NoChild, RChild: NoChild, Begin: begin, End: end}
	t.nnodes++

	return idx
}

// computeBox fills the node box with the AABB over every vertex of every
// cell in the node's slice, inflated by the tree tolerance on both sides.
func (t *Tree) computeBox(idx int) {
	node := &t.nodes[idx]

	box := geom.Empty()
	for i := node.Begin; i < node.End; i++ {
		cell := t.elements[i].Label
		nV := t.mesh.CellVertexCount(cell)
		for iv := 0; iv < nV; iv++ {
			box.Extend(t.mesh.VertexCoords(t.mesh.CellVertex(cell, iv)))
		}
	}
	node.Box = box.Inflate(t.tol)
}
