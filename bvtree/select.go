// SPDX-License-Identifier: MIT

package bvtree

import "github.com/nuaawqf/mimmo/geom"

// SelectByPatch returns the labels of every cell of target whose subtree
// path stays within tol of at least one leaf box of selection.
//
// Stage 1 collects the selection leaves whose inflated box overlaps the
// target root; stage 2 descends target, narrowing that leaf list at every
// node. The narrowed list is passed down by value, so sibling branches see
// the parent's filter, never each other's. A target leaf that survives the
// filter emits all of its element labels, each exactly once.
//
// Selecting a tree against itself with tol = 0 therefore returns every cell
// label of the tree.
func SelectByPatch(selection, target *Tree, tol float64) []int64 {
	if selection == nil || target == nil || selection.nnodes == 0 || target.nnodes == 0 {
		return nil
	}

	rootBox := target.nodes[0].Box

	leaves := make([]geom.AABB, 0, selection.nleaf)
	for i := 0; i < selection.nnodes; i++ {
		nd := &selection.nodes[i]
		if nd.Leaf && nd.Box.Inflate(tol).Overlaps(rootBox) {
			leaves = append(leaves, nd.Box)
		}
	}

	var extracted []int64
	target.extract(leaves, tol, 0, &extracted)

	return extracted
}

// extract recursively narrows the active selection-leaf list against the
// current target node and collects leaf element labels. active must not be
// mutated: each frame builds its own filtered copy.
func (t *Tree) extract(active []geom.AABB, tol float64, idx int, out *[]int64) {
	node := &t.nodes[idx]

	var kept []geom.AABB
	for _, box := range active {
		if box.Inflate(tol).Overlaps(node.Box) {
			kept = append(kept, box)
		}
	}
	if len(kept) == 0 {
		return
	}

	if node.Leaf {
		for i := node.Begin; i < node.End; i++ {
			*out = append(*out, t.elements[i].Label)
		}

		return
	}

	if node.LChild != NoChild {
		t.extract(kept, tol, node.LChild, out)
	}
	if node.RChild != NoChild {
		t.extract(kept, tol, node.RChild, out)
	}
}
