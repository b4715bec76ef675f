// SPDX-License-Identifier: MIT
//
// errors.go - sentinel errors for the mesh package.
//
// Error policy (same as everywhere in this module):
//   - Only package-level sentinels are exposed; branch with errors.Is.
//   - Context is attached by wrapping (errors.Wrapf), never baked into the
//     sentinel text.

package mesh

import "github.com/pkg/errors"

// ErrVertexOutOfRange indicates a cell referenced a vertex id that was never
// added to the mesh.
// Usage: if errors.Is(err, mesh.ErrVertexOutOfRange) { ... }.
var ErrVertexOutOfRange = errors.New("mesh: vertex id out of range")

// ErrCellTooSmall indicates a cell with fewer than two vertices; the mesh
// stores surface simplices only (segments and up).
var ErrCellTooSmall = errors.New("mesh: cell needs at least two vertices")

// ErrUnknownCell indicates a cell label that does not exist in the mesh.
var ErrUnknownCell = errors.New("mesh: unknown cell label")

// ErrEmptyMesh indicates an operation that needs at least one cell was
// invoked on a mesh without any.
var ErrEmptyMesh = errors.New("mesh: mesh has no cells")
