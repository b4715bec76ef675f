// SPDX-License-Identifier: MIT

// Package bvtree: functional configuration for tree construction and the
// batch facade. This file defines:
//   - Option (functional options applied by New),
//   - WithX constructors with strong validation (panic on nonsensical
//     values - programmer error, never a runtime condition),
//   - the documented defaults live in types.go.

package bvtree

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Internal panic messages (no magic strings at call sites).
const (
	panicLeafSizeInvalid = "bvtree: WithMaxLeafSize: n must be >= 1"
	panicTolInvalid      = "bvtree: WithTolerance: tol must be finite, non-negative"
	panicLoggerNil       = "bvtree: WithLogger: logger must be non-nil"
	panicWorkersInvalid  = "bvtree: WithBatchWorkers: n must be >= 1"
)

// Option mutates a Tree during New. Options are applied in order;
// last-writer-wins.
type Option func(*Tree)

// WithMaxLeafSize caps the number of elements a leaf may hold.
//
// Inputs:
//   - n: >= 1; default DefaultMaxLeafSize.
//
// Errors:
//   - Panics with a stable message when n < 1.
func WithMaxLeafSize(n int) Option {
	if n < 1 {
		panic(panicLeafSizeInvalid)
	}

	return func(t *Tree) { t.maxLeafSize = n }
}

// WithTolerance sets the box inflation tolerance applied on both sides of
// every node AABB.
//
// Inputs:
//   - tol: finite, >= 0; default DefaultTolerance.
//
// Errors:
//   - Panics with a stable message when tol is NaN, infinite or negative.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(t *Tree) { t.tol = tol }
}

// WithLogger attaches a structured logger; Build emits a single debug
// record with tree statistics. Default is zap.NewNop().
//
// Errors:
//   - Panics when log is nil; use zap.NewNop() to silence explicitly.
func WithLogger(log *zap.Logger) Option {
	if log == nil {
		panic(panicLoggerNil)
	}

	return func(t *Tree) { t.log = log }
}

// WithBatchWorkers bounds the number of goroutines the batch facade may run
// concurrently. Default is runtime.NumCPU().
//
// Errors:
//   - Panics when n < 1.
func WithBatchWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(t *Tree) { t.batchWorkers = n }
}

// defaultBatchWorkers resolves the batch parallelism default.
func defaultBatchWorkers() int { return runtime.NumCPU() }
