// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

// frame is one entry of the production stack: the Loc currently
// being produced (or the synthetic root Loc, for the bottom frame),
// the namespace path new allocations under this frame should use, and
// the successor list accumulating as the producer runs.
type frame struct {
	loc   Loc
	path  *pathNode
	succs []Succ
}

// pushSucc records a dependency edge against the current frame. The
// bottom (root) frame is always present, so this always succeeds; it
// is what lets the outer, non-nested caller's allocations and forces
// still show up as edges from the root.
func (e *Engine) pushSucc(s Succ) {
	top := len(e.stack) - 1
	e.stack[top].succs = append(e.stack[top].succs, s)
}

// CurrentPath renders the path of the currently active frame, for
// diagnostics and tests. Inside a producer it has no bearing on
// allocation identity; at the outer level the current frame is the
// bottom frame, whose path new allocations use (see bottomPath).
func (e *Engine) CurrentPath() string {
	return e.stack[len(e.stack)-1].path.String()
}

// bottomPath is the path new nominal/structural allocations use: the
// path of the outermost (root) frame, not the current frame — nominal
// identity must not shift just because an allocation happens to occur
// while producing some other node.
func (e *Engine) bottomPath() *pathNode {
	return e.stack[0].path
}
