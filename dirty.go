// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import "github.com/demandgraph/dcg/internal/enginelog"

// dirtyPredObservers marks dirty every
// Observe edge pointing at loc, then recurses into each such
// predecessor in turn. The "stop if already dirty" guard is what
// keeps this terminating on a graph with shared sub-results — each
// edge is marked at most once, and the walk stops at an edge that is
// already dirty.
func (e *Engine) dirtyPredObservers(loc Loc) {
	e.invariantf(loc != e.root, "dirty_pred_observers reached the root loc")

	entry := e.mustEntry(loc)
	for _, pred := range entry.preds.Slice() {
		if pred.Effect != Observe {
			continue
		}
		predEntry := e.mustEntry(pred.Loc)
		succ := e.findSucc(predEntry, Observe, loc)
		if succ.Dirty {
			continue
		}
		e.cnt.Dirty++
		succ.Dirty = true
		e.log.Debug("dirty", enginelog.F("loc", pred.Loc.String()), enginelog.F("target", loc.String()), enginelog.F("effect", "observe"))
		e.dirtyPredObservers(pred.Loc)
	}
}

// dirtyAlloc handles the case where loc itself changed (a Set landed
// on a cell, or a nominal thunk was re-allocated with a new argument).
// Every Observe-predecessor of loc is dirtied transitively first; then
// each Allocate-predecessor's own Allocate edge to loc is marked dirty
// and its Observe-predecessors are walked the same way — never its
// Allocate-predecessors, since an Allocate edge only records "p
// created/refreshed loc", not "p's result depends on loc's value".
func (e *Engine) dirtyAlloc(loc Loc) {
	e.dirtyPredObservers(loc)

	entry := e.mustEntry(loc)
	for _, pred := range entry.preds.Slice() {
		if pred.Effect != Allocate {
			continue
		}
		predEntry := e.mustEntry(pred.Loc)
		succ := e.findSucc(predEntry, Allocate, loc)
		if succ.Dirty {
			continue
		}
		e.cnt.Dirty++
		succ.Dirty = true
		e.log.Debug("dirty", enginelog.F("loc", pred.Loc.String()), enginelog.F("target", loc.String()), enginelog.F("effect", "allocate"))
		e.dirtyPredObservers(pred.Loc)
	}
}

// findSucc locates the Succ entry on entry.succs that targets loc with
// the given effect. The bidirectional-edge invariant guarantees it
// exists whenever a matching Pred was found on the target's predecessor set;
// its absence is an internal invariant violation, not caller error.
func (e *Engine) findSucc(entry *tableEntry, eff Effect, loc Loc) *Succ {
	for i := range entry.succs {
		s := &entry.succs[i]
		if s.Effect == eff && s.Loc == loc {
			return s
		}
	}
	e.invariantf(false, "missing reciprocal succ for pred effect=%s loc=%s", eff, loc)
	return nil
}

// mustEntry looks up loc in the table, panicking with an
// *InvariantError on a dangling Loc: every Loc the engine hands out
// refers to a live table entry, so a miss is an engine bug.
func (e *Engine) mustEntry(loc Loc) *tableEntry {
	entry, ok := e.table[loc]
	if !ok {
		e.invariantf(false, "dangling loc %s", loc)
	}
	return entry
}
