// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import "github.com/demandgraph/dcg/internal/enginelog"

// revokeSuccs removes loc from the predecessor set of every target in
// succs. It is always called before a producer re-runs, since the
// edges it is about to record replace these entirely.
func (e *Engine) revokeSuccs(loc Loc, succs []Succ) {
	for _, s := range succs {
		target := e.mustEntry(s.Loc)
		target.preds.Remove(Pred{Effect: s.Effect, Loc: loc})
	}
}

// insertPred re-establishes the bidirectional-edge invariant for one
// edge of a just-completed production: for every Succ(loc=target) recorded on
// loc, (effect, loc) must be present in target's predecessor set.
func (e *Engine) insertPred(target Loc, pred Pred) {
	e.invariantf(target != e.root, "attempted to record %s as a predecessor of the root loc", pred.Loc)
	entry := e.mustEntry(target)
	entry.preds.Insert(pred)
}

// produce runs (or re-runs) the producer stored at loc and commits its
// new result and successor edges. loc must name a
// Comp node; it is invoked either directly by Force (when no cached
// result exists yet) or by changeProp (when a dependency turned out to
// have changed and loc itself must be refreshed).
func (e *Engine) produce(loc Loc) (any, error) {
	entry := e.mustEntry(loc)
	e.invariantf(entry.kind == compKind, "produce called on non-computation loc %s", loc)
	e.invariantf(!e.inFlight.Test(entry.slot), "cyclic force: loc %s is already being produced", loc)

	old := entry.succs
	entry.succs = nil
	e.revokeSuccs(loc, old)

	producer := entry.producer.Copy()

	e.inFlight.Set(entry.slot)
	e.stack = append(e.stack, frame{loc: loc, path: loc.path})
	e.log.Debug("produce begin", enginelog.F("loc", loc.String()), enginelog.F("prog_pt", producer.ProgPt().String()))

	res, runErr := producer.Produce(e)

	top := len(e.stack) - 1
	popped := e.stack[top]
	e.stack = e.stack[:top]
	e.inFlight.Clear(entry.slot)
	e.invariantf(popped.loc == loc, "frame stack mismatch: popped %s while producing %s", popped.loc, loc)

	if runErr != nil {
		// A client producer failure leaves the node with no result
		// and its successors cleared, as if never produced.
		entry.res = nil
		entry.hasRes = false
		e.log.Debug("produce failed", enginelog.F("loc", loc.String()), enginelog.F("error", runErr.Error()))
		return nil, runErr
	}

	for _, s := range popped.succs {
		e.invariantf(!s.Dirty, "produce at loc %s recorded an already-dirty edge to %s", loc, s.Loc)
		e.insertPred(s.Loc, Pred{Effect: s.Effect, Loc: loc})
	}

	entry.succs = popped.succs
	entry.res = res
	entry.hasRes = true
	e.log.Debug("produce end", enginelog.F("loc", loc.String()), enginelog.F("evals", e.cnt.Eval))

	if len(e.stack) > 0 {
		e.pushSucc(Succ{Effect: Observe, Dep: producerDep{res: res, eq: entry.producer.ResEqual}, Loc: loc})
	}
	return res, nil
}

// changeProp is change propagation for an observed prevRes at loc: it
// certifies loc's current result is still equal to prevRes, or
// re-produces loc if a dirty dependency proves stale. reproduced
// reports whether produce(loc) ran as part of this call, so Force
// knows whether produce already recorded the Observe edge on its own
// or must record one itself.
func (e *Engine) changeProp(loc Loc, prevRes any, eq func(a, b any) bool) (changed bool, reproduced bool, err error) {
	e.cnt.ChangeProp++
	entry := e.mustEntry(loc)

	switch entry.kind {
	case mutKind:
		return !entry.eq(entry.val, prevRes), false, nil

	case compKind:
		for i := range entry.succs {
			s := &entry.succs[i]
			if !s.Dirty {
				continue
			}
			e.log.Debug("change_prop check", enginelog.F("loc", loc.String()), enginelog.F("dep", s.Loc.String()))
			depChanged, err := s.Dep.ChangeProp(e, s.Loc)
			if err != nil {
				return false, false, err
			}
			if depChanged {
				if _, err := e.produce(loc); err != nil {
					return false, false, err
				}
				refreshed := e.mustEntry(loc)
				return !eq(refreshed.res, prevRes), true, nil
			}
			s.Dirty = false
		}
		return false, false, nil

	default:
		e.invariantf(false, "change_prop on node of unrecognized kind at loc %s", loc)
		return false, false, nil
	}
}
