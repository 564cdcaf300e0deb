// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import "reflect"

// Force demands the value behind a. An inline Art (from Put or an
// Eager Thunk) is returned as-is with no table lookup and no recorded
// edge. A table-backed Art resolves its Loc by node variant:
//
//   - Mut: return the cell's current value, recording an Observe edge.
//   - Comp with no cached result: run produce, which records the edge
//     itself as part of committing the new result.
//   - Comp with a cached result: run change propagation to certify it
//     is still valid (or refresh it), then record an Observe edge
//     carrying whichever result is now current.
func Force[T comparable](e *Engine, a Art[T]) (T, error) {
	var zero T
	if a.isInline {
		return a.inline, nil
	}

	entry := e.mustEntry(a.loc)
	want := reflect.TypeFor[T]()
	if entry.typ != want {
		return zero, misusef("Force at loc %s requested type %s, but the node holds %s", a.loc, want, entry.typ)
	}

	switch entry.kind {
	case mutKind:
		v := entry.val.(T)
		e.recordObserve(a.loc, v, entry.eq)
		return v, nil

	case compKind:
		if !entry.hasRes {
			res, err := e.produce(a.loc)
			if err != nil {
				return zero, err
			}
			return res.(T), nil
		}

		prev := entry.res
		eq := entry.producer.ResEqual
		_, reproduced, err := e.changeProp(a.loc, prev, eq)
		if err != nil {
			return zero, err
		}

		entry = e.mustEntry(a.loc)
		res := entry.res.(T)
		if !reproduced {
			// changeProp certified cleanliness without re-running the
			// producer, so nobody has recorded this observation yet.
			e.recordObserve(a.loc, res, entry.producer.ResEqual)
		}
		return res, nil

	default:
		e.invariantf(false, "Force on node of unrecognized kind at loc %s", a.loc)
		return zero, nil
	}
}

// recordObserve appends an Observe edge to the current frame (if any)
// witnessing that it just read val from loc.
func (e *Engine) recordObserve(loc Loc, val any, eq func(a, b any) bool) {
	if len(e.stack) == 0 {
		return
	}
	e.pushSucc(Succ{Effect: Observe, Dep: producerDep{res: val, eq: eq}, Loc: loc})
}
