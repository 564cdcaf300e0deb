// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"reflect"

	set "github.com/hashicorp/go-set/v3"

	"github.com/demandgraph/dcg/internal/enginelog"
)

// Cell allocates (or updates, if n is already a cell's Loc) a mutable
// node holding v, and records an Allocate edge from the current
// frame to it.
func Cell[T comparable](e *Engine, n Name, v T) MutArt[T] {
	loc := e.locOf(e.bottomPath(), artID{kind: nominalKind, nominal: n})

	entry, exists := e.table[loc]
	if exists {
		e.invariantf(entry.kind == mutKind, "cell %s re-allocated over a non-cell node", n)
		if entry.typ != reflect.TypeFor[T]() {
			// Cell has no error path, so a cross-type re-allocation
			// aborts the same way an engine invariant does.
			panic(misusef("cell %s re-allocated at type %s, but holds %s", n, reflect.TypeFor[T](), entry.typ))
		}
		e.doSet(loc, entry, v)
	} else {
		entry = &tableEntry{
			kind:  mutKind,
			typ:   reflect.TypeFor[T](),
			val:   v,
			eq:    equalAny[T],
			preds: set.New[Pred](0),
			slot:  e.assignSlot(),
		}
		e.table[loc] = entry
		e.log.Debug("alloc cell", enginelog.F("loc", loc.String()))
	}

	e.pushSucc(Succ{Effect: Allocate, Dep: allocDependency{val: v, eq: equalAny[T]}, Loc: loc})
	return MutArt[T]{loc: loc}
}

// doSet updates entry's value if v differs from what it already
// holds, dirtying every observer transitively.
func (e *Engine) doSet(loc Loc, entry *tableEntry, v any) {
	if entry.eq(entry.val, v) {
		return
	}
	entry.val = v
	e.log.Debug("set", enginelog.F("loc", loc.String()))
	e.dirtyAlloc(loc)
}

// Set updates the cell m holds to v. It may only be called at the
// outer (non-nested) level: calling it from inside a running producer
// is an API misuse, since the producer's own recorded edges would
// become stale mid-production.
func Set[T comparable](e *Engine, m MutArt[T], v T) error {
	if len(e.stack) != 1 {
		return misusef("Set called while a producer is running; Set is only valid at the outer level")
	}
	entry, ok := e.table[m.loc]
	if !ok {
		e.invariantf(false, "Set on dangling loc %s", m.loc)
	}
	if entry.kind != mutKind {
		return misusef("Set on loc %s, which is not a cell", m.loc)
	}
	if entry.typ != reflect.TypeFor[T]() {
		return misusef("Set on loc %s with type %s, but the cell holds %s", m.loc, reflect.TypeFor[T](), entry.typ)
	}
	e.doSet(m.loc, entry, v)
	return nil
}
