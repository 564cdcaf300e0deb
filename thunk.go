// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"fmt"
	"reflect"

	set "github.com/hashicorp/go-set/v3"

	"github.com/demandgraph/dcg/internal/enginelog"
)

// Thunk allocates a suspended, memoizing computation per choice:
//
//   - Eager runs fn immediately and returns an inline Art; no node is
//     created, and the call is invisible to change propagation.
//   - Structural allocates (or reuses) a node keyed by a hash of pp and
//     arg: an equal (pp, arg) pair from an earlier Structural call
//     returns the existing node untouched.
//   - Nominal allocates (or updates) a node keyed by choice's Name. A
//     second call at the same Name with an equal argument is a no-op;
//     with a different argument it clears the node's cached result and
//     dirties its observers; at a different program point it is a
//     reported API misuse, since the node's result type is no longer
//     known to match Res.
func Thunk[Arg comparable, Spurious any, Res comparable](
	e *Engine,
	choice ArtIdChoice,
	pp ProgPt,
	fn func(*Engine, Arg, Spurious) (Res, error),
	arg Arg,
	spurious Spurious,
) (Art[Res], error) {
	switch choice.kind {
	case choiceEager:
		res, err := fn(e, arg, spurious)
		if err != nil {
			return Art[Res]{}, err
		}
		return Art[Res]{isInline: true, inline: res}, nil

	case choiceStructural:
		return thunkStructural(e, pp, fn, arg, spurious)

	default: // choiceNominal
		return thunkNominal(e, choice.name, pp, fn, arg, spurious)
	}
}

func hashArg(e *Engine, pp ProgPt, arg any) uint64 {
	ppHash := e.hashBytes([]byte(pp.Symbol))
	argHash := e.hashBytes([]byte(fmt.Sprintf("%#v", arg)))
	return e.combineHash(ppHash, argHash)
}

func thunkStructural[Arg comparable, Spurious any, Res comparable](
	e *Engine, pp ProgPt, fn func(*Engine, Arg, Spurious) (Res, error), arg Arg, spurious Spurious,
) (Art[Res], error) {
	id := artID{kind: structuralKind, structural: hashArg(e, pp, arg)}
	loc := e.locOf(e.bottomPath(), id)

	if _, exists := e.table[loc]; exists {
		e.pushSucc(Succ{Effect: Allocate, Dep: noDependency{}, Loc: loc})
		return Art[Res]{loc: loc}, nil
	}

	producer := &appProducer[Arg, Spurious, Res]{pp: pp, fn: fn, arg: arg, spurious: spurious}
	e.table[loc] = &tableEntry{
		kind:     compKind,
		typ:      reflect.TypeFor[Res](),
		producer: producer,
		preds:    set.New[Pred](0),
		slot:     e.assignSlot(),
	}
	e.log.Debug("alloc structural thunk", enginelog.F("loc", loc.String()), enginelog.F("prog_pt", pp.Symbol))
	e.pushSucc(Succ{Effect: Allocate, Dep: noDependency{}, Loc: loc})
	return Art[Res]{loc: loc}, nil
}

func thunkNominal[Arg comparable, Spurious any, Res comparable](
	e *Engine, n Name, pp ProgPt, fn func(*Engine, Arg, Spurious) (Res, error), arg Arg, spurious Spurious,
) (Art[Res], error) {
	loc := e.locOf(e.bottomPath(), artID{kind: nominalKind, nominal: n})

	entry, exists := e.table[loc]
	dirty := false

	if !exists {
		producer := &appProducer[Arg, Spurious, Res]{pp: pp, fn: fn, arg: arg, spurious: spurious}
		entry = &tableEntry{
			kind:     compKind,
			typ:      reflect.TypeFor[Res](),
			producer: producer,
			preds:    set.New[Pred](0),
			slot:     e.assignSlot(),
		}
		e.table[loc] = entry
		e.log.Debug("alloc nominal thunk", enginelog.F("loc", loc.String()), enginelog.F("prog_pt", pp.Symbol))
	} else {
		if entry.kind != compKind {
			return Art[Res]{}, misusef("nominal thunk %s re-allocated over a non-thunk node", n)
		}
		if entry.producer.ProgPt() != pp {
			return Art[Res]{}, misusef("nominal thunk %s re-allocated at a different program point (%s, was %s)", n, pp, entry.producer.ProgPt())
		}
		existing, ok := entry.producer.(*appProducer[Arg, Spurious, Res])
		if !ok {
			e.invariantf(false, "program point %s implies mismatched types at loc %s", pp, loc)
		}
		if existing.arg != arg {
			existing.arg = arg
			existing.spurious = spurious
			entry.res = nil
			entry.hasRes = false
			dirty = true
		}
	}

	if dirty {
		e.dirtyAlloc(loc)
	}
	e.pushSucc(Succ{Effect: Allocate, Dep: allocDependency{val: arg, eq: equalAny[Arg]}, Loc: loc})
	return Art[Res]{loc: loc}, nil
}
