// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var invPP = NewProgPt("invariants.sum")

func invAdd(e *Engine, args [2]Art[int], _ struct{}) (int, error) {
	a, err := Force(e, args[0])
	if err != nil {
		return 0, err
	}
	b, err := Force(e, args[1])
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

func buildGraph(t *testing.T, e *Engine) (MutArt[int], MutArt[int], Art[int]) {
	t.Helper()
	x := Cell(e, e.NameOfString("x"), 1)
	y := Cell(e, e.NameOfString("y"), 2)
	s, err := Thunk(e, Nominal(e.NameOfString("s")), invPP, invAdd, [2]Art[int]{x.Art(), y.Art()}, struct{}{})
	require.NoError(t, err)
	return x, y, s
}

// Every recorded Succ on a node has a reciprocal Pred on
// its target, and vice versa.
func TestInvariantBidirectionalEdges(t *testing.T) {
	e := New()
	_, _, s := buildGraph(t, e)
	_, err := Force(e, s)
	require.NoError(t, err)

	sEntry := e.table[s.loc]
	for _, succ := range sEntry.succs {
		target := e.table[succ.Loc]
		require.True(t, target.preds.Contains(Pred{Effect: succ.Effect, Loc: s.loc}),
			"missing reciprocal pred for succ %s -> %s", s.loc, succ.Loc)
	}
	for _, pred := range sEntry.preds.Slice() {
		predEntry := e.table[pred.Loc]
		found := false
		for _, succ := range predEntry.succs {
			if succ.Effect == pred.Effect && succ.Loc == s.loc {
				found = true
			}
		}
		require.True(t, found, "missing reciprocal succ for pred %s -> %s", pred.Loc, s.loc)
	}
}

// Immediately after produce, every succ edge is clean.
func TestInvariantCleanAfterProduce(t *testing.T) {
	e := New()
	_, _, s := buildGraph(t, e)
	_, err := Force(e, s)
	require.NoError(t, err)

	entry := e.table[s.loc]
	for _, succ := range entry.succs {
		require.False(t, succ.Dirty)
	}
}

// The root loc never appears in any predecessor set.
func TestInvariantRootIsolation(t *testing.T) {
	e := New()
	_, _, s := buildGraph(t, e)
	_, err := Force(e, s)
	require.NoError(t, err)

	for _, entry := range e.table {
		for _, pred := range entry.preds.Slice() {
			require.NotEqual(t, e.root, pred.Loc)
		}
	}
}

// Dirtying twice in a row is the same as dirtying once.
func TestInvariantIdempotentDirtying(t *testing.T) {
	e := New()
	x, _, s := buildGraph(t, e)
	_, err := Force(e, s)
	require.NoError(t, err)

	e.doSet(x.loc, e.table[x.loc], 5)
	afterFirst := snapshotDirty(e)

	e.dirtyAlloc(x.loc)
	afterSecond := snapshotDirty(e)

	require.Equal(t, afterFirst, afterSecond)
}

func snapshotDirty(e *Engine) map[Loc][]bool {
	out := make(map[Loc][]bool)
	for loc, entry := range e.table {
		if entry.kind != compKind {
			continue
		}
		dirty := make([]bool, len(entry.succs))
		for i, s := range entry.succs {
			dirty[i] = s.Dirty
		}
		out[loc] = dirty
	}
	return out
}

// A handle aliased to a loc at the wrong type is rejected by Force
// and Set, never reinterpreted.
func TestTypeMismatchRejected(t *testing.T) {
	e := New()
	c := Cell(e, e.NameOfString("n"), 1)

	var misuse *MisuseError

	_, err := Force(e, Art[string]{loc: c.loc})
	require.ErrorAs(t, err, &misuse)

	err = Set(e, MutArt[string]{loc: c.loc}, "nope")
	require.ErrorAs(t, err, &misuse)
}

// Re-allocating a cell at a different value type aborts rather than
// reinterpreting the stored value.
func TestCellCrossTypeReallocationPanics(t *testing.T) {
	e := New()
	Cell(e, e.NameOfString("n"), 1)

	require.Panics(t, func() {
		Cell(e, e.NameOfString("n"), "oops")
	})
}

// Memoization equivalence: forcing a thunk after a Set returns the
// same value as a from-scratch evaluation over the current cells.
func TestMemoizationEquivalence(t *testing.T) {
	e := New()
	x, y, s := buildGraph(t, e)

	require.NoError(t, Set(e, x, 7))
	require.NoError(t, Set(e, y, 8))

	v, err := Force(e, s)
	require.NoError(t, err)
	require.Equal(t, 15, v)
}

// Dirty-then-clean: a Set that changes a cell's value forces at least
// one re-evaluation of a dependent thunk, and yields the freshly
// recomputed value.
func TestDirtyThenClean(t *testing.T) {
	e := New()
	x, _, s := buildGraph(t, e)

	_, err := Force(e, s)
	require.NoError(t, err)

	require.NoError(t, Set(e, x, 100))

	v, delta := Cnt(e, func(e *Engine) int {
		v, err := Force(e, s)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 102, v)
	require.GreaterOrEqual(t, delta.Eval, uint64(1))
}
