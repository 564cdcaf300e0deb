// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	dcg "github.com/demandgraph/dcg"
)

var addPP = dcg.NewProgPt("test.add")

func add1(e *dcg.Engine, c dcg.Art[int], _ struct{}) (int, error) {
	v, err := dcg.Force(e, c)
	if err != nil {
		return 0, err
	}
	return v + 1, nil
}

func add2(e *dcg.Engine, args [2]dcg.Art[int], _ struct{}) (int, error) {
	a, err := dcg.Force(e, args[0])
	if err != nil {
		return 0, err
	}
	b, err := dcg.Force(e, args[1])
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

// Forcing a Put value never touches the table and
// never runs a producer.
func TestPutConstantNoEval(t *testing.T) {
	e := dcg.New()
	dcg.Cell(e, e.NameOfString("A"), 3)

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, dcg.Put(e, 7))
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 7, v)
	require.Equal(t, uint64(0), delta.Eval)
}

// A thunk observing a single cell
// re-evaluates exactly once per actual value change.
func TestOneLevelDependency(t *testing.T) {
	e := dcg.New()
	c := dcg.Cell(e, e.NameOfString("A"), 10)
	bpp := dcg.NewProgPt("test.s2")

	th, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("B")), bpp, add1, c.Art(), struct{}{})
	require.NoError(t, err)

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, th)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 11, v)
	require.Equal(t, uint64(1), delta.Eval)

	v, delta = dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, th)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 11, v)
	require.Equal(t, uint64(0), delta.Eval, "re-forcing an unchanged thunk must not re-run the producer")

	require.NoError(t, dcg.Set(e, c, 20))

	v, delta = dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, th)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 21, v)
	require.Equal(t, uint64(1), delta.Eval)
}

func buildTwoLevel(t *testing.T, e *dcg.Engine) (dcg.MutArt[int], dcg.MutArt[int], dcg.MutArt[int], dcg.Art[int], dcg.Art[int]) {
	x := dcg.Cell(e, e.NameOfString("x"), 1)
	y := dcg.Cell(e, e.NameOfString("y"), 2)
	z := dcg.Cell(e, e.NameOfString("z"), 3)

	s, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("s")), addPP, add2, [2]dcg.Art[int]{x.Art(), y.Art()}, struct{}{})
	require.NoError(t, err)
	r, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("r")), addPP, add2, [2]dcg.Art[int]{s, z.Art()}, struct{}{})
	require.NoError(t, err)
	return x, y, z, s, r
}

// Setting a cell to its
// own value dirties nothing and costs no re-evaluation.
func TestSetSameValueShortCircuits(t *testing.T) {
	e := dcg.New()
	x, _, _, _, r := buildTwoLevel(t, e)

	v, err := dcg.Force(e, r)
	require.NoError(t, err)
	require.Equal(t, 6, v)

	require.NoError(t, dcg.Set(e, x, 1))

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, r)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 6, v)
	require.Equal(t, uint64(0), delta.Eval)
}

// Changing z dirties r's direct Observe edge
// but not s, so only r re-evaluates.
func TestInvalidationSkipsCleanSubgraph(t *testing.T) {
	e := dcg.New()
	_, _, z, _, r := buildTwoLevel(t, e)

	v, err := dcg.Force(e, r)
	require.NoError(t, err)
	require.Equal(t, 6, v)

	require.NoError(t, dcg.Set(e, z, 30))

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, r)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 33, v)
	require.Equal(t, uint64(1), delta.Eval)
}

// Allocating the same
// nominal thunk again with a different cell wires in a new
// dependency and forces a recompute.
func TestNominalReallocationNewArg(t *testing.T) {
	e := dcg.New()
	c1 := dcg.Cell(e, e.NameOfString("c1"), 1)
	c2 := dcg.Cell(e, e.NameOfString("c2"), 100)
	pp := dcg.NewProgPt("test.s5")

	th, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("t")), pp, add1, c1.Art(), struct{}{})
	require.NoError(t, err)
	v, err := dcg.Force(e, th)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	th2, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("t")), pp, add1, c2.Art(), struct{}{})
	require.NoError(t, err)

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, th2)
		require.NoError(t, err)
		return v
	})
	require.Equal(t, 101, v)
	require.Equal(t, uint64(1), delta.Eval)
}

// Two Structural thunk allocations with an
// equal (prog point, argument) pair resolve to the same node.
func TestStructuralSharing(t *testing.T) {
	e := dcg.New()
	c := dcg.Cell(e, e.NameOfString("c"), 5)
	pp := dcg.NewProgPt("test.s6")

	a, err := dcg.Thunk(e, dcg.Structural(), pp, add1, c.Art(), struct{}{})
	require.NoError(t, err)
	b, err := dcg.Thunk(e, dcg.Structural(), pp, add1, c.Art(), struct{}{})
	require.NoError(t, err)
	require.Equal(t, a.Loc(), b.Loc())

	_, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, a)
		require.NoError(t, err)
		v2, err := dcg.Force(e, b)
		require.NoError(t, err)
		require.Equal(t, v, v2)
		return v
	})
	require.Equal(t, uint64(1), delta.Eval, "the second structural allocation must reuse the first node")
}

func TestPutRoundTrip(t *testing.T) {
	e := dcg.New()
	v, err := dcg.Force(e, dcg.Put(e, "hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestNsRestoresPath(t *testing.T) {
	e := dcg.New()
	before := e.CurrentPath()
	dcg.Ns(e, e.NameOfString("scope"), func(e *dcg.Engine) struct{} {
		return struct{}{}
	})
	require.Equal(t, before, e.CurrentPath())
}

func TestNameForkDistinct(t *testing.T) {
	e := dcg.New()
	n := e.NameOfString("fork-me")
	l, r := e.NameFork(n)
	require.NotEqual(t, l, r)

	l2, r2 := e.NameFork(n)
	require.Equal(t, l, l2)
	require.Equal(t, r, r2)
}

func TestSetOutsideProductionOnly(t *testing.T) {
	e := dcg.New()
	c := dcg.Cell(e, e.NameOfString("c"), 1)
	pp := dcg.NewProgPt("test.setmisuse")

	bad, err := dcg.Thunk(e, dcg.Nominal(e.NameOfString("bad")), pp,
		func(e *dcg.Engine, arg dcg.Art[int], _ struct{}) (int, error) {
			return 0, dcg.Set(e, c, 99)
		}, c.Art(), struct{}{})
	require.NoError(t, err)

	_, err = dcg.Force(e, bad)
	require.Error(t, err)
	var misuse *dcg.MisuseError
	require.ErrorAs(t, err, &misuse)
}

func TestThunkMismatchedProgPoint(t *testing.T) {
	e := dcg.New()
	c := dcg.Cell(e, e.NameOfString("c"), 1)
	name := e.NameOfString("shared")

	_, err := dcg.Thunk(e, dcg.Nominal(name), dcg.NewProgPt("pp.a"), add1, c.Art(), struct{}{})
	require.NoError(t, err)

	_, err = dcg.Thunk(e, dcg.Nominal(name), dcg.NewProgPt("pp.b"), add1, c.Art(), struct{}{})
	require.Error(t, err)
	var misuse *dcg.MisuseError
	require.ErrorAs(t, err, &misuse)
}
