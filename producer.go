// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

// ProgPt identifies the program point (the source-level call site, in
// effect) that produces a computation node. Two producers compare
// equal as the "same computation" only if their ProgPt values are
// equal; this is what a nominal re-allocation checks to decide
// between an ordinary update and a program-point-mismatch misuse.
type ProgPt struct {
	Symbol string
}

// NewProgPt builds a ProgPt from a caller-chosen symbolic name. Two
// calls to Thunk that pass equal ProgPts are asserting that they run
// the same fn.
func NewProgPt(symbol string) ProgPt { return ProgPt{Symbol: symbol} }

func (p ProgPt) String() string { return p.Symbol }

// Producer is the type-erased form of a computation node's closure,
// stored in the node table once its Arg/Spurious/Res type parameters
// have gone out of scope.
type Producer interface {
	ProgPt() ProgPt
	Produce(e *Engine) (any, error)
	Copy() Producer

	// ResEqual compares two produced results for equality, used to
	// build the ProducerDep recorded against this node once it has a
	// result. It is asked of the producer, rather than hard-coded on
	// the node, because only the producer still remembers Res's
	// concrete type.
	ResEqual(a, b any) bool
}

// appProducer is the concrete Producer behind Thunk: a prog point, a
// re-usable function value, and the argument/spurious data it closes
// over, all still statically typed until boxed into the Producer
// interface.
type appProducer[Arg comparable, Spurious any, Res comparable] struct {
	pp       ProgPt
	fn       func(*Engine, Arg, Spurious) (Res, error)
	arg      Arg
	spurious Spurious
}

func (p *appProducer[Arg, Spurious, Res]) ProgPt() ProgPt { return p.pp }

func (p *appProducer[Arg, Spurious, Res]) Produce(e *Engine) (any, error) {
	// Counts the run itself, so a failing producer still counts as an
	// evaluation.
	e.cnt.Eval++
	res, err := p.fn(e, p.arg, p.spurious)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *appProducer[Arg, Spurious, Res]) Copy() Producer {
	cp := *p
	return &cp
}

func (p *appProducer[Arg, Spurious, Res]) ResEqual(a, b any) bool {
	return equalAny[Res](a, b)
}

// Dep is the type-erased witness a Succ edge carries to decide,
// during change propagation, whether its target's visible value
// changed relative to when the edge was recorded.
type Dep interface {
	ChangeProp(e *Engine, loc Loc) (changed bool, err error)
}

// noDependency witnesses the Allocate edge to a structurally
// allocated thunk: such an edge only records structural sharing and
// never itself triggers a change.
type noDependency struct{}

func (noDependency) ChangeProp(*Engine, Loc) (bool, error) { return false, nil }

// allocDependency witnesses an Allocate edge to a cell or to a
// nominally allocated thunk, carrying the allocated value: conservatively
// always reports changed, since comparing the allocated value against
// its current value would require tracking it across re-allocation.
// A sharper rule is possible (compare allocated-at-time value against
// current) but is not required by any tested property.
type allocDependency struct {
	val any
	eq  func(a, b any) bool
}

func (allocDependency) ChangeProp(*Engine, Loc) (bool, error) { return true, nil }

// producerDep witnesses an Observe edge: the value observed when the
// edge was recorded, plus the equality used to decide whether the
// target's current value differs from it.
type producerDep struct {
	res any
	eq  func(a, b any) bool
}

func (d producerDep) ChangeProp(e *Engine, loc Loc) (bool, error) {
	changed, _, err := e.changeProp(loc, d.res, d.eq)
	return changed, err
}

// choiceKind discriminates how Thunk decides the Loc of the node it
// allocates (or whether it allocates one at all).
type choiceKind byte

const (
	choiceEager choiceKind = iota
	choiceStructural
	choiceNominal
)

// ArtIdChoice selects a Thunk's allocation strategy.
type ArtIdChoice struct {
	kind choiceKind
	name Name
}

// Eager runs the thunk's body immediately and returns an inline-value
// Art; no node is allocated and no memoization happens.
func Eager() ArtIdChoice { return ArtIdChoice{kind: choiceEager} }

// Structural allocates (or reuses) a node keyed by a hash of the
// program point and argument: calling Thunk again with an equal
// argument from the same program point returns the existing node.
func Structural() ArtIdChoice { return ArtIdChoice{kind: choiceStructural} }

// Nominal allocates (or updates) a node keyed by n: the node's
// identity survives across changes to the argument, enabling
// in-place update of an existing dependency graph.
func Nominal(n Name) ArtIdChoice { return ArtIdChoice{kind: choiceNominal, name: n} }
