// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"reflect"

	set "github.com/hashicorp/go-set/v3"
)

// nodeKind discriminates the closed set of node variants: Pure (an
// inline, never-reallocated value reachable only via a Put-produced
// Art, so never actually stored in the table), Mut (a cell) and Comp
// (a memoizing thunk).
type nodeKind byte

const (
	mutKind nodeKind = iota
	compKind
)

// tableEntry is the heterogeneous node-table record. Mut fields
// (val/eq) and Comp fields (producer/succs/res/hasRes) are disjoint;
// kind says which half is live. typ is asserted against every Force
// and Set call to turn an accidental type mismatch into a returned
// *MisuseError instead of an unchecked reinterpretation.
type tableEntry struct {
	slot uint
	kind nodeKind
	typ  reflect.Type

	// Mut
	val any
	eq  func(a, b any) bool

	// Comp
	producer Producer
	succs    []Succ
	res      any
	hasRes   bool

	preds *set.Set[Pred]
}

func equalAny[T comparable](a, b any) bool {
	return a.(T) == b.(T)
}
