// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

// Art is a handle to a value that is either carried inline (produced
// by Put, or by an Eager Thunk) or backed by a node in the table
// (produced by a Structural or Nominal Thunk). Force resolves either
// form to a concrete T.
type Art[T comparable] struct {
	isInline bool
	inline   T
	loc      Loc
}

// Put wraps v as an inline Art: no node is allocated, and Forcing it
// never records a dependency edge.
func Put[T comparable](_ *Engine, v T) Art[T] {
	return Art[T]{isInline: true, inline: v}
}

// Loc exposes the backing Loc for diagnostics; the zero Loc for an
// inline Art.
func (a Art[T]) Loc() Loc { return a.loc }

// MutArt is a handle to a cell: a Loc known to identify a Mut node,
// used by Set to locate the node to update.
type MutArt[T comparable] struct {
	loc Loc
}

// Loc exposes the backing Loc for diagnostics.
func (m MutArt[T]) Loc() Loc { return m.loc }

// Art converts m into the Art a Force call accepts, without forcing
// it: reading a cell and reading a thunk's result go through the same
// path once both are resolved to a Loc.
func (m MutArt[T]) Art() Art[T] {
	return Art[T]{loc: m.loc}
}
