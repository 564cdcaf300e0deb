// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

// Package dcg implements a Demanded Computation Graph (DCG): an
// incremental computation engine in the Adapton family.
//
// Client code expresses computations as mutable cells and suspended,
// memoizing thunks keyed by symbolic names. After a cell changes, the
// engine re-derives only the thunks whose results could actually be
// affected, by propagating a dirty flag along recorded dependency
// edges and selectively re-running producers — rather than
// re-evaluating the whole program from scratch.
//
// The engine is single-threaded and synchronous: forcing a thunk is
// an ordinary (possibly recursive) function call, with no concurrency,
// no persistence, and no garbage collection of unreachable nodes. A
// single Engine owns a node table keyed by Loc (a path plus an
// allocation identity, structural or nominal) and a stack of
// in-progress production frames used to record the dependency edges a
// thunk demands while it runs.
//
// See the package-level operations New, Cell, Set, Thunk, Force and
// Ns for the client-facing API, and Dump for introspecting the graph
// while debugging.
package dcg
