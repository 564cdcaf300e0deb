// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

// symKind discriminates the closed set of name-symbol variants.
type symKind byte

const (
	symRoot symKind = iota
	symString
	symUsize
	symPair
	symForkL
	symForkR
)

// nameSym is the interned representation behind a Name. Two Names
// built from identical structure always point at the same *nameSym,
// so Name equality is ordinary Go pointer equality.
type nameSym struct {
	kind symKind
	str  string
	num  uint64
	pair [2]*nameSym
	fork *nameSym
	hash uint64
}

func (s *nameSym) text() string {
	switch s.kind {
	case symRoot:
		return "root"
	case symString:
		return fmt.Sprintf("%q", s.str)
	case symUsize:
		return fmt.Sprintf("%d", s.num)
	case symPair:
		return fmt.Sprintf("(%s . %s)", s.pair[0].text(), s.pair[1].text())
	case symForkL:
		return fmt.Sprintf("fork-l(%s)", s.fork.text())
	case symForkR:
		return fmt.Sprintf("fork-r(%s)", s.fork.text())
	default:
		return "?"
	}
}

// Name is a symbolic identifier used to give a thunk or cell a
// nominal allocation identity. Two Names are equal iff they were
// built from identical structure.
type Name struct {
	sym *nameSym
}

// IsZero reports whether n is the zero Name, never produced by any
// of the Name constructors below.
func (n Name) IsZero() bool { return n.sym == nil }

func (n Name) String() string {
	if n.sym == nil {
		return "<zero-name>"
	}
	return n.sym.text()
}

// symKey is the hash-consing key for nameSym; two keys compare equal
// iff the symbols they would build are structurally identical.
type symKey struct {
	kind symKind
	str  string
	num  uint64
	a, b *nameSym
}

func (e *Engine) internSym(k symKey, build func() *nameSym) *nameSym {
	if s, ok := e.nameIntern[k]; ok {
		return s
	}
	s := build()
	e.nameIntern[k] = s
	return s
}

// hashBytes derives a stable 64-bit hash for the lifetime of e.
func (e *Engine) hashBytes(b []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(e.hashSeed)
	_, _ = h.Write(b)
	return h.Sum64()
}

func (e *Engine) combineHash(a, b uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], a)
	binary.LittleEndian.PutUint64(buf[8:], b)
	return e.hashBytes(buf[:])
}

// magic salts distinguishing a fork's left and right child from one
// another and from a plain pair.
const (
	forkLSalt uint64 = 0x0a5a5a5a5a5a5a5a
	forkRSalt uint64 = 0x05a5a5a5a5a5a5a5
)

func (e *Engine) internRootName() Name {
	sym := e.internSym(symKey{kind: symRoot}, func() *nameSym {
		return &nameSym{kind: symRoot, hash: e.hashBytes([]byte("dcg:root"))}
	})
	return Name{sym: sym}
}

// NameOfString builds (or reuses) the Name for a given string.
func (e *Engine) NameOfString(s string) Name {
	sym := e.internSym(symKey{kind: symString, str: s}, func() *nameSym {
		return &nameSym{kind: symString, str: s, hash: e.hashBytes([]byte("s:" + s))}
	})
	return Name{sym: sym}
}

// NameOfUsize builds (or reuses) the Name for a given non-negative integer.
func (e *Engine) NameOfUsize(n uint64) Name {
	sym := e.internSym(symKey{kind: symUsize, num: n}, func() *nameSym {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		return &nameSym{kind: symUsize, num: n, hash: e.hashBytes(buf[:])}
	})
	return Name{sym: sym}
}

// NamePair builds (or reuses) the Name pairing a and b, in order.
func (e *Engine) NamePair(a, b Name) Name {
	sym := e.internSym(symKey{kind: symPair, a: a.sym, b: b.sym}, func() *nameSym {
		return &nameSym{kind: symPair, pair: [2]*nameSym{a.sym, b.sym}, hash: e.combineHash(a.sym.hash, b.sym.hash)}
	})
	return Name{sym: sym}
}

// NameFork splits n deterministically into two distinct descendant
// Names; repeated forks of the same n always yield the same pair.
func (e *Engine) NameFork(n Name) (Name, Name) {
	left := e.internSym(symKey{kind: symForkL, a: n.sym}, func() *nameSym {
		return &nameSym{kind: symForkL, fork: n.sym, hash: e.combineHash(n.sym.hash, forkLSalt)}
	})
	right := e.internSym(symKey{kind: symForkR, a: n.sym}, func() *nameSym {
		return &nameSym{kind: symForkR, fork: n.sym, hash: e.combineHash(n.sym.hash, forkRSalt)}
	})
	return Name{sym: left}, Name{sym: right}
}
