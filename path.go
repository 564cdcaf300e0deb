// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

// pathNode is the hash-consed representation behind a namespace path.
// A nil *pathNode denotes the empty path used at the root frame; each
// non-nil node extends its parent by one Name, mirroring the
// Empty/Child path variants of the data model.
type pathNode struct {
	parent *pathNode
	name   Name
	hash   uint64
}

func (p *pathNode) pathHash() uint64 {
	if p == nil {
		return 0
	}
	return p.hash
}

func (p *pathNode) String() string {
	if p == nil {
		return "/"
	}
	return p.parent.String() + p.name.String() + "/"
}

// pathKey is the hash-consing key for pathNode.
type pathKey struct {
	parent *pathNode
	name   *nameSym
}

// internChildPath returns the interned path extending parent with n,
// allocating it only the first time this (parent, n) pair is seen.
func (e *Engine) internChildPath(parent *pathNode, n Name) *pathNode {
	k := pathKey{parent: parent, name: n.sym}
	if p, ok := e.pathIntern[k]; ok {
		return p
	}
	p := &pathNode{parent: parent, name: n, hash: e.combineHash(parent.pathHash(), n.sym.hash)}
	e.pathIntern[k] = p
	return p
}
