// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"hash/maphash"

	"github.com/bits-and-blooms/bitset"

	"github.com/demandgraph/dcg/internal/engineconfig"
	"github.com/demandgraph/dcg/internal/enginelog"
	enginezap "github.com/demandgraph/dcg/internal/enginelog/zap"
)

// Delta is the difference between two Engine counter snapshots,
// returned by Cnt to measure exactly how much work a body performed.
type Delta struct {
	Eval       uint64
	ChangeProp uint64
	Dirty      uint64
}

func (a Delta) sub(b Delta) Delta {
	return Delta{Eval: a.Eval - b.Eval, ChangeProp: a.ChangeProp - b.ChangeProp, Dirty: a.Dirty - b.Dirty}
}

// Engine owns a single demanded computation graph: its node table,
// its hash-consed Name/Path universes, and the production stack used
// while a thunk runs. An Engine is not safe for concurrent use; it is
// meant to be driven synchronously by a single goroutine, the same way
// the computation it manages is synchronous.
type Engine struct {
	root     Loc
	rootName Name

	table    map[Loc]*tableEntry
	nextSlot uint
	inFlight *bitset.BitSet

	stack []frame
	cnt   Delta

	log      enginelog.Logger
	hashSeed maphash.Seed

	nameIntern map[symKey]*nameSym
	pathIntern map[pathKey]*pathNode
}

// Option configures an Engine at construction time.
type Option func(*engineSettings)

type engineSettings struct {
	logger    enginelog.Logger
	tableHint int
}

// WithLogger injects a structured logger; the default is a no-op.
func WithLogger(l enginelog.Logger) Option {
	return func(s *engineSettings) { s.logger = l }
}

// WithTableHint pre-sizes the node table's backing map. It bounds
// nothing: the table still grows monotonically for the engine's
// lifetime, since unreachable nodes are never collected.
func WithTableHint(n int) Option {
	return func(s *engineSettings) { s.tableHint = n }
}

// WithConfig applies an engineconfig.EngineConfig: it builds a zap
// logger from cfg.Logger and applies cfg.TableHint. Options passed
// after WithConfig override what it set.
func WithConfig(cfg engineconfig.EngineConfig) Option {
	return func(s *engineSettings) {
		if cfg.TableHint > 0 {
			s.tableHint = cfg.TableHint
		}
		if zl, err := enginezap.Build(cfg.Logger); err == nil {
			s.logger = enginezap.NewAdapter(zl)
		}
	}
}

// New builds an Engine ready to accept Cell/Thunk allocations at its
// outer (root) frame.
func New(opts ...Option) *Engine {
	s := engineSettings{logger: enginelog.NopLogger{}}
	for _, o := range opts {
		o(&s)
	}

	e := &Engine{
		table:      make(map[Loc]*tableEntry, s.tableHint),
		inFlight:   bitset.New(0),
		log:        s.logger,
		hashSeed:   maphash.MakeSeed(),
		nameIntern: make(map[symKey]*nameSym),
		pathIntern: make(map[pathKey]*pathNode),
	}
	e.rootName = e.internRootName()
	e.root = e.locOf(nil, artID{kind: nominalKind, nominal: e.rootName})
	e.stack = []frame{{loc: e.root, path: nil}}
	return e
}

// Cnt runs body and reports the counter deltas it incurred: how many
// producers it ran, how many change-propagation checks it performed,
// and how many dirty-propagation steps it triggered.
func Cnt[T any](e *Engine, body func(*Engine) T) (T, Delta) {
	before := e.cnt
	res := body(e)
	return res, e.cnt.sub(before)
}

func (e *Engine) assignSlot() uint {
	slot := e.nextSlot
	e.nextSlot++
	return slot
}
