// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"fmt"
	"io"
)

// Dump writes one line per node in e's table to w: its Loc, variant,
// whether a Comp node has a cached result, and its successor edges
// with their dirty flags. It takes no lock and is meant for debugging
// a single-threaded engine between operations.
func (e *Engine) Dump(w io.Writer) error {
	for loc, entry := range e.table {
		switch entry.kind {
		case mutKind:
			if _, err := fmt.Fprintf(w, "MUT  %s val=%v preds=%d\n", loc, entry.val, entry.preds.Size()); err != nil {
				return err
			}
		case compKind:
			if _, err := fmt.Fprintf(w, "COMP %s pp=%s res=%s preds=%d\n",
				loc, entry.producer.ProgPt(), dumpRes(entry), entry.preds.Size()); err != nil {
				return err
			}
			for _, s := range entry.succs {
				if _, err := fmt.Fprintf(w, "       -> %s %s dirty=%t\n", s.Effect, s.Loc, s.Dirty); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func dumpRes(entry *tableEntry) string {
	if !entry.hasRes {
		return "<none>"
	}
	return fmt.Sprintf("%v", entry.res)
}
