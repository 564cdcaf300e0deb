// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

import (
	"fmt"

	"github.com/demandgraph/dcg/internal/enginelog"
)

// InvariantError reports a violated internal invariant: a bug in the
// engine itself (or in a Producer that breaks the single-producer
// contract, e.g. by forcing its own in-progress Loc). It is never
// meant to be recovered from; callers that want a readable crash
// report should recover it only at a process boundary.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "dcg: invariant violation: " + e.Msg }

// MisuseError reports a client-triggerable API misuse: a type
// mismatch at a Loc, a nominal thunk re-allocated at a different
// program point, or Set called while the frame stack is not at the
// outer level.
type MisuseError struct {
	Msg string
}

func (e *MisuseError) Error() string { return "dcg: " + e.Msg }

func misusef(format string, args ...any) *MisuseError {
	return &MisuseError{Msg: fmt.Sprintf(format, args...)}
}

// invariantf panics with an *InvariantError if cond is false, after
// logging the violation at Error level.
func (e *Engine) invariantf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	e.log.Error("invariant violation", enginelog.F("detail", msg))
	panic(&InvariantError{Msg: msg})
}
