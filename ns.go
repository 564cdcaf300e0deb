// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

package dcg

// Ns runs body with the current frame's path temporarily extended by
// one child segment named n, restoring the previous path on every
// exit path — including a panic unwinding through body, via defer —
// so a namespace can never leak past its own scope.
func Ns[T any](e *Engine, n Name, body func(*Engine) T) T {
	top := len(e.stack) - 1
	saved := e.stack[top].path
	e.stack[top].path = e.internChildPath(saved, n)
	defer func() { e.stack[top].path = saved }()
	return body(e)
}
