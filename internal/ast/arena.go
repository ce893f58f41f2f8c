// Package ast implements RC's abstract syntax tree: a tagged-variant
// arena rather than a heap of pointer-linked interfaces, so the rest of
// the semantic core can address any node by a small, copyable ID instead
// of a virtual-dispatch visitor.
package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is an index-addressed, append-only store of T. Index 0 is never
// handed out by Add, so the zero value of any ID type built on top of
// Arena can double as a "no node" sentinel.
type Arena[T any] struct {
	items []T
}

// NewArena constructs an arena with slot 0 reserved.
func NewArena[T any]() *Arena[T] {
	var zero T
	return &Arena[T]{items: []T{zero}}
}

// Add appends v and returns its 1-based index.
func (a *Arena[T]) Add(v T) uint32 {
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	a.items = append(a.items, v)
	return n
}

// Get returns the item at idx, or the zero value if idx is out of range
// or the sentinel 0.
func (a *Arena[T]) Get(idx uint32) T {
	if a == nil || idx == 0 || int(idx) >= len(a.items) {
		var zero T
		return zero
	}
	return a.items[idx]
}

// Set overwrites the item at idx in place, used when a node's payload is
// filled in after its ID has already been referenced elsewhere (e.g. a
// component's own ports referring back to the component type).
func (a *Arena[T]) Set(idx uint32, v T) {
	if idx == 0 || int(idx) >= len(a.items) {
		panic("ast: Set out of range")
	}
	a.items[idx] = v
}

// Len returns the number of real (non-sentinel) entries.
func (a *Arena[T]) Len() int { return len(a.items) - 1 }
