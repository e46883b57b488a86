package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is append-only storage with 1-based indices; index 0 is reserved
// as "none".
type Arena[T any] struct {
	data []T
}

// NewArena allocates an arena whose backing slice has capacity capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// Get returns a pointer to the element at index, or nil for 0 / out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Callers must not modify it.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
