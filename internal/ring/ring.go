// Package ring implements the growable, circularly indexed slot array that
// backs the stack, queue and priority queue containers.
//
// A Buffer never reads or writes outside its logical window: logical
// position i lives at physical slot (head+i) mod capacity, and every
// operation goes through Physical to get there. Capacity only ever
// doubles, and a doubling re-linearizes the window so that it starts at
// physical slot 0 again.
//
// Buffer is not safe for concurrent use.
package ring

import (
	"math"

	"github.com/i5heu/GoRingKit/pkg/errdef"
)

// Buffer is a growable ring buffer of T.
type Buffer[T any] struct {
	slots []T
	head  uint64
	size  uint64
	limit uint64 // 0 means unbounded
}

// New allocates a Buffer with the given starting capacity. A non-zero
// limit caps how far the buffer may grow.
func New[T any](capacity, limit uint64) (*Buffer[T], error) {
	if capacity == 0 {
		return nil, errdef.New(errdef.CodeInvalidCapacity, "capacity must be positive")
	}
	if limit != 0 && capacity > limit {
		return nil, errdef.New(errdef.CodeInvalidCapacity, "capacity %d exceeds limit %d", capacity, limit)
	}
	return &Buffer[T]{
		slots: make([]T, capacity),
		limit: limit,
	}, nil
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() uint64 { return b.size }

// Cap returns the physical length of the slot array.
func (b *Buffer[T]) Cap() uint64 { return uint64(len(b.slots)) }

// Head returns the physical index of the first live element.
func (b *Buffer[T]) Head() uint64 { return b.head }

// Physical maps logical position i to its physical slot.
func (b *Buffer[T]) Physical(i uint64) uint64 {
	return (b.head + i) % uint64(len(b.slots))
}

// Tail returns the physical index of the last live element. The result is
// meaningless when the buffer is empty.
func (b *Buffer[T]) Tail() uint64 {
	return b.Physical(b.size - 1)
}

// At returns the element at logical position i. The caller guarantees
// i < Len().
func (b *Buffer[T]) At(i uint64) T {
	return b.slots[b.Physical(i)]
}

// Set overwrites the element at logical position i.
func (b *Buffer[T]) Set(i uint64, v T) {
	b.slots[b.Physical(i)] = v
}

// Reserve makes room for one more element, doubling the slot array when it
// is full. On failure the buffer is left exactly as it was.
func (b *Buffer[T]) Reserve() error {
	capacity := uint64(len(b.slots))
	if b.size < capacity {
		return nil
	}
	if capacity > math.MaxUint64/2 {
		return errdef.New(errdef.CodeOutOfMemory, "cannot grow past %d slots", capacity)
	}
	next := capacity * 2
	if b.limit != 0 && next > b.limit {
		return errdef.New(errdef.CodeOutOfMemory, "growing to %d slots exceeds limit %d", next, b.limit)
	}

	slots := make([]T, next)
	// Copy the wrapped window in at most two runs, starting at slot 0.
	n := copy(slots, b.slots[b.head:])
	if uint64(n) < b.size {
		copy(slots[n:], b.slots[:b.size-uint64(n)])
	}
	b.slots = slots
	b.head = 0
	return nil
}

// PushBack appends v after the tail.
func (b *Buffer[T]) PushBack(v T) error {
	if err := b.Reserve(); err != nil {
		return err
	}
	b.slots[b.Physical(b.size)] = v
	b.size++
	return nil
}

// Front returns the head element.
func (b *Buffer[T]) Front() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.slots[b.head], true
}

// Back returns the tail element.
func (b *Buffer[T]) Back() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.slots[b.Tail()], true
}

// PopFront removes and returns the head element.
func (b *Buffer[T]) PopFront() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	v := b.slots[b.head]
	b.slots[b.head] = zero
	b.head = (b.head + 1) % uint64(len(b.slots))
	b.size--
	return v, true
}

// PopBack removes and returns the tail element.
func (b *Buffer[T]) PopBack() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	tail := b.Tail()
	v := b.slots[tail]
	b.slots[tail] = zero
	b.size--
	return v, true
}

// InsertAt places v at logical position i (0 <= i <= Len()), moving every
// element from i through the tail one slot toward the tail.
func (b *Buffer[T]) InsertAt(i uint64, v T) error {
	if err := b.Reserve(); err != nil {
		return err
	}
	// Walk backward from the new tail so nothing is overwritten before it moves.
	for j := b.size; j > i; j-- {
		b.slots[b.Physical(j)] = b.slots[b.Physical(j-1)]
	}
	b.slots[b.Physical(i)] = v
	b.size++
	return nil
}

// RemoveAt removes the element at logical position i (i < Len()) and closes
// the gap by moving every later element one slot toward the head.
func (b *Buffer[T]) RemoveAt(i uint64) T {
	v := b.slots[b.Physical(i)]
	for j := i + 1; j < b.size; j++ {
		b.slots[b.Physical(j-1)] = b.slots[b.Physical(j)]
	}
	var zero T
	b.slots[b.Tail()] = zero
	b.size--
	return v
}

// Reset drops every element without shrinking the slot array.
func (b *Buffer[T]) Reset() {
	clear(b.slots)
	b.head = 0
	b.size = 0
}

// Release drops the slot array. A released buffer has zero capacity and
// must not be used again.
func (b *Buffer[T]) Release() {
	b.slots = nil
	b.head = 0
	b.size = 0
}
