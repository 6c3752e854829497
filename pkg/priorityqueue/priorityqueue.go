// Package priorityqueue provides a growable priority queue kept as a sorted
// ring buffer.
//
// Elements are stored head to tail in non-decreasing priority order, so
// Peek and Pop are O(1) at the head while Push and RemoveAt shift elements
// inside the window and cost O(n).
//
// Ties: a pushed element goes in front of every element already queued with
// the same priority, so among equal priorities the most recent push pops
// first.
package priorityqueue

import (
	"fmt"

	"github.com/i5heu/GoRingKit/internal/container"
	"github.com/i5heu/GoRingKit/internal/ring"
	"github.com/i5heu/GoRingKit/pkg/errdef"
)

// Option configures a priority queue at creation time.
type Option = container.Option

// WithMaxCapacity bounds how far the priority queue may grow.
var WithMaxCapacity = container.WithMaxCapacity

var _ container.PriorityValidationInterface[int] = (*PriorityQueue[int])(nil)

// item is one slot: the caller's value and its ordering key.
type item[T any] struct {
	val      T
	priority int
}

// PriorityQueue pops the element with the lowest priority first. Index 0
// always refers to the head.
type PriorityQueue[T any] struct {
	buf       *ring.Buffer[item[T]]
	destroyed bool
}

// New creates an empty priority queue with room for capacity elements.
func New[T any](capacity uint64, opts ...Option) (*PriorityQueue[T], error) {
	o := container.Apply(opts...)
	buf, err := ring.New[item[T]](capacity, o.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return &PriorityQueue[T]{buf: buf}, nil
}

func (pq *PriorityQueue[T]) alive() error {
	if pq.destroyed {
		return errdef.ErrDestroyed
	}
	return nil
}

// Push inserts val in front of the first element whose priority is greater
// than or equal to priority.
func (pq *PriorityQueue[T]) Push(val T, priority int) error {
	if err := pq.alive(); err != nil {
		return err
	}
	pos := uint64(0)
	for pos < pq.buf.Len() && pq.buf.At(pos).priority < priority {
		pos++
	}
	return pq.buf.InsertAt(pos, item[T]{val: val, priority: priority})
}

// Peek returns the lowest-priority element without removing it.
func (pq *PriorityQueue[T]) Peek() (T, bool) {
	it, ok := pq.buf.Front()
	return it.val, ok
}

// PeekPriority returns the priority of the head element.
func (pq *PriorityQueue[T]) PeekPriority() (int, bool) {
	it, ok := pq.buf.Front()
	return it.priority, ok
}

// Pop removes the head element and returns it.
func (pq *PriorityQueue[T]) Pop() (T, error) {
	if err := pq.alive(); err != nil {
		var zero T
		return zero, err
	}
	it, ok := pq.buf.PopFront()
	if !ok {
		return it.val, errdef.ErrEmpty
	}
	return it.val, nil
}

// At returns the element at logical position index together with its
// priority.
func (pq *PriorityQueue[T]) At(index uint64) (T, int, error) {
	if err := pq.checkIndex(index); err != nil {
		var zero T
		return zero, 0, err
	}
	it := pq.buf.At(index)
	return it.val, it.priority, nil
}

// RemoveAt removes the element at logical position index. The survivors keep
// their order, so the queue stays sorted.
func (pq *PriorityQueue[T]) RemoveAt(index uint64) (T, error) {
	var zero T
	if err := pq.checkIndex(index); err != nil {
		return zero, err
	}
	return pq.buf.RemoveAt(index).val, nil
}

func (pq *PriorityQueue[T]) checkIndex(index uint64) error {
	if err := pq.alive(); err != nil {
		return err
	}
	size := pq.buf.Len()
	if size == 0 {
		return errdef.ErrEmpty
	}
	if index >= size {
		return errdef.New(errdef.CodeOutOfRange, "index %d, size %d", index, size)
	}
	return nil
}

// Find returns the index of the first element, head first, matching match.
func (pq *PriorityQueue[T]) Find(match func(T) bool) (uint64, bool) {
	for i := uint64(0); i < pq.buf.Len(); i++ {
		if match(pq.buf.At(i).val) {
			return i, true
		}
	}
	return 0, false
}

// Each calls fn for every element in priority order and stops at the first
// error.
func (pq *PriorityQueue[T]) Each(fn func(index uint64, val T, priority int) error) error {
	for i := uint64(0); i < pq.buf.Len(); i++ {
		it := pq.buf.At(i)
		if err := fn(i, it.val, it.priority); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Drain empties the queue and returns its elements in priority order.
func (pq *PriorityQueue[T]) Drain() []T {
	out := make([]T, 0, pq.buf.Len())
	for {
		it, ok := pq.buf.PopFront()
		if !ok {
			return out
		}
		out = append(out, it.val)
	}
}

// Clear pops every element in priority order, handing each to dispose. It
// stops at the first dispose failure; the failed element is gone, the ones
// behind it stay. The returned count is the number of elements disposed
// successfully.
func (pq *PriorityQueue[T]) Clear(dispose func(T) error) (uint64, error) {
	if err := pq.alive(); err != nil {
		return 0, err
	}
	if dispose == nil {
		n := pq.buf.Len()
		pq.buf.Reset()
		return n, nil
	}
	var n uint64
	for {
		it, ok := pq.buf.PopFront()
		if !ok {
			return n, nil
		}
		if err := dispose(it.val); err != nil {
			return n, errdef.Wrap(errdef.CodeDestructorFailed, err, "element %d", n)
		}
		n++
	}
}

// Destroy clears the queue and releases its buffer. If Clear fails the queue
// stays usable with whatever is left in it.
func (pq *PriorityQueue[T]) Destroy(dispose func(T) error) error {
	if _, err := pq.Clear(dispose); err != nil {
		return err
	}
	pq.buf.Release()
	pq.destroyed = true
	return nil
}

// Size returns the number of queued elements.
func (pq *PriorityQueue[T]) Size() uint64 { return pq.buf.Len() }

// Cap returns the current capacity of the backing buffer.
func (pq *PriorityQueue[T]) Cap() uint64 { return pq.buf.Cap() }

// IsEmpty reports whether the queue holds no elements.
func (pq *PriorityQueue[T]) IsEmpty() bool { return pq.buf.Len() == 0 }
