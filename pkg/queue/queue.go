// Package queue provides a growable FIFO queue over a ring buffer.
package queue

import (
	"fmt"

	"github.com/i5heu/GoRingKit/internal/container"
	"github.com/i5heu/GoRingKit/internal/ring"
	"github.com/i5heu/GoRingKit/pkg/errdef"
)

// Option configures a queue at creation time.
type Option = container.Option

// WithMaxCapacity bounds how far the queue may grow.
var WithMaxCapacity = container.WithMaxCapacity

var _ container.ContainerValidationInterface[int] = (*Queue[int])(nil)

// Queue is a FIFO container. Elements are pushed at the tail and popped at
// the head; both ends wrap around the physical end of the buffer. Index 0
// always refers to the head.
type Queue[T any] struct {
	buf       *ring.Buffer[T]
	destroyed bool
}

// New creates an empty queue with room for capacity elements.
func New[T any](capacity uint64, opts ...Option) (*Queue[T], error) {
	o := container.Apply(opts...)
	buf, err := ring.New[T](capacity, o.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{buf: buf}, nil
}

func (q *Queue[T]) alive() error {
	if q.destroyed {
		return errdef.ErrDestroyed
	}
	return nil
}

// Push appends val at the tail.
func (q *Queue[T]) Push(val T) error {
	if err := q.alive(); err != nil {
		return err
	}
	return q.buf.PushBack(val)
}

// Peek returns the head element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.buf.Front()
}

// Pop removes the head element and returns it.
func (q *Queue[T]) Pop() (T, error) {
	if err := q.alive(); err != nil {
		var zero T
		return zero, err
	}
	val, ok := q.buf.PopFront()
	if !ok {
		return val, errdef.ErrEmpty
	}
	return val, nil
}

// At returns the element at logical position index.
func (q *Queue[T]) At(index uint64) (T, error) {
	var zero T
	if err := q.checkIndex(index); err != nil {
		return zero, err
	}
	return q.buf.At(index), nil
}

// RemoveAt removes the element at logical position index and closes the gap.
func (q *Queue[T]) RemoveAt(index uint64) (T, error) {
	var zero T
	if err := q.checkIndex(index); err != nil {
		return zero, err
	}
	return q.buf.RemoveAt(index), nil
}

func (q *Queue[T]) checkIndex(index uint64) error {
	if err := q.alive(); err != nil {
		return err
	}
	size := q.buf.Len()
	if size == 0 {
		return errdef.ErrEmpty
	}
	if index >= size {
		return errdef.New(errdef.CodeOutOfRange, "index %d, size %d", index, size)
	}
	return nil
}

// Find returns the index of the first element, head first, matching match.
func (q *Queue[T]) Find(match func(T) bool) (uint64, bool) {
	for i := uint64(0); i < q.buf.Len(); i++ {
		if match(q.buf.At(i)) {
			return i, true
		}
	}
	return 0, false
}

// Each calls fn for every element from head to tail and stops at the first
// error.
func (q *Queue[T]) Each(fn func(index uint64, val T) error) error {
	for i := uint64(0); i < q.buf.Len(); i++ {
		if err := fn(i, q.buf.At(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Drain empties the queue and returns its elements head first.
func (q *Queue[T]) Drain() []T {
	out := make([]T, 0, q.buf.Len())
	for {
		val, ok := q.buf.PopFront()
		if !ok {
			return out
		}
		out = append(out, val)
	}
}

// Clear pops every element head first, handing each to dispose. It stops at
// the first dispose failure; the failed element is gone, the ones behind it
// stay. The returned count is the number of elements disposed successfully.
func (q *Queue[T]) Clear(dispose func(T) error) (uint64, error) {
	if err := q.alive(); err != nil {
		return 0, err
	}
	if dispose == nil {
		n := q.buf.Len()
		q.buf.Reset()
		return n, nil
	}
	var n uint64
	for {
		val, ok := q.buf.PopFront()
		if !ok {
			return n, nil
		}
		if err := dispose(val); err != nil {
			return n, errdef.Wrap(errdef.CodeDestructorFailed, err, "element %d", n)
		}
		n++
	}
}

// Destroy clears the queue and releases its buffer. If Clear fails the queue
// stays usable with whatever is left in it.
func (q *Queue[T]) Destroy(dispose func(T) error) error {
	if _, err := q.Clear(dispose); err != nil {
		return err
	}
	q.buf.Release()
	q.destroyed = true
	return nil
}

// Size returns the number of queued elements.
func (q *Queue[T]) Size() uint64 { return q.buf.Len() }

// Cap returns the current capacity of the backing buffer.
func (q *Queue[T]) Cap() uint64 { return q.buf.Cap() }

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool { return q.buf.Len() == 0 }
