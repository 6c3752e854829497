// Package stack provides a growable LIFO stack over a ring buffer.
//
// Push and Pop work at the top only, so the window never wraps, but the
// stack shares growth and removal-by-index with the queue containers.
package stack

import (
	"fmt"

	"github.com/i5heu/GoRingKit/internal/container"
	"github.com/i5heu/GoRingKit/internal/ring"
	"github.com/i5heu/GoRingKit/pkg/errdef"
)

// Option configures a stack at creation time.
type Option = container.Option

// WithMaxCapacity bounds how far the stack may grow.
var WithMaxCapacity = container.WithMaxCapacity

var _ container.ContainerValidationInterface[int] = (*Stack[int])(nil)

// Stack is a LIFO container. Index 0 always refers to the top element.
type Stack[T any] struct {
	buf       *ring.Buffer[T]
	destroyed bool
}

// New creates an empty stack with room for capacity elements.
func New[T any](capacity uint64, opts ...Option) (*Stack[T], error) {
	o := container.Apply(opts...)
	buf, err := ring.New[T](capacity, o.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return &Stack[T]{buf: buf}, nil
}

func (s *Stack[T]) alive() error {
	if s.destroyed {
		return errdef.ErrDestroyed
	}
	return nil
}

// bufIndex converts a top-relative index into a buffer position.
func (s *Stack[T]) bufIndex(index uint64) uint64 {
	return s.buf.Len() - 1 - index
}

// Push places val on top of the stack.
func (s *Stack[T]) Push(val T) error {
	if err := s.alive(); err != nil {
		return err
	}
	return s.buf.PushBack(val)
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.buf.Back()
}

// Pop removes the top element and returns it.
func (s *Stack[T]) Pop() (T, error) {
	if err := s.alive(); err != nil {
		var zero T
		return zero, err
	}
	val, ok := s.buf.PopBack()
	if !ok {
		return val, errdef.ErrEmpty
	}
	return val, nil
}

// At returns the element index positions below the top.
func (s *Stack[T]) At(index uint64) (T, error) {
	var zero T
	if err := s.checkIndex(index); err != nil {
		return zero, err
	}
	return s.buf.At(s.bufIndex(index)), nil
}

// RemoveAt removes the element index positions below the top, keeping the
// order of the others.
func (s *Stack[T]) RemoveAt(index uint64) (T, error) {
	var zero T
	if err := s.checkIndex(index); err != nil {
		return zero, err
	}
	return s.buf.RemoveAt(s.bufIndex(index)), nil
}

func (s *Stack[T]) checkIndex(index uint64) error {
	if err := s.alive(); err != nil {
		return err
	}
	size := s.buf.Len()
	if size == 0 {
		return errdef.ErrEmpty
	}
	if index >= size {
		return errdef.New(errdef.CodeOutOfRange, "index %d, size %d", index, size)
	}
	return nil
}

// Find returns the top-relative index of the first element matching match.
func (s *Stack[T]) Find(match func(T) bool) (uint64, bool) {
	for i := uint64(0); i < s.buf.Len(); i++ {
		if match(s.buf.At(s.bufIndex(i))) {
			return i, true
		}
	}
	return 0, false
}

// Each calls fn for every element from the top down and stops at the
// first error.
func (s *Stack[T]) Each(fn func(index uint64, val T) error) error {
	for i := uint64(0); i < s.buf.Len(); i++ {
		if err := fn(i, s.buf.At(s.bufIndex(i))); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Drain empties the stack and returns its elements in pop order.
func (s *Stack[T]) Drain() []T {
	out := make([]T, 0, s.buf.Len())
	for {
		val, ok := s.buf.PopBack()
		if !ok {
			return out
		}
		out = append(out, val)
	}
}

// Clear pops every element, handing each to dispose. It stops at the first
// dispose failure; the failed element is gone, everything below it stays.
// The returned count is the number of elements disposed successfully.
func (s *Stack[T]) Clear(dispose func(T) error) (uint64, error) {
	if err := s.alive(); err != nil {
		return 0, err
	}
	if dispose == nil {
		n := s.buf.Len()
		s.buf.Reset()
		return n, nil
	}
	var n uint64
	for {
		val, ok := s.buf.PopBack()
		if !ok {
			return n, nil
		}
		if err := dispose(val); err != nil {
			return n, errdef.Wrap(errdef.CodeDestructorFailed, err, "element %d", n)
		}
		n++
	}
}

// Destroy clears the stack and releases its buffer. If Clear fails the stack
// stays usable with whatever is left on it.
func (s *Stack[T]) Destroy(dispose func(T) error) error {
	if _, err := s.Clear(dispose); err != nil {
		return err
	}
	s.buf.Release()
	s.destroyed = true
	return nil
}

// Size returns the number of elements on the stack.
func (s *Stack[T]) Size() uint64 { return s.buf.Len() }

// Cap returns the current capacity of the backing buffer.
func (s *Stack[T]) Cap() uint64 { return s.buf.Cap() }

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return s.buf.Len() == 0 }
