package stack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/errdef"
)

func newStack(t *testing.T, capacity uint64, opts ...Option) *Stack[int] {
	t.Helper()
	s, err := New[int](capacity, opts...)
	require.NoError(t, err)
	return s
}

func TestNewInvalidCapacity(t *testing.T) {
	s, err := New[int](0)
	require.ErrorIs(t, err, errdef.ErrInvalidCapacity)
	assert.Nil(t, s)
}

func TestLIFO(t *testing.T) {
	s := newStack(t, 4)
	const N = 100
	for i := 0; i < N; i++ {
		require.NoError(t, s.Push(i))
	}
	require.Equal(t, uint64(N), s.Size())
	// 4 -> 8 -> 16 -> 32 -> 64 -> 128
	assert.Equal(t, uint64(128), s.Cap())

	for i := N - 1; i >= 0; i-- {
		top, ok := s.Peek()
		require.True(t, ok)
		require.Equal(t, i, top)

		v, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint64(128), s.Cap(), "capacity never shrinks")
}

func TestRoundTrip(t *testing.T) {
	s := newStack(t, 2)
	require.NoError(t, s.Push(1))
	before := s.Size()

	require.NoError(t, s.Push(42))
	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, before, s.Size())
}

func TestEmpty(t *testing.T) {
	s := newStack(t, 1)

	_, ok := s.Peek()
	assert.False(t, ok)

	_, err := s.Pop()
	require.ErrorIs(t, err, errdef.ErrEmpty)

	_, err = s.RemoveAt(0)
	require.ErrorIs(t, err, errdef.ErrEmpty)
}

func TestIndexFromTop(t *testing.T) {
	s := newStack(t, 2)
	for _, v := range []int{10, 20, 30} {
		require.NoError(t, s.Push(v))
	}

	v, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	idx, ok := s.Find(func(v int) bool { return v == 10 })
	require.True(t, ok)
	assert.Equal(t, uint64(2), idx)

	_, ok = s.Find(func(v int) bool { return v == 99 })
	assert.False(t, ok)

	_, err = s.RemoveAt(3)
	require.ErrorIs(t, err, errdef.ErrOutOfRange)

	v, err = s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
	assert.Equal(t, []int{30, 10}, s.Drain())
}

func TestEach(t *testing.T) {
	s := newStack(t, 4)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, s.Push(v))
	}

	var seen []int
	require.NoError(t, s.Each(func(_ uint64, v int) error {
		seen = append(seen, v)
		return nil
	}))
	assert.Equal(t, []int{3, 2, 1}, seen)

	stop := errors.New("stop")
	err := s.Each(func(i uint64, _ int) error {
		if i == 1 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, uint64(3), s.Size())
}

func TestClearShortCircuit(t *testing.T) {
	s := newStack(t, 4)
	for _, v := range []int{3, 2, 1} {
		require.NoError(t, s.Push(v))
	}

	cause := errors.New("cannot free")
	var disposed []int
	n, err := s.Clear(func(v int) error {
		if v == 2 {
			return cause
		}
		disposed = append(disposed, v)
		return nil
	})
	require.ErrorIs(t, err, errdef.ErrDestructorFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, uint64(1), n)
	assert.Equal(t, []int{1}, disposed)
	require.Equal(t, uint64(1), s.Size())

	left, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, left)
}

func TestGrowthLimit(t *testing.T) {
	s := newStack(t, 2, WithMaxCapacity(2))
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))

	err := s.Push(3)
	require.ErrorIs(t, err, errdef.ErrOutOfMemory)
	assert.Equal(t, []int{2, 1}, s.Drain())
}

func TestDestroy(t *testing.T) {
	s := newStack(t, 2)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))

	fail := errors.New("busy")
	err := s.Destroy(func(int) error { return fail })
	require.ErrorIs(t, err, errdef.ErrDestructorFailed)
	require.NoError(t, s.Push(3), "failed destroy leaves the stack usable")

	var freed []int
	require.NoError(t, s.Destroy(func(v int) error {
		freed = append(freed, v)
		return nil
	}))
	assert.Equal(t, []int{3, 1}, freed)
	assert.Equal(t, uint64(0), s.Cap())

	require.ErrorIs(t, s.Push(4), errdef.ErrDestroyed)
	_, err = s.Pop()
	require.ErrorIs(t, err, errdef.ErrDestroyed)
	_, err = s.At(0)
	require.ErrorIs(t, err, errdef.ErrDestroyed)
	_, err = s.RemoveAt(0)
	require.ErrorIs(t, err, errdef.ErrDestroyed)
	require.ErrorIs(t, s.Destroy(nil), errdef.ErrDestroyed)
}
