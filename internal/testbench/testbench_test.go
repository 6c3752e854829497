package testbench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/errdef"
	"github.com/i5heu/GoRingKit/pkg/queue"
	"github.com/i5heu/GoRingKit/pkg/stack"
)

func intValue(i int) int { return i }

func TestRunTimedTestBalances(t *testing.T) {
	q, err := queue.New[int](4)
	require.NoError(t, err)

	pushed, popped, elapsed, err := RunTimedTest[int](q, Config{InitialCapacity: 4, Burst: 7}, 20*time.Millisecond, intValue)
	require.NoError(t, err)
	assert.Positive(t, pushed)
	assert.Equal(t, pushed, popped)
	assert.Equal(t, uint64(0), q.Size())
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestRunTimedTestRejectsZeroBurst(t *testing.T) {
	s, err := stack.New[int](1)
	require.NoError(t, err)
	_, _, _, err = RunTimedTest[int](s, Config{Burst: 0}, time.Millisecond, intValue)
	require.Error(t, err)
}

func TestRunTimedTestReportsPushFailure(t *testing.T) {
	s, err := stack.New[int](2, stack.WithMaxCapacity(4))
	require.NoError(t, err)

	pushed, _, _, err := RunTimedTest[int](s, Config{Burst: 8}, time.Second, intValue)
	require.ErrorIs(t, err, errdef.ErrOutOfMemory)
	assert.Equal(t, int64(4), pushed)
}
