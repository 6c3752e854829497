package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSamples(t *testing.T) {
	sessions := []FullReport{
		{Benchmarks: []BenchmarkResult{
			{Implementation: "Queue", InitialCapacity: 16, Burst: 4, NumPushed: 500, NumPopped: 500, ActualElapsed: "1ms"},
			{Implementation: "Queue", InitialCapacity: 16, Burst: 4, NumPushed: 0, NumPopped: 0, ActualElapsed: "1ms"},
			{Implementation: "Stack", InitialCapacity: 1024, Burst: 1, NumPushed: 1, NumPopped: 1, ActualElapsed: "garbage"},
		}},
		{Benchmarks: []BenchmarkResult{
			{Implementation: "Queue", InitialCapacity: 16, Burst: 4, NumPushed: 250, NumPopped: 250, ActualElapsed: "1ms"},
		}},
	}

	got := groupSamples(sessions)
	require.Len(t, got, 1)
	assert.Equal(t, []float64{1000, 2000}, got[16]["Queue"][4])
}

func TestSummarize(t *testing.T) {
	low, med, high := summarize([]float64{5, 1, 3})
	assert.Equal(t, 1.0, low)
	assert.Equal(t, 3.0, med)
	assert.Equal(t, 5.0, high)

	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(99 - i)
	}
	low, med, high = summarize(vals)
	assert.Equal(t, 2.0, low)
	assert.Equal(t, 49.5, med)
	assert.Equal(t, 97.0, high)
}

func TestLayout(t *testing.T) {
	s := samples{
		"Stack": {1: {10}, 64: {30}},
		"Queue": {1: {20}, 16: {40}},
	}
	bursts, all := layout(s)
	assert.Equal(t, []int{1, 16, 64}, bursts)
	require.Len(t, all, 2)

	queue, stack := all[0], all[1]
	assert.Equal(t, "Queue", queue.name)
	assert.Equal(t, "Stack", stack.name)

	// Two series share each slot, offset by a quarter of the spread band.
	require.Len(t, queue.points, 2)
	assert.InDelta(t, -0.1, queue.points[0].x, 1e-9)
	assert.InDelta(t, 0.9, queue.points[1].x, 1e-9)
	assert.Equal(t, 16, queue.points[1].burst)

	require.Len(t, stack.points, 2)
	assert.InDelta(t, 0.1, stack.points[0].x, 1e-9)
	assert.InDelta(t, 2.1, stack.points[1].x, 1e-9)
	assert.Equal(t, 30.0, stack.points[1].median)
}

func TestCategoryTicks(t *testing.T) {
	ticks := categoryTicks{1, 16, 256}.Ticks(0.5, 2)
	require.Len(t, ticks, 2)
	assert.Equal(t, "16", ticks[0].Label)
	assert.Equal(t, 2.0, ticks[1].Value)
}

func TestStatsPointsErrors(t *testing.T) {
	pts := statsPoints{{x: 1, low: 2, median: 5, high: 9}}
	x, y := pts.XY(0)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 5.0, y)
	lo, hi := pts.YError(0)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestRenderCapacity(t *testing.T) {
	s := samples{
		"Queue": {1: {20, 22, 24}, 16: {40, 41}},
		"Stack": {1: {10, 12}},
	}
	filename := filepath.Join(t.TempDir(), "graph_cap16.png")
	require.NoError(t, renderCapacity(16, s, filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 3.0, median([]float64{1, 3, 8}))
}

func TestFormatNs(t *testing.T) {
	assert.Equal(t, "12ns", formatNs(12))
	assert.Equal(t, "1.5µs", formatNs(1500))
	assert.Equal(t, "2.0ms", formatNs(2e6))
	assert.Equal(t, "3.00s", formatNs(3e9))
}

func TestLogTicksIncrease(t *testing.T) {
	ticks := logTicks(10, 1e4)
	require.NotEmpty(t, ticks)
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i].Value, ticks[i-1].Value)
	}
	assert.InDelta(t, 10, ticks[0].Value, 1e-9)
}
