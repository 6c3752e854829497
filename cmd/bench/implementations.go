package main

import (
	eapache "github.com/eapache/queue"

	"github.com/i5heu/GoRingKit/pkg/errdef"
	"github.com/i5heu/GoRingKit/pkg/priorityqueue"
	"github.com/i5heu/GoRingKit/pkg/queue"
	"github.com/i5heu/GoRingKit/pkg/stack"
)

// keyedPQ adapts a priority queue to the bench interface by deriving each
// element's priority from its value.
type keyedPQ struct {
	pq  *priorityqueue.PriorityQueue[*int]
	key func(int) int
}

func (k keyedPQ) Push(v *int) error  { return k.pq.Push(v, k.key(*v)) }
func (k keyedPQ) Pop() (*int, error) { return k.pq.Pop() }
func (k keyedPQ) Size() uint64       { return k.pq.Size() }

func newKeyedPQ(key func(int) int) func(uint64) (benchContainer, error) {
	return func(capacity uint64) (benchContainer, error) {
		pq, err := priorityqueue.New[*int](capacity)
		if err != nil {
			return nil, err
		}
		return keyedPQ{pq: pq, key: key}, nil
	}
}

// scatter spreads consecutive values over 64 priorities so pushes land in
// the middle of the window.
func scatter(v int) int { return int((uint32(v) * 2654435761) >> 26) }

// eapacheQueue adapts github.com/eapache/queue, a growable power-of-two
// ring, as a baseline.
type eapacheQueue struct {
	q *eapache.Queue
}

func (e eapacheQueue) Push(v *int) error {
	e.q.Add(v)
	return nil
}

func (e eapacheQueue) Pop() (*int, error) {
	if e.q.Length() == 0 {
		return nil, errdef.ErrEmpty
	}
	return e.q.Remove().(*int), nil
}

func (e eapacheQueue) Size() uint64 { return uint64(e.q.Length()) }

// getImplementations enumerates the benchmarked containers.
func getImplementations() []Implementation {
	return []Implementation{
		{
			name:        "Stack",
			pkgName:     "stack",
			description: "Growable LIFO stack; push and pop at the tail only.",
			authors:     []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:    []string{"LIFO", "Growable"},
			newContainer: func(capacity uint64) (benchContainer, error) {
				return stack.New[*int](capacity)
			},
		},
		{
			name:        "Queue",
			pkgName:     "queue",
			description: "Growable FIFO ring buffer with wraparound at both ends.",
			authors:     []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:    []string{"FIFO", "Growable"},
			newContainer: func(capacity uint64) (benchContainer, error) {
				return queue.New[*int](capacity)
			},
		},
		{
			name:         "PriorityQueue (ascending keys)",
			pkgName:      "priorityqueue",
			description:  "Sorted ring; keys grow with every push, so inserts land at the tail.",
			authors:      []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:     []string{"Priority", "FIFO", "Growable"},
			newContainer: newKeyedPQ(func(v int) int { return v }),
		},
		{
			name:         "PriorityQueue (scattered keys)",
			pkgName:      "priorityqueue",
			description:  "Sorted ring; keys are spread over 64 levels, so inserts shift part of the window.",
			authors:      []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:     []string{"Priority", "Growable"},
			newContainer: newKeyedPQ(scatter),
		},
		{
			name:        "eapache/queue",
			pkgName:     "eapache/queue",
			description: "Third-party power-of-two growable ring used as a baseline.",
			authors:     []string{"Evan Huus"},
			features:    []string{"FIFO", "Growable", "Baseline"},
			newContainer: func(uint64) (benchContainer, error) {
				return eapacheQueue{q: eapache.New()}, nil
			},
		},
	}
}
