package testbench

import (
	"context"
	"fmt"
	"time"
)

// Config describes one workload shape.
type Config struct {
	// InitialCapacity is passed to the container constructor.
	InitialCapacity uint64
	// Burst is how many elements are pushed, then popped, per cycle.
	Burst int
}

// Container is the surface every benchmarked implementation exposes.
type Container[T any] interface {
	Push(T) error
	Pop() (T, error)
	Size() uint64
}

// RunTimedTest drives c with push/pop bursts until testDuration expires.
// Half a burst is queued up front so the head keeps moving through the
// buffer and the window wraps. Once the context expires the container is
// drained. Returns the number of pushes, the number of pops and the actual
// elapsed time.
func RunTimedTest[T any, C Container[T]](
	c C,
	cfg Config,
	testDuration time.Duration,
	valueGenerator func(int) T,
) (pushedCount int64, poppedCount int64, elapsed time.Duration, err error) {
	if cfg.Burst <= 0 {
		return 0, 0, 0, fmt.Errorf("burst must be positive, got %d", cfg.Burst)
	}

	// Create a context that will cancel after testDuration.
	ctx, cancel := context.WithTimeout(context.Background(), testDuration)
	defer cancel()

	start := time.Now()
	msgIndex := 0

	push := func() error {
		if err := c.Push(valueGenerator(msgIndex)); err != nil {
			return fmt.Errorf("push %d: %w", msgIndex, err)
		}
		msgIndex++
		pushedCount++
		return nil
	}

	for i := 0; i < cfg.Burst/2; i++ {
		if err := push(); err != nil {
			return pushedCount, poppedCount, time.Since(start), err
		}
	}

	for ctx.Err() == nil {
		for i := 0; i < cfg.Burst; i++ {
			if err := push(); err != nil {
				return pushedCount, poppedCount, time.Since(start), err
			}
		}
		for i := 0; i < cfg.Burst; i++ {
			if _, err := c.Pop(); err != nil {
				return pushedCount, poppedCount, time.Since(start), fmt.Errorf("pop: %w", err)
			}
			poppedCount++
		}
	}

	// Drain whatever the prefill left behind.
	for c.Size() > 0 {
		if _, err := c.Pop(); err != nil {
			return pushedCount, poppedCount, time.Since(start), fmt.Errorf("drain: %w", err)
		}
		poppedCount++
	}

	elapsed = time.Since(start)
	return pushedCount, poppedCount, elapsed, nil
}
