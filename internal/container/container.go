// Package container holds the contracts and options shared by the stack,
// queue and priority queue packages.
package container

// ContainerValidationInterface ensures any container type has these methods.
// Each package asserts its type against it at compile time.
type ContainerValidationInterface[T any] interface {
	// Push adds an element, growing the backing buffer if it is full.
	Push(T) error

	// Peek returns the element Pop would return next without removing it.
	// If the container is empty it returns an empty T and false.
	Peek() (T, bool)

	// Pop removes the next element and hands it back to the caller.
	// It returns errdef.ErrEmpty if there is nothing to remove.
	Pop() (T, error)

	// Size returns how many elements are currently stored.
	Size() uint64

	// Cap returns the current length of the backing buffer.
	Cap() uint64
}

// PriorityValidationInterface is the priority queue counterpart of
// ContainerValidationInterface: Push takes an ordering key.
type PriorityValidationInterface[T any] interface {
	Push(T, int) error
	Peek() (T, bool)
	Pop() (T, error)
	RemoveAt(uint64) (T, error)
	Size() uint64
	Cap() uint64
}

// Option configures a container at creation time.
type Option func(*Options)

// Options holds the settings shared by every container.
type Options struct {
	// MaxCapacity bounds growth; 0 means unbounded.
	MaxCapacity uint64
}

// Apply folds opts into a fresh Options value.
func Apply(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxCapacity stops the backing buffer from growing past n slots.
// A push that would need more room fails with errdef.ErrOutOfMemory.
func WithMaxCapacity(n uint64) Option {
	return func(o *Options) {
		o.MaxCapacity = n
	}
}
