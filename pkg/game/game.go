// Package game is a small entity framework built on the ring containers.
//
// A World owns every piece of state: registered object types, live
// instances, the pool of free instance ids (a FIFO queue, so ids are reused
// oldest first) and the handler order (a priority queue keyed by the
// object's priority). Step runs each live instance's Step handler once, in
// priority order.
package game

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/i5heu/GoRingKit/pkg/errdef"
	"github.com/i5heu/GoRingKit/pkg/inspect"
	"github.com/i5heu/GoRingKit/pkg/priorityqueue"
	"github.com/i5heu/GoRingKit/pkg/queue"
)

type (
	ObjectIndex uint16
	InstanceID  uint16
)

// MaxInstances is the largest number of instances a World can hold.
const MaxInstances = 0xffff

const orderCapacity = 16

// Handler is called with the instance it runs for.
type Handler func(inst *Instance) error

// Object describes one kind of instance. Lower priorities step first.
type Object struct {
	Name     string
	Priority int
	Create   Handler
	Step     Handler
	Destroy  Handler
}

// Instance is one spawned object.
type Instance struct {
	ID     InstanceID
	Object ObjectIndex
	Data   any
}

// World is not safe for concurrent use.
type World struct {
	objects   map[ObjectIndex]Object
	instances map[InstanceID]*Instance
	order     *priorityqueue.PriorityQueue[InstanceID]
	free      *queue.Queue[InstanceID]
	logger    *log.Logger
}

// NewWorld creates a World with room for maxInstances live instances.
// A nil logger logs through the standard logger.
func NewWorld(maxInstances int, logger *log.Logger) (*World, error) {
	if maxInstances <= 0 || maxInstances > MaxInstances {
		return nil, errdef.New(errdef.CodeInvalidCapacity, "max instances must be in 1..%d, got %d", MaxInstances, maxInstances)
	}
	if logger == nil {
		logger = log.Default()
	}
	free, err := queue.New[InstanceID](uint64(maxInstances), queue.WithMaxCapacity(uint64(maxInstances)))
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxInstances; i++ {
		if err := free.Push(InstanceID(i)); err != nil {
			return nil, err
		}
	}
	order, err := priorityqueue.New[InstanceID](min(orderCapacity, uint64(maxInstances)))
	if err != nil {
		return nil, err
	}
	return &World{
		objects:   make(map[ObjectIndex]Object),
		instances: make(map[InstanceID]*Instance),
		order:     order,
		free:      free,
		logger:    logger,
	}, nil
}

// AddObject registers obj under index.
func (w *World) AddObject(index ObjectIndex, obj Object) error {
	if _, taken := w.objects[index]; taken {
		return errdef.New(errdef.CodeGame, "object index %d is already taken", index)
	}
	w.objects[index] = obj
	return nil
}

// ObjectName returns the registered name for index.
func (w *World) ObjectName(index ObjectIndex) (string, bool) {
	obj, ok := w.objects[index]
	return obj.Name, ok
}

// Spawn creates an instance of the object at index. A failing Create handler
// is logged; the instance stays alive.
func (w *World) Spawn(index ObjectIndex, data any) (InstanceID, error) {
	obj, ok := w.objects[index]
	if !ok {
		return 0, errdef.New(errdef.CodeGame, "object index %d not registered", index)
	}
	id, err := w.free.Pop()
	if err != nil {
		return 0, errdef.Wrap(errdef.CodeGame, err, "no free instance ids")
	}
	if err := w.order.Push(id, obj.Priority); err != nil {
		// Hand the id back; the free queue never exceeds its starting size.
		_ = w.free.Push(id)
		return 0, errdef.Wrap(errdef.CodeGame, err, "spawn %s", obj.Name)
	}

	inst := &Instance{ID: id, Object: index, Data: data}
	w.instances[id] = inst
	if obj.Create != nil {
		if err := obj.Create(inst); err != nil {
			w.logger.Printf("[WARN] spawn: create handler of %s returned %v for instance %d", obj.Name, err, id)
		}
	}
	return id, nil
}

// Despawn runs the instance's Destroy handler and removes it. If the handler
// fails the instance is kept so the call can be retried.
func (w *World) Despawn(id InstanceID) error {
	inst, ok := w.instances[id]
	if !ok {
		return errdef.New(errdef.CodeGame, "instance %d not found", id)
	}
	idx, ok := w.order.Find(func(v InstanceID) bool { return v == id })
	if !ok {
		return errdef.New(errdef.CodeGame, "instance %d missing from handler order", id)
	}
	if h := w.objects[inst.Object].Destroy; h != nil {
		if err := h(inst); err != nil {
			return errdef.Wrap(errdef.CodeDestructorFailed, err, "instance %d", id)
		}
	}
	if _, err := w.order.RemoveAt(idx); err != nil {
		return err
	}
	w.release(id)
	return nil
}

func (w *World) release(id InstanceID) {
	delete(w.instances, id)
	_ = w.free.Push(id)
}

// Instance returns the live instance with the given id.
func (w *World) Instance(id InstanceID) (*Instance, bool) {
	inst, ok := w.instances[id]
	return inst, ok
}

// Len returns the number of live instances.
func (w *World) Len() int { return int(w.order.Size()) }

// Step runs every live instance's Step handler once in priority order.
// Handler errors are logged and returned joined; they never stop the frame.
// Instances spawned during the frame first step on the next one.
func (w *World) Step() error {
	type entry struct {
		id   InstanceID
		inst *Instance
	}
	frame := make([]entry, 0, w.order.Size())
	_ = w.order.Each(func(_ uint64, id InstanceID, _ int) error {
		frame = append(frame, entry{id, w.instances[id]})
		return nil
	})

	var errs []error
	for _, e := range frame {
		id, inst := e.id, e.inst
		if w.instances[id] != inst {
			// despawned by an earlier handler this frame, maybe with the id reused
			continue
		}
		obj := w.objects[inst.Object]
		if obj.Step == nil {
			continue
		}
		if err := obj.Step(inst); err != nil {
			w.logger.Printf("[ERROR] step: handler of %s returned %v for instance %d", obj.Name, err, id)
			errs = append(errs, fmt.Errorf("instance %d (%s): %w", id, obj.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Close destroys every instance in priority order. It stops at the first
// failing Destroy handler: that instance is already gone, the ones behind it
// stay alive.
func (w *World) Close() error {
	_, err := w.order.Clear(func(id InstanceID) error {
		inst := w.instances[id]
		defer w.release(id)
		if h := w.objects[inst.Object].Destroy; h != nil {
			return h(inst)
		}
		return nil
	})
	return err
}

// Dump renders the live instances in handler order.
func (w *World) Dump() string {
	var rows [][]string
	_ = w.order.Each(func(i uint64, id InstanceID, p int) error {
		name, _ := w.ObjectName(w.instances[id].Object)
		rows = append(rows, []string{
			strconv.FormatUint(i, 10),
			strconv.Itoa(p),
			strconv.Itoa(int(id)),
			name,
		})
		return nil
	})
	return inspect.Table([]string{"ORDER", "PRIORITY", "INSTANCE", "OBJECT"}, rows)
}
