package ecs

// Aggregate is the surface every generated aggregate offers.
type Aggregate interface {
	Spawner
	DeleteEntity(h EntityHandle)
	IsEmpty() bool
}

// Spawner mints entity handles. Aggregates and the remainder views returned
// by their split functions both implement it.
type Spawner interface {
	NewEntity() EntityHandle
}

// Bundle is a value carrying every component of one new entity, decomposed
// into per-store inserts against W.
type Bundle[W any] interface {
	InsertInto(h EntityHandle, w W)
}

// Insert allocates a handle from w and inserts the bundle's components.
func Insert[W Spawner](w W, b Bundle[W]) EntityHandle {
	h := w.NewEntity()
	b.InsertInto(h, w)
	return h
}

// World is the bookkeeping half of an aggregate. It owns the handle
// allocator, the registry of the aggregate's stores, and a deferred
// destruction queue for deletions requested while stores are borrowed.
// Generated aggregates embed it and register their stores.
type World struct {
	handles      *HandleAllocator
	registry     *Registry
	destroyQueue []EntityHandle
}

func NewWorld(capacity int) *World {
	return &World{
		handles:      NewHandleAllocator(capacity),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityHandle, 0, 64),
	}
}

func (w *World) Handles() *HandleAllocator { return w.handles }
func (w *World) Registry() *Registry       { return w.registry }

// Register adds stores whose components DeleteEntity must remove.
func (w *World) Register(stores ...Removable) {
	w.registry.Register(stores...)
}

func (w *World) NewEntity() EntityHandle {
	return w.handles.Allocate()
}

func (w *World) Alive(h EntityHandle) bool {
	return w.handles.IsValid(h)
}

// DeleteEntity removes h's components from every registered store and frees
// the handle. Deleting a dead handle panics.
func (w *World) DeleteEntity(h EntityHandle) {
	if !w.handles.IsValid(h) {
		violation("delete_entity", "handle %s is not live", h)
	}
	w.registry.RemoveAll(h)
	w.handles.Free(h)
}

// IsEmpty reports whether no registered store holds a component.
func (w *World) IsEmpty() bool {
	return w.registry.Empty()
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.handles.Len() }

// MarkForDestruction queues an entity for deletion at the next flush.
func (w *World) MarkForDestruction(h EntityHandle) {
	w.destroyQueue = append(w.destroyQueue, h)
}

// Pending returns the number of queued deletions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue deletes all queued entities and returns how many were
// deleted. An entity queued more than once, or already deleted directly, is
// skipped.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, h := range w.destroyQueue {
		if !w.handles.IsValid(h) {
			continue
		}
		w.DeleteEntity(h)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
