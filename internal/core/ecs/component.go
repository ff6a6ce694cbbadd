package ecs

import (
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	RemoveEntity(h EntityHandle)
	Len() int
}

type entry[T any] struct {
	handle EntityHandle
	value  T
}

// ComponentStore holds one component type keyed by entity handle. Entries are
// packed densely in slot order and a bitset tracks which slots own one, so
// the position of a slot's entry is the number of owners below it.
//
// Lookups cost a popcount over the bitset up to the slot rather than a direct
// index; joins avoid repeating that work through Column cursors.
// The zero value is an empty store.
type ComponentStore[T any] struct {
	comps  []entry[T]
	owners bitset.BitSet
	lent   bool
	loan   EntityHandle
}

func NewComponentStore[T any](capacity int) *ComponentStore[T] {
	return &ComponentStore[T]{
		comps: make([]entry[T], 0, capacity),
	}
}

// rank is the dense position of slot index: the number of owners below it.
func (s *ComponentStore[T]) rank(index uint32) int {
	if index == 0 {
		return 0
	}
	return int(s.owners.Rank(uint(index) - 1))
}

// lookup returns the dense position of h's entry, if h owns one.
func (s *ComponentStore[T]) lookup(h EntityHandle) (int, bool) {
	if !s.owners.Test(uint(h.index)) {
		return 0, false
	}
	r := s.rank(h.index)
	if s.comps[r].handle != h {
		return 0, false
	}
	return r, true
}

// Insert attaches v to h. If h already owns a component it is replaced in
// place and the previous value returned with replaced set.
func (s *ComponentStore[T]) Insert(h EntityHandle, v T) (old T, replaced bool) {
	if s.lent {
		violation("insert", "store is lending %s", s.loan)
	}
	return s.insert(h, v)
}

func (s *ComponentStore[T]) insert(h EntityHandle, v T) (old T, replaced bool) {
	r := s.rank(h.index)
	if s.owners.Test(uint(h.index)) {
		e := &s.comps[r]
		if e.handle != h {
			// the slot's previous owner was freed without being removed here
			violation("insert", "slot %d still owned by %s, inserting %s", h.index, e.handle, h)
		}
		old, e.value = e.value, v
		return old, true
	}
	s.owners.Set(uint(h.index))
	s.comps = slices.Insert(s.comps, r, entry[T]{handle: h, value: v})
	return old, false
}

// Remove detaches h's component and returns it. Removing from an entity that
// owns no component here is a no-op.
func (s *ComponentStore[T]) Remove(h EntityHandle) (T, bool) {
	if s.lent {
		violation("remove", "store is lending %s", s.loan)
	}
	return s.remove(h)
}

func (s *ComponentStore[T]) remove(h EntityHandle) (T, bool) {
	r, ok := s.lookup(h)
	if !ok {
		var zero T
		return zero, false
	}
	v := s.comps[r].value
	s.comps = slices.Delete(s.comps, r, r+1)
	s.owners.Clear(uint(h.index))
	return v, true
}

// RemoveEntity implements Removable.
func (s *ComponentStore[T]) RemoveEntity(h EntityHandle) {
	s.Remove(h)
}

func (s *ComponentStore[T]) Get(h EntityHandle) (T, bool) {
	r, ok := s.lookup(h)
	if !ok {
		var zero T
		return zero, false
	}
	return s.comps[r].value, true
}

// GetMut returns a pointer into the store. It stays valid until the next
// Insert or Remove on this store.
func (s *ComponentStore[T]) GetMut(h EntityHandle) (*T, bool) {
	r, ok := s.lookup(h)
	if !ok {
		return nil, false
	}
	return &s.comps[r].value, true
}

// GetTwoMut returns pointers to the components of two distinct entities; an
// absent component comes back nil. Passing the same handle twice panics.
func (s *ComponentStore[T]) GetTwoMut(a, b EntityHandle) (*T, *T) {
	if a == b {
		violation("get_two_mut", "both handles are %s", a)
	}
	pa, _ := s.GetMut(a)
	pb, _ := s.GetMut(b)
	return pa, pb
}

func (s *ComponentStore[T]) Contains(h EntityHandle) bool {
	_, ok := s.lookup(h)
	return ok
}

// ComponentAtRank returns the entry at a dense position.
func (s *ComponentStore[T]) ComponentAtRank(rank int) (EntityHandle, T) {
	s.checkRank(rank)
	e := s.comps[rank]
	return e.handle, e.value
}

func (s *ComponentStore[T]) ComponentAtRankMut(rank int) (EntityHandle, *T) {
	s.checkRank(rank)
	e := &s.comps[rank]
	return e.handle, &e.value
}

func (s *ComponentStore[T]) checkRank(rank int) {
	if rank < 0 || rank >= len(s.comps) {
		violation("component_at_rank", "rank %d outside [0,%d)", rank, len(s.comps))
	}
}

// Owners exposes the presence set for joins. Callers must not modify it.
func (s *ComponentStore[T]) Owners() *bitset.BitSet { return &s.owners }

func (s *ComponentStore[T]) Len() int      { return len(s.comps) }
func (s *ComponentStore[T]) IsEmpty() bool { return len(s.comps) == 0 }

// Handles returns the owning handles in slot order.
func (s *ComponentStore[T]) Handles() []EntityHandle {
	out := make([]EntityHandle, len(s.comps))
	for i := range s.comps {
		out[i] = s.comps[i].handle
	}
	return out
}

// All iterates the store in slot order.
func (s *ComponentStore[T]) All() iter.Seq2[EntityHandle, *T] {
	return func(yield func(EntityHandle, *T) bool) {
		for i := range s.comps {
			if !yield(s.comps[i].handle, &s.comps[i].value) {
				return
			}
		}
	}
}

func (s *ComponentStore[T]) Each(fn func(EntityHandle, *T)) {
	for i := range s.comps {
		fn(s.comps[i].handle, &s.comps[i].value)
	}
}

// Clear drops every component.
func (s *ComponentStore[T]) Clear() {
	if s.lent {
		violation("clear", "store is lending %s", s.loan)
	}
	clear(s.comps)
	s.comps = s.comps[:0]
	s.owners.ClearAll()
}
