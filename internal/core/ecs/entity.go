package ecs

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// EntityHandle identifies an entity by slot index and generation. The
// generation distinguishes successive owners of the same slot, so a handle
// kept past its entity's deletion never matches the slot's next owner.
type EntityHandle struct {
	index      uint32
	generation uint32
}

func NewEntityHandle(index, generation uint32) EntityHandle {
	return EntityHandle{index: index, generation: generation}
}

func (h EntityHandle) Index() uint32      { return h.index }
func (h EntityHandle) Generation() uint32 { return h.generation }

func (h EntityHandle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

// HandleAllocator issues entity handles with generational indices and a free
// set. Freed slots are reused lowest index first, and a slot's generation is
// bumped when it is handed out again rather than when it is freed.
// The zero value is ready to use.
type HandleAllocator struct {
	generations []uint32
	live        bitset.BitSet
	free        bitset.BitSet
	nextIndex   uint32
	count       int
}

func NewHandleAllocator(capacity int) *HandleAllocator {
	return &HandleAllocator{
		generations: make([]uint32, 0, capacity),
	}
}

// Allocate returns a fresh or recycled handle and marks it live.
func (a *HandleAllocator) Allocate() EntityHandle {
	a.count++
	if idx, ok := a.free.NextSet(0); ok {
		a.free.Clear(idx)
		a.live.Set(idx)
		a.generations[idx]++
		return EntityHandle{index: uint32(idx), generation: a.generations[idx]}
	}
	idx := a.nextIndex
	a.nextIndex++
	a.generations = append(a.generations, 0)
	a.live.Set(uint(idx))
	return EntityHandle{index: idx, generation: 0}
}

// Free releases a live handle. Freeing a handle twice, or one this
// allocator never issued, panics.
func (a *HandleAllocator) Free(h EntityHandle) {
	if !a.IsValid(h) {
		violation("free", "handle %s is not live", h)
	}
	a.live.Clear(uint(h.index))
	a.free.Set(uint(h.index))
	a.count--
}

func (a *HandleAllocator) IsValid(h EntityHandle) bool {
	if h.index >= a.nextIndex {
		return false
	}
	return a.live.Test(uint(h.index)) && a.generations[h.index] == h.generation
}

// Len returns the number of live handles.
func (a *HandleAllocator) Len() int { return a.count }

// Cap returns the number of slots ever issued.
func (a *HandleAllocator) Cap() int { return int(a.nextIndex) }

// Reset forgets every slot. Handles issued before the reset must not be used
// again: slot generations restart at zero.
func (a *HandleAllocator) Reset() {
	a.generations = a.generations[:0]
	a.live.ClearAll()
	a.free.ClearAll()
	a.nextIndex = 0
	a.count = 0
}
