package ecs

import "github.com/bits-and-blooms/bitset"

// Column is one participant of a join: a store plus a cursor remembering the
// last slot it resolved and that slot's rank. Slots must be requested in
// ascending order, which lets each step count owners only across the gap
// since the previous one.
type Column[T any] struct {
	store    *ComponentStore[T]
	optional bool
	last     uint // first slot not yet accounted for in rank
	rank     int
}

// Column starts a required join participant over the store.
func (s *ComponentStore[T]) Column() *Column[T] {
	return &Column[T]{store: s}
}

// Optional marks the column as not narrowing the join; entities lacking the
// component yield nil for it.
func (c *Column[T]) Optional() *Column[T] {
	c.optional = true
	return c
}

func (c *Column[T]) Owners() *bitset.BitSet { return &c.store.owners }

func (c *Column[T]) isOptional() bool { return c.optional }

// reset rewinds the cursor to slot 0. Every join resets its columns when it
// is built, so a column can be handed to more than one join.
func (c *Column[T]) reset() {
	c.last = 0
	c.rank = 0
}

// at resolves the entry at slot pos, which must be owned.
func (c *Column[T]) at(pos uint) (EntityHandle, *T) {
	if pos < c.last {
		violation("join", "column cursor already past slot %d", pos)
	}
	c.rank += onesBetween(&c.store.owners, c.last, pos)
	if c.rank >= len(c.store.comps) {
		violation("join", "rank %d past %d components at slot %d", c.rank, len(c.store.comps), pos)
	}
	e := &c.store.comps[c.rank]
	if e.handle.index != uint32(pos) {
		violation("join", "rank %d holds slot %d, want slot %d", c.rank, e.handle.index, pos)
	}
	c.rank++
	c.last = pos + 1
	return e.handle, &e.value
}

// resolve looks up a non-anchor column at pos and checks it agrees with the
// anchor on which entity lives there.
func resolve[T any](c *Column[T], pos uint, anchor EntityHandle) *T {
	if c.optional && !c.store.owners.Test(pos) {
		return nil
	}
	h, v := c.at(pos)
	if h != anchor {
		violation("join", "slot %d resolved to %s, anchor has %s", pos, h, anchor)
	}
	return v
}
