package ecs

import "github.com/bits-and-blooms/bitset"

type participant interface {
	Presence
	isOptional() bool
	reset()
}

// join holds the working set shared by every JoinN iterator. The set starts
// as the anchor's owners narrowed by each required participant, is further
// narrowed by With/Without, and is consumed bit by bit as iteration proceeds.
type join struct {
	working *bitset.BitSet
	next    uint
	started bool
}

func newJoin(anchor participant, others ...participant) join {
	if anchor.isOptional() {
		violation("join", "anchor column cannot be optional")
	}
	anchor.reset()
	working := anchor.Owners().Clone()
	for _, p := range others {
		p.reset()
		if !p.isOptional() {
			working.InPlaceIntersection(p.Owners())
		}
	}
	return join{working: working}
}

func (j *join) with(p Presence) {
	if j.started {
		violation("with", "join already iterating")
	}
	j.working.InPlaceIntersection(p.Owners())
}

// without drops every entity p owns, i.e. intersects with p's complement.
func (j *join) without(p Presence) {
	if j.started {
		violation("without", "join already iterating")
	}
	j.working.InPlaceDifference(p.Owners())
}

func (j *join) advance() (uint, bool) {
	j.started = true
	pos, ok := j.working.NextSet(j.next)
	if !ok {
		return 0, false
	}
	j.working.Clear(pos)
	j.next = pos + 1
	return pos, true
}

// remaining is the number of entities the join has yet to yield.
func (j *join) remaining() int {
	return int(j.working.Count())
}
