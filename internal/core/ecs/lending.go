package ecs

// Lend takes h's component out of the store so the caller owns it outright
// while the rest of the aggregate stays usable. Until Restore is called the
// store refuses Insert, Remove, Clear and a second Lend.
func (s *ComponentStore[T]) Lend(h EntityHandle) (T, bool) {
	if s.lent {
		violation("lend", "store is already lending %s", s.loan)
	}
	v, ok := s.remove(h)
	if ok {
		s.lent = true
		s.loan = h
	}
	return v, ok
}

// Restore puts a lent component back at its original position.
func (s *ComponentStore[T]) Restore(h EntityHandle, v T) {
	if !s.lent || s.loan != h {
		violation("restore", "%s is not on loan", h)
	}
	s.lent = false
	s.loan = EntityHandle{}
	s.insert(h, v)
}

// Lent reports whether a component is currently out on loan.
func (s *ComponentStore[T]) Lent() bool { return s.lent }

// handleAt returns the owner of slot index, if any.
func (s *ComponentStore[T]) handleAt(index uint) (EntityHandle, bool) {
	if !s.owners.Test(index) {
		return EntityHandle{}, false
	}
	return s.comps[s.rank(uint32(index))].handle, true
}

// LendEach calls fn for every component of the store selected by project,
// lending the component out for the duration of the call so fn may use w
// freely. The lent store rejects removals while fn runs, so every entity in
// the starting set is visited; a store swapped out from under the walk
// panics.
func LendEach[W, A any](w W, project func(W) *ComponentStore[A], fn func(EntityHandle, *A, W)) {
	working := project(w).owners.Clone()
	for i, ok := working.NextSet(0); ok; i, ok = working.NextSet(i + 1) {
		s := project(w)
		h, owned := s.handleAt(i)
		if !owned {
			violation("lend_each", "slot %d left the store during the walk", i)
		}
		v, _ := s.Lend(h)
		fn(h, &v, w)
		project(w).Restore(h, v)
	}
}

// LendEach2 is LendEach over the entities owning both components.
func LendEach2[W, A, B any](w W, project func(W) (*ComponentStore[A], *ComponentStore[B]), fn func(EntityHandle, *A, *B, W)) {
	sa, sb := project(w)
	working := sa.owners.Clone()
	working.InPlaceIntersection(&sb.owners)
	for i, ok := working.NextSet(0); ok; i, ok = working.NextSet(i + 1) {
		sa, sb := project(w)
		ha, ownedA := sa.handleAt(i)
		hb, ownedB := sb.handleAt(i)
		if !ownedA || !ownedB {
			violation("lend_each", "slot %d left the store during the walk", i)
		}
		if ha != hb {
			violation("lend_each", "slot %d owned by %s and %s", i, ha, hb)
		}
		a, _ := sa.Lend(ha)
		b, _ := sb.Lend(ha)
		fn(ha, &a, &b, w)
		sa, sb = project(w)
		sa.Restore(ha, a)
		sb.Restore(ha, b)
	}
}
