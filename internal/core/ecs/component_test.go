package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	Name string
}

func TestInsertGetRemove(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[label]
	h := a.Allocate()

	_, replaced := s.Insert(h, label{Name: "hello"})
	assert.False(t, replaced)

	got, ok := s.Get(h)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Name)

	removed, ok := s.Remove(h)
	require.True(t, ok)
	assert.Equal(t, "hello", removed.Name)

	_, ok = s.Get(h)
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())
}

func TestInsertReplacesInPlace(t *testing.T) {
	var a HandleAllocator
	s := NewComponentStore[label](4)
	h0, h1 := a.Allocate(), a.Allocate()
	s.Insert(h0, label{Name: "a"})
	s.Insert(h1, label{Name: "b"})

	old, replaced := s.Insert(h0, label{Name: "c"})
	require.True(t, replaced)
	assert.Equal(t, "a", old.Name)
	assert.Equal(t, 2, s.Len())

	got, _ := s.Get(h0)
	assert.Equal(t, "c", got.Name)
}

func TestDenseOrderFollowsSlots(t *testing.T) {
	var s ComponentStore[int]
	for _, idx := range []uint32{130, 5, 64, 0, 63} {
		s.Insert(NewEntityHandle(idx, 0), int(idx))
	}

	want := []EntityHandle{
		NewEntityHandle(0, 0),
		NewEntityHandle(5, 0),
		NewEntityHandle(63, 0),
		NewEntityHandle(64, 0),
		NewEntityHandle(130, 0),
	}
	assert.Equal(t, want, s.Handles())
	for rank, h := range want {
		got, v := s.ComponentAtRank(rank)
		assert.Equal(t, h, got)
		assert.Equal(t, int(h.Index()), v)
		assert.Equal(t, rank, s.rank(h.Index()))
	}

	s.Remove(NewEntityHandle(5, 0))
	h, v := s.ComponentAtRank(1)
	assert.Equal(t, NewEntityHandle(63, 0), h)
	assert.Equal(t, 63, v)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[int]
	h0, h1 := a.Allocate(), a.Allocate()
	s.Insert(h0, 1)

	_, ok := s.Remove(h1)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStaleHandleSeesNothing(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[int]
	old := a.Allocate()
	a.Free(old)
	fresh := a.Allocate()
	s.Insert(fresh, 9)

	_, ok := s.Get(old)
	assert.False(t, ok)
	_, ok = s.Remove(old)
	assert.False(t, ok)
	assert.True(t, s.Contains(fresh))
	assert.False(t, s.Contains(old))
}

func TestInsertOverStaleOwnerPanics(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[int]
	old := a.Allocate()
	s.Insert(old, 1)
	a.Free(old) // never removed from s
	fresh := a.Allocate()

	require.PanicsWithError(t, "ecs: insert: slot 0 still owned by 0:0, inserting 0:1", func() {
		s.Insert(fresh, 2)
	})
}

func TestGetMutWritesThrough(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[label]
	h := a.Allocate()
	s.Insert(h, label{Name: "x"})

	p, ok := s.GetMut(h)
	require.True(t, ok)
	p.Name = "y"

	got, _ := s.Get(h)
	assert.Equal(t, "y", got.Name)
}

func TestGetTwoMut(t *testing.T) {
	var a HandleAllocator
	var s ComponentStore[string]
	h1, h2, h3 := a.Allocate(), a.Allocate(), a.Allocate()
	s.Insert(h1, "hello")
	s.Insert(h2, "hello2")
	s.Insert(h3, "hello3")

	pairs := [][2]EntityHandle{{h1, h2}, {h1, h3}, {h3, h2}}
	for _, p := range pairs {
		x, y := s.GetTwoMut(p[0], p[1])
		yr, xr := s.GetTwoMut(p[1], p[0])
		require.NotNil(t, x)
		require.NotNil(t, y)
		assert.Same(t, x, xr)
		assert.Same(t, y, yr)
		assert.NotSame(t, x, y)
	}

	x, y := s.GetTwoMut(h1, h3)
	*x += "!"
	*y += "?"
	v1, _ := s.Get(h1)
	v3, _ := s.Get(h3)
	assert.Equal(t, "hello!", v1)
	assert.Equal(t, "hello3?", v3)

	h4 := a.Allocate()
	x, y = s.GetTwoMut(h4, h2)
	assert.Nil(t, x)
	assert.Equal(t, "hello2", *y)

	require.PanicsWithError(t, "ecs: get_two_mut: both handles are 0:0", func() {
		s.GetTwoMut(h1, h1)
	})
}

func TestComponentAtRankOutOfRange(t *testing.T) {
	var s ComponentStore[int]
	s.Insert(NewEntityHandle(0, 0), 1)
	require.PanicsWithError(t, "ecs: component_at_rank: rank 1 outside [0,1)", func() {
		s.ComponentAtRank(1)
	})
	require.Panics(t, func() { s.ComponentAtRankMut(-1) })
}

func TestAllStopsEarly(t *testing.T) {
	var s ComponentStore[int]
	for i := uint32(0); i < 5; i++ {
		s.Insert(NewEntityHandle(i, 0), int(i))
	}

	var seen []int
	for _, v := range s.All() {
		seen = append(seen, *v)
		if len(seen) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)

	s.Each(func(_ EntityHandle, v *int) { *v *= 10 })
	got, _ := s.Get(NewEntityHandle(4, 0))
	assert.Equal(t, 40, got)
}

func TestClear(t *testing.T) {
	var s ComponentStore[int]
	s.Insert(NewEntityHandle(3, 0), 1)
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint(0), s.Owners().Count())
}

func TestOnesBetween(t *testing.T) {
	var s ComponentStore[struct{}]
	for _, i := range []uint32{0, 1, 63, 64, 65, 127, 128, 200} {
		s.Insert(NewEntityHandle(i, 0), struct{}{})
	}
	owners := s.Owners()

	tests := []struct {
		lo, hi uint
		want   int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 64, 3},
		{1, 64, 2},
		{63, 65, 2},
		{64, 128, 3},
		{2, 63, 0},
		{0, 1000, 8},
		{129, 201, 1},
		{300, 400, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, onesBetween(owners, tt.lo, tt.hi), "[%d,%d)", tt.lo, tt.hi)
	}
}
