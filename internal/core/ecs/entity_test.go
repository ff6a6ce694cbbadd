package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateSequential(t *testing.T) {
	var a HandleAllocator
	for i := uint32(0); i < 4; i++ {
		h := a.Allocate()
		assert.Equal(t, i, h.Index())
		assert.Equal(t, uint32(0), h.Generation())
		assert.True(t, a.IsValid(h))
	}
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 4, a.Cap())
}

func TestFreeThenReuseBumpsGeneration(t *testing.T) {
	a := NewHandleAllocator(8)
	h0 := a.Allocate()
	h1 := a.Allocate()
	a.Free(h0)

	assert.False(t, a.IsValid(h0))
	assert.True(t, a.IsValid(h1))

	reused := a.Allocate()
	require.Equal(t, h0.Index(), reused.Index())
	assert.NotEqual(t, h0.Generation(), reused.Generation())
	assert.NotEqual(t, h0, reused)
	assert.False(t, a.IsValid(h0))
	assert.True(t, a.IsValid(reused))
}

func TestAllocateReusesLowestFreeSlot(t *testing.T) {
	var a HandleAllocator
	hs := make([]EntityHandle, 6)
	for i := range hs {
		hs[i] = a.Allocate()
	}
	a.Free(hs[4])
	a.Free(hs[1])
	a.Free(hs[3])

	assert.Equal(t, uint32(1), a.Allocate().Index())
	assert.Equal(t, uint32(3), a.Allocate().Index())
	assert.Equal(t, uint32(4), a.Allocate().Index())
	assert.Equal(t, uint32(6), a.Allocate().Index())
}

func TestFreeContractViolations(t *testing.T) {
	tests := []struct {
		name string
		run  func(a *HandleAllocator)
		msg  string
	}{
		{
			name: "double free",
			run: func(a *HandleAllocator) {
				h := a.Allocate()
				a.Free(h)
				a.Free(h)
			},
			msg: "ecs: free: handle 0:0 is not live",
		},
		{
			name: "never issued",
			run: func(a *HandleAllocator) {
				a.Allocate()
				a.Free(NewEntityHandle(7, 0))
			},
			msg: "ecs: free: handle 7:0 is not live",
		},
		{
			name: "stale generation",
			run: func(a *HandleAllocator) {
				h := a.Allocate()
				a.Free(h)
				a.Allocate()
				a.Free(h)
			},
			msg: "ecs: free: handle 0:0 is not live",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a HandleAllocator
			require.PanicsWithError(t, tt.msg, func() { tt.run(&a) })
		})
	}
}

func TestLiveHandlesAreUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var a HandleAllocator
	live := make([]EntityHandle, 0, 64)

	for step := 0; step < 2000; step++ {
		if len(live) == 0 || rng.Intn(3) != 0 {
			live = append(live, a.Allocate())
		} else {
			i := rng.Intn(len(live))
			a.Free(live[i])
			live = append(live[:i], live[i+1:]...)
		}

		seen := make(map[EntityHandle]struct{}, len(live))
		slots := make(map[uint32]struct{}, len(live))
		for _, h := range live {
			_, dup := seen[h]
			require.False(t, dup, "handle %s issued twice", h)
			_, dupSlot := slots[h.Index()]
			require.False(t, dupSlot, "slot %d live twice", h.Index())
			seen[h] = struct{}{}
			slots[h.Index()] = struct{}{}
			require.True(t, a.IsValid(h))
		}
		require.Equal(t, len(live), a.Len())
	}
}

func TestAllocatorReset(t *testing.T) {
	var a HandleAllocator
	h := a.Allocate()
	a.Allocate()
	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap())
	assert.False(t, a.IsValid(h))
	assert.Equal(t, NewEntityHandle(0, 0), a.Allocate())
}

func TestEntityHandleString(t *testing.T) {
	assert.Equal(t, "3:2", NewEntityHandle(3, 2).String())
}
