package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	"github.com/l1jgo/vecs/internal/core/event"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/scripting"
	"github.com/l1jgo/vecs/internal/world"
)

func addMover(w *world.World, name string, x, y, dx, dy float64, hp, decay int32) ecs.EntityHandle {
	return w.Insert(world.Mover{
		Position: component.Position{X: x, Y: y},
		Velocity: component.Velocity{DX: dx, DY: dy},
		Health:   component.Health{HP: hp, MaxHP: 10, Decay: decay},
		Name:     component.Name{Value: name},
	})
}

func addBeacon(w *world.World, x, y float64) ecs.EntityHandle {
	return w.Insert(world.Beacon{Position: component.Position{X: x, Y: y}, Name: component.Name{Value: "beacon"}})
}

func position(t *testing.T, w *world.World, h ecs.EntityHandle) component.Position {
	t.Helper()
	p, ok := w.Position.Get(h)
	require.True(t, ok)
	return p
}

func health(t *testing.T, w *world.World, h ecs.EntityHandle) int32 {
	t.Helper()
	hp, ok := w.Health.Get(h)
	require.True(t, ok)
	return hp.HP
}

func TestMovementSkipsFrozenAndDead(t *testing.T) {
	w := world.NewWorld()
	moving := addMover(w, "a", 0, 0, 2, -4, 10, 0)
	frozen := addMover(w, "b", 1, 1, 2, 2, 10, 0)
	dead := addMover(w, "c", 2, 2, 2, 2, 10, 0)
	beacon := addBeacon(w, 3, 3)
	w.Frozen.Insert(frozen, component.Frozen{})
	w.Dead.Insert(dead, component.Dead{Tick: 1})

	NewMovementSystem(w).Update(500 * time.Millisecond)

	assert.Equal(t, component.Position{X: 1, Y: -2}, position(t, w, moving))
	assert.Equal(t, component.Position{X: 1, Y: 1}, position(t, w, frozen))
	assert.Equal(t, component.Position{X: 2, Y: 2}, position(t, w, dead))
	assert.Equal(t, component.Position{X: 3, Y: 3}, position(t, w, beacon))
}

func TestDamageFloorsAtZero(t *testing.T) {
	w := world.NewWorld()
	h := addMover(w, "a", 0, 0, 0, 0, 5, 2)
	dead := addMover(w, "b", 0, 0, 0, 0, 5, 2)
	w.Dead.Insert(dead, component.Dead{})

	s := NewDamageSystem(w)
	for _, want := range []int32{3, 1, 0, 0} {
		s.Update(time.Millisecond)
		assert.Equal(t, want, health(t, w, h))
	}
	assert.Equal(t, int32(5), health(t, w, dead))
}

func TestReaperTagsAndCleanupDeletes(t *testing.T) {
	w := world.NewWorld()
	events := NewEvents()
	alive := addMover(w, "alive", 0, 0, 0, 0, 4, 0)
	dying := addMover(w, "dying", 0, 0, 0, 0, 0, 0)
	beacon := addBeacon(w, 0, 0)

	var died []event.EntityDied
	events.Died.Subscribe(func(ev event.EntityDied) { died = append(died, ev) })

	NewReaperSystem(w, events, zap.NewNop()).Update(time.Millisecond)

	assert.True(t, w.Dead.Contains(dying))
	assert.False(t, w.Dead.Contains(alive))
	assert.Equal(t, 1, w.Pending())

	NewCleanupSystem(w, zap.NewNop()).Update(time.Millisecond)
	assert.False(t, w.Alive(dying))
	assert.True(t, w.Alive(alive))
	assert.True(t, w.Alive(beacon))
	assert.True(t, w.Dead.IsEmpty())
	assert.Equal(t, 0, w.Pending())

	NewEventSystem(events, zap.NewNop()).Update(time.Millisecond)
	assert.Equal(t, []event.EntityDied{{Entity: dying, Tick: 1, Name: "dying"}}, died)
}

func TestReaperWithoutName(t *testing.T) {
	w := world.NewWorld()
	events := NewEvents()
	h := w.NewEntity()
	w.Health.Insert(h, component.Health{})

	var died []event.EntityDied
	events.Died.Subscribe(func(ev event.EntityDied) { died = append(died, ev) })

	NewReaperSystem(w, events, zap.NewNop()).Update(time.Millisecond)
	events.Bus.SwapBuffers()
	events.Bus.DispatchAll()

	require.Len(t, died, 1)
	assert.Equal(t, h, died[0].Entity)
	assert.Empty(t, died[0].Name)
}

func TestBoundsFreezes(t *testing.T) {
	w := world.NewWorld()
	inside := addMover(w, "in", 50, -50, 1, 1, 10, 0)
	outside := addMover(w, "out", 150, -120, 3, -3, 10, 0)

	NewBoundsSystem(w, 100).Update(time.Millisecond)

	assert.False(t, w.Frozen.Contains(inside))
	assert.True(t, w.Frozen.Contains(outside))
	assert.Equal(t, component.Position{X: 100, Y: -100}, position(t, w, outside))
	v, _ := w.Velocity.Get(outside)
	assert.Equal(t, component.Velocity{}, v)

	// frozen entities no longer move
	NewMovementSystem(w).Update(time.Second)
	assert.Equal(t, component.Position{X: 100, Y: -100}, position(t, w, outside))
	assert.Equal(t, component.Position{X: 51, Y: -49}, position(t, w, inside))
}

func TestAuraHealsNearBeacons(t *testing.T) {
	w := world.NewWorld()
	h := addMover(w, "a", 0, 0, 1, 0, 5, 0)
	full := addMover(w, "b", 1, 0, 1, 0, 10, 0)
	gone := addMover(w, "c", 0, 1, 1, 0, 0, 0)
	addBeacon(w, 1, 1)
	addBeacon(w, -2, 0)
	addBeacon(w, 10, 10)

	s := NewAuraSystem(w, 3)
	s.Update(time.Millisecond)

	assert.Equal(t, int32(7), health(t, w, h))
	assert.Equal(t, int32(10), health(t, w, full), "capped at MaxHP")
	assert.Equal(t, int32(0), health(t, w, gone), "dead entities are not healed")
	assert.False(t, w.Position.Lent())
	assert.False(t, w.Health.Lent())

	s.Update(time.Millisecond)
	assert.Equal(t, int32(9), health(t, w, h))
}

const spawnScript = `
function spawn(i)
  if i == 1 then return nil end
  if i == 2 then return { kind = "beacon", name = "b" } end
  if i == 9 then error("nope") end
  return { kind = "mover", name = "m" .. i, hp = 5, decay = 1, dx = 1 }
end

function respawn(name)
  return name == "m0"
end
`

func newEngine(t *testing.T, src string) *scripting.Engine {
	t.Helper()
	e, err := scripting.NewEngineFromSource("test.lua", src, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestSpawnSystem(t *testing.T) {
	w := world.NewWorld()
	events := NewEvents()
	s := NewSpawnSystem(w, newEngine(t, spawnScript), events, 0, zap.NewNop())

	var spawned []event.EntitySpawned
	events.Spawned.Subscribe(func(ev event.EntitySpawned) { spawned = append(spawned, ev) })

	require.NoError(t, s.Spawn(3))
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 2, w.Position.Len())
	assert.Equal(t, 1, w.Velocity.Len())

	m0 := ecs.NewEntityHandle(0, 0)
	assert.Equal(t, "m0", moverName(t, w, m0))

	es := NewEventSystem(events, zap.NewNop())
	es.Update(time.Millisecond)
	require.Len(t, spawned, 2)
	assert.Equal(t, "test.lua", spawned[0].Script)

	// a death accepted by respawn(name) spawns one more entity next tick
	events.Died.Emit(event.EntityDied{Entity: m0, Name: "m0"})
	events.Died.Emit(event.EntityDied{Entity: ecs.NewEntityHandle(5, 0), Name: "other"})
	es.Update(time.Millisecond)
	s.Update(time.Millisecond)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, 2, w.Velocity.Len())

	s.Update(time.Millisecond)
	assert.Equal(t, 3, w.Len(), "respawn credit is used once")
	assert.NoError(t, s.Err())
}

func moverName(t *testing.T, w *world.World, h ecs.EntityHandle) string {
	t.Helper()
	b, ok := world.BorrowMover(h, w)
	require.True(t, ok)
	return b.Name.Value
}

func TestSpawnSystemStopsOnScriptError(t *testing.T) {
	w := world.NewWorld()
	s := NewSpawnSystem(w, newEngine(t, spawnScript), NewEvents(), 5, zap.NewNop())

	s.Update(time.Millisecond) // i = 0..4
	require.NoError(t, s.Err())
	s.Update(time.Millisecond) // i = 5..9, fails at 9
	require.Error(t, s.Err())
	assert.Contains(t, s.Err().Error(), "spawn(9)")

	n := w.Len()
	s.Update(time.Millisecond)
	assert.Equal(t, n, w.Len())
}

func TestFullTick(t *testing.T) {
	lua, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer lua.Close()

	log := zap.NewNop()
	w := world.NewWorld()
	events := NewEvents()
	spawner := NewSpawnSystem(w, lua, events, 2, log)
	require.NoError(t, spawner.Spawn(32))

	runner := coresys.NewRunner(log)
	runner.Register(NewCleanupSystem(w, log))
	runner.Register(NewReaperSystem(w, events, log))
	runner.Register(NewBoundsSystem(w, 100))
	runner.Register(NewMovementSystem(w))
	runner.Register(NewDamageSystem(w))
	runner.Register(NewAuraSystem(w, 5))
	runner.Register(NewEventSystem(events, log))
	runner.Register(spawner)

	deaths := 0
	events.Died.Subscribe(func(event.EntityDied) { deaths++ })

	for range 200 {
		runner.Tick(50 * time.Millisecond)
		require.NoError(t, spawner.Err())
		assert.True(t, w.Dead.IsEmpty())
		assert.Equal(t, 0, w.Pending())
		assert.Equal(t, w.Len(), w.Position.Len())
		assert.Equal(t, w.Health.Len(), w.Velocity.Len())
		assert.Equal(t, w.Health.Len(), w.Name.Len()-countBeacons(w))
	}
	assert.Positive(t, deaths)
	assert.Equal(t, uint64(200), runner.Ticks())
}

func countBeacons(w *world.World) int {
	n := 0
	for h := range w.Name.All() {
		if !w.Velocity.Contains(h) {
			n++
		}
	}
	return n
}
