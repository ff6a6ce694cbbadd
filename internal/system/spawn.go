package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	"github.com/l1jgo/vecs/internal/core/event"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/scripting"
	"github.com/l1jgo/vecs/internal/world"
)

// SpawnSystem creates entities from the spawn script.
// Phase 0 (Spawn). Each tick it spawns perTick new entities plus one for every
// death the script's respawn(name) accepted.
type SpawnSystem struct {
	world    *world.World
	lua      *scripting.Engine
	spawned  *event.Queue[event.EntitySpawned]
	log      *zap.Logger
	perTick  int
	next     int // index passed to spawn(i)
	respawns int
	err      error
}

func NewSpawnSystem(ws *world.World, lua *scripting.Engine, bus *Events, perTick int, log *zap.Logger) *SpawnSystem {
	s := &SpawnSystem{
		world:   ws,
		lua:     lua,
		spawned: bus.Spawned,
		log:     log,
		perTick: perTick,
	}
	bus.Died.Subscribe(func(ev event.EntityDied) {
		if lua.Respawn(ev.Name) {
			s.respawns++
		}
	})
	return s
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	if s.err != nil {
		return
	}
	n := s.perTick + s.respawns
	s.respawns = 0
	if err := s.Spawn(n); err != nil {
		s.err = err
		s.log.Error("spawn script failed", zap.Error(err))
	}
}

// Err returns the first script error hit by Update. Later ticks spawn nothing.
func (s *SpawnSystem) Err() error { return s.err }

// Spawn asks the script for n more entities and inserts the ones it returns.
func (s *SpawnSystem) Spawn(n int) error {
	for range n {
		i := s.next
		s.next++
		spec, ok, err := s.lua.Spawn(i)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		h := s.world.Insert(bundle(spec))
		s.spawned.Emit(event.EntitySpawned{Entity: h, Script: s.lua.Source()})
		s.log.Debug("spawned",
			zap.Stringer("entity", h),
			zap.String("kind", spec.Kind),
			zap.String("name", spec.Name),
		)
	}
	return nil
}

func bundle(spec scripting.SpawnSpec) ecs.Bundle[*world.World] {
	pos := component.Position{X: spec.X, Y: spec.Y}
	name := component.Name{Value: spec.Name}
	if spec.Kind == scripting.KindBeacon {
		return world.Beacon{Position: pos, Name: name}
	}
	return world.Mover{
		Position: pos,
		Velocity: component.Velocity{DX: spec.DX, DY: spec.DY},
		Health:   component.Health{HP: spec.HP, MaxHP: spec.HP, Decay: spec.Decay},
		Name:     name,
	}
}
