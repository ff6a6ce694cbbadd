package system

import (
	"time"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/world"
)

// AuraSystem heals every living entity by one HP per beacon within radius.
// A beacon is anything with a Position but no Velocity.
//
// Beacons are indexed in a grid first. Each entity's Position and Health are
// then lent out while the beacons' positions are read back from the world.
// Phase 2 (Update), after DamageSystem.
type AuraSystem struct {
	world   *world.World
	radius  float64
	beacons *grid
}

func NewAuraSystem(ws *world.World, radius float64) *AuraSystem {
	return &AuraSystem{world: ws, radius: radius, beacons: newGrid(radius)}
}

func (s *AuraSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AuraSystem) Update(_ time.Duration) {
	s.beacons.reset()
	ecs.Join1(s.world.Position.Column()).
		Without(&s.world.Velocity).
		Each(func(h ecs.EntityHandle, p *component.Position) {
			s.beacons.add(h, p.X, p.Y)
		})

	r2 := s.radius * s.radius
	ecs.LendEach2(s.world, storesForAura, func(h ecs.EntityHandle, p *component.Position, hp *component.Health, w *world.World) {
		if hp.HP <= 0 || w.Dead.Contains(h) {
			return
		}
		var near int32
		s.beacons.nearby(p.X, p.Y, func(b ecs.EntityHandle) {
			q, ok := w.Position.Get(b)
			if !ok {
				return
			}
			dx, dy := q.X-p.X, q.Y-p.Y
			if dx*dx+dy*dy <= r2 {
				near++
			}
		})
		hp.HP = min(hp.HP+near, hp.MaxHP)
	})
}

func storesForAura(w *world.World) (*ecs.ComponentStore[component.Position], *ecs.ComponentStore[component.Health]) {
	return &w.Position, &w.Health
}
