package system

import (
	"time"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/world"
)

// DamageSystem subtracts each living entity's Decay from its HP, floored at 0.
// Phase 2 (Update).
type DamageSystem struct {
	world *world.World
}

func NewDamageSystem(ws *world.World) *DamageSystem {
	return &DamageSystem{world: ws}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DamageSystem) Update(_ time.Duration) {
	ecs.Join1(s.world.Health.Column()).
		Without(&s.world.Dead).
		Each(func(_ ecs.EntityHandle, hp *component.Health) {
			hp.HP = max(hp.HP-hp.Decay, 0)
		})
}
