package system

import (
	"math"
	"time"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/world"
)

// BoundsSystem freezes movers that left the [-limit, limit] square. Frozen is
// split off so it can be written during the walk over Position and Velocity.
// Phase 3 (PostUpdate).
type BoundsSystem struct {
	world *world.World
	limit float64
}

func NewBoundsSystem(ws *world.World, limit float64) *BoundsSystem {
	return &BoundsSystem{world: ws, limit: limit}
}

func (s *BoundsSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *BoundsSystem) Update(_ time.Duration) {
	frozen, rest := s.world.SplitWorldNoFrozen()
	ecs.Join2(rest.Position.Column(), rest.Velocity.Column()).
		Without(frozen).
		Each(func(h ecs.EntityHandle, p *component.Position, v *component.Velocity) {
			if math.Abs(p.X) <= s.limit && math.Abs(p.Y) <= s.limit {
				return
			}
			p.X = math.Max(-s.limit, math.Min(s.limit, p.X))
			p.Y = math.Max(-s.limit, math.Min(s.limit, p.Y))
			*v = component.Velocity{}
			frozen.Insert(h, component.Frozen{})
		})
}
