package system

import (
	"time"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/world"
)

// MovementSystem integrates velocity into position for every entity that is
// neither frozen nor dead.
// Phase 2 (Update).
type MovementSystem struct {
	world *world.World
}

func NewMovementSystem(ws *world.World) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	w := s.world
	ecs.Join2(w.Position.Column(), w.Velocity.Column()).
		Without(&w.Frozen).
		Without(&w.Dead).
		Each(func(_ ecs.EntityHandle, p *component.Position, v *component.Velocity) {
			p.X += v.DX * secs
			p.Y += v.DY * secs
		})
}
