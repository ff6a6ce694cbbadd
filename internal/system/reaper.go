package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/vecs/internal/component"
	"github.com/l1jgo/vecs/internal/core/ecs"
	"github.com/l1jgo/vecs/internal/core/event"
	coresys "github.com/l1jgo/vecs/internal/core/system"
	"github.com/l1jgo/vecs/internal/world"
)

// ReaperSystem tags entities whose HP reached zero with Dead, queues them for
// deletion, and announces the death. It splits Dead off the world so the tag
// can be written while walking the other stores.
// Phase 3 (PostUpdate).
type ReaperSystem struct {
	world *world.World
	died  *event.Queue[event.EntityDied]
	log   *zap.Logger
	tick  uint64
}

func NewReaperSystem(ws *world.World, events *Events, log *zap.Logger) *ReaperSystem {
	return &ReaperSystem{world: ws, died: events.Died, log: log}
}

func (s *ReaperSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ReaperSystem) Update(_ time.Duration) {
	s.tick++
	dead, rest := s.world.SplitWorldNoDead()
	ecs.Join2(rest.Health.Column(), rest.Name.Column().Optional()).
		Without(dead).
		Each(func(h ecs.EntityHandle, hp *component.Health, name *component.Name) {
			if hp.HP > 0 {
				return
			}
			dead.Insert(h, component.Dead{Tick: s.tick})
			rest.MarkForDestruction(h)

			ev := event.EntityDied{Entity: h, Tick: s.tick}
			if name != nil {
				ev.Name = name.Value
			}
			s.died.Emit(ev)
			s.log.Debug("entity died", zap.Stringer("entity", h), zap.String("name", ev.Name))
		})
}
