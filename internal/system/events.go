package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/vecs/internal/core/event"
	coresys "github.com/l1jgo/vecs/internal/core/system"
)

// Events bundles the bus with the queues the demo systems share.
type Events struct {
	Bus     *event.Bus
	Spawned *event.Queue[event.EntitySpawned]
	Died    *event.Queue[event.EntityDied]
}

func NewEvents() *Events {
	bus := event.NewBus()
	return &Events{
		Bus:     bus,
		Spawned: event.NewQueue[event.EntitySpawned](bus),
		Died:    event.NewQueue[event.EntityDied](bus),
	}
}

// EventSystem delivers the previous tick's events.
// Phase 1 (PreUpdate).
type EventSystem struct {
	events *Events
	log    *zap.Logger
}

func NewEventSystem(events *Events, log *zap.Logger) *EventSystem {
	return &EventSystem{events: events, log: log}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) {
	s.events.Bus.SwapBuffers()
	if n := s.events.Bus.DispatchAll(); n > 0 {
		s.log.Debug("events dispatched", zap.Int("count", n))
	}
}
