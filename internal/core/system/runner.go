package system

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Runner drives one tick of the aggregate: script spawns, then delivery of
// last tick's events, then joins, then split-borrow passes that tag or queue
// entities, then the cleanup flush. Systems sharing a phase keep their
// registration order, so a host can rely on e.g. damage before healing.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		log:     log,
	}
}

// Register adds a system. Order is settled lazily on the next tick.
func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once. A tick that panics (the store reports broken
// contracts by panicking) is not counted.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	start := time.Now()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.ticks++
	r.log.Debug("tick",
		zap.Uint64("tick", r.ticks),
		zap.Int("systems", len(r.systems)),
		zap.Duration("took", time.Since(start)),
	)
}

// TickPhase runs only the systems of one phase, e.g. PhaseCleanup to flush
// deletions queued by a split view outside the regular tick. It does not
// advance Ticks.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Count returns how many systems are registered for phase.
func (r *Runner) Count(phase Phase) int {
	n := 0
	for _, s := range r.systems {
		if s.Phase() == phase {
			n++
		}
	}
	return n
}

// Ticks returns the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		slices.SortStableFunc(r.systems, func(a, b System) int {
			return cmp.Compare(a.Phase(), b.Phase())
		})
		r.sorted = true
	}
}
