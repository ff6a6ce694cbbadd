package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseSpawn      Phase = iota // 0: script-driven entity creation
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: joins over component stores
	PhasePostUpdate              // 3: split-borrow passes (tagging, reaping)
	PhaseCleanup                 // 4: flush queued entity deletions
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawn:
		return "spawn"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
