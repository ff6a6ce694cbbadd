package event

import "github.com/l1jgo/vecs/internal/core/ecs"

type EntitySpawned struct {
	Entity ecs.EntityHandle
	Script string
}

type EntityDied struct {
	Entity ecs.EntityHandle
	Tick   uint64
	Name   string
}
