package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/l1jgo/vecs/internal/core/ecs"
	coresys "github.com/l1jgo/vecs/internal/core/system"
)

// safeTick runs one tick. A contract violation raised by the store is a bug in
// a system, not a runtime condition, so it ends the run as a reported defect.
// Any other panic propagates.
func safeTick(r *coresys.Runner, dt time.Duration) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recoverContract(v)
		}
	}()
	r.Tick(dt)
	return nil
}

func recoverContract(v any) error {
	ce, ok := v.(*ecs.ContractError)
	if !ok {
		panic(v)
	}
	return eris.Wrapf(ce, "defect: %s contract violated", ce.Op)
}
