package ecs

import "fmt"

// ContractError is the panic value raised when a caller breaks an invariant
// of the store: a double free, a join whose participants disagree on an
// entity, a nested loan, or a rank past the dense storage. Nothing in this
// package recovers from it.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return "ecs: " + e.Op + ": " + e.Msg
}

func violation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
