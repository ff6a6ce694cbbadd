// Package ecs stores components keyed by generational entity handles and
// joins several stores over the entities they share.
//
// Absence is data: lookups report a missing component with ok == false or a
// nil pointer. Broken invariants (double frees, joins whose stores disagree
// on an entity, nested loans) panic with a *ContractError.
package ecs
