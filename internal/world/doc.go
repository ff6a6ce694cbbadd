// Package world is the aggregate the vecsim demo runs on. Everything but this
// file is generated from world.yaml.
package world

//go:generate go run ../../cmd/ecsgen --schema world.yaml --out world_generated.go
