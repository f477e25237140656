package ecs_test

// Shared component fixtures for the public-API (ecs_test) test files,
// mirroring ooftn/ecs/test_components_test.go's role.

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type Name struct {
	Value string
}

// PlayerControlled and Dead are zero-sized: they register as tags.
type PlayerControlled struct{}
type Dead struct{}

type Score int32
