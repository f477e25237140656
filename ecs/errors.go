package ecs

import "errors"

// Sentinel errors for the four kinds named in spec.md §7. The default,
// silent-no-op API never returns these — they exist for the Try*
// accessor variants a caller can use when it wants an explicit error
// instead of a zero value or no-op.
var (
	// ErrUnknownEntity means the handle is not live in the entity index.
	ErrUnknownEntity = errors.New("ecs: unknown entity")
	// ErrMissingComponent means the entity does not carry the requested component.
	ErrMissingComponent = errors.New("ecs: missing component")
	// ErrTypeMismatch means the entity's archetype has no column for the requested type.
	ErrTypeMismatch = errors.New("ecs: component type mismatch")
	// ErrRegistrationMissing means a component type was used before registration.
	ErrRegistrationMissing = errors.New("ecs: component type not registered")
)
