package ecs

import "reflect"

// ComponentID identifies a registered component type within one World.
// IDs are allocated from the same kind of slot-allocator used for
// entities (spec.md design note: "the system also treats components as
// entities for future relationship support"), so they are stable and
// unique within the World that issued them but carry no meaning across
// worlds or processes.
type ComponentID uint64

// ComponentTypeInfo describes the storage shape of a registered
// component type. Size == 0 marks the component as a tag: it
// participates in archetype identity but has no backing column.
type ComponentTypeInfo struct {
	Type  reflect.Type
	Size  uintptr
	Align uintptr
}

// IsTag reports whether this component type is zero-sized.
func (ti ComponentTypeInfo) IsTag() bool {
	return ti.Size == 0
}

// ComponentRegistry maps user component types to stable ComponentIDs
// within one World. Registration is idempotent: registering the same
// type twice returns the same ID and an identical ComponentTypeInfo.
type ComponentRegistry struct {
	ids   map[reflect.Type]ComponentID
	infos map[ComponentID]ComponentTypeInfo
	// idAllocator hands out ComponentIDs using the same entity-style
	// slot allocator as World's entities, per design note 9. Components
	// never die, so versioning and recycling are irrelevant here; it is
	// reused purely for a stable, monotonically-allocated ID sequence.
	idAllocator *EntityIndex
}

// NewComponentRegistry constructs an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids:         make(map[reflect.Type]ComponentID),
		infos:       make(map[ComponentID]ComponentTypeInfo),
		idAllocator: NewEntityIndex(false, 0, 16),
	}
}

// Register returns the ComponentID for T, allocating one on first use.
func Register[T any](r *ComponentRegistry) ComponentID {
	var zero T
	t := reflect.TypeOf(zero)
	return r.registerType(t)
}

func (r *ComponentRegistry) registerType(t reflect.Type) ComponentID {
	if id, ok := r.ids[t]; ok {
		return id
	}

	id := ComponentID(r.idAllocator.Add())
	r.ids[t] = id
	r.infos[id] = ComponentTypeInfo{
		Type:  t,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	}
	return id
}

// Lookup returns the ComponentID already assigned to T, if any.
func Lookup[T any](r *ComponentRegistry) (ComponentID, bool) {
	var zero T
	id, ok := r.ids[reflect.TypeOf(zero)]
	return id, ok
}

// TypeInfo returns the registered info for id.
func (r *ComponentRegistry) TypeInfo(id ComponentID) (ComponentTypeInfo, bool) {
	info, ok := r.infos[id]
	return info, ok
}

// SizeOf returns the byte size registered for id, or 0 if unknown/tag.
func (r *ComponentRegistry) SizeOf(id ComponentID) uintptr {
	return r.infos[id].Size
}
