package ecs

import "unsafe"

// location is where one entity currently lives: which archetype, and
// which row within it. This is the "entity index → (archetype, row)"
// half of spec.md's entity index subsystem; EntityIndex itself only
// handles allocation/liveness.
type location struct {
	archetype *Archetype
	row       int
}

// World owns one entity index, one component registry, one archetype
// graph, and the location table tying them together. Worlds are
// independent values — there is no global/process-wide state anywhere
// in this package — and a World is not safe for concurrent use: every
// operation assumes exclusive access, per spec.md §5.
type World struct {
	entities  *EntityIndex
	registry  *ComponentRegistry
	graph     *graph
	locations []location

	singletons map[ComponentID]*singletonSlot

	opts options
}

// NewWorld constructs an empty World.
func NewWorld(opts ...WorldOption) *World {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	registry := NewComponentRegistry()
	w := &World{
		entities:   NewEntityIndex(o.versioning, o.versionBits, o.initialSparseCapacity),
		registry:   registry,
		graph:      newGraph(registry),
		singletons: make(map[ComponentID]*singletonSlot),
		opts:       o,
	}
	w.locations = make([]location, len(w.entities.sparse))
	for i := range w.locations {
		w.locations[i] = location{archetype: w.graph.empty}
	}
	return w
}

// DeleteWorld releases a World. The Go garbage collector reclaims a
// World's memory once nothing references it; this exists only to give
// callers porting from spec.md's external interface a symmetrical call.
func DeleteWorld(w *World) {}

// RegisterComponent registers T (idempotent) and returns its ComponentID.
func RegisterComponent[T any](w *World) ComponentID {
	return Register[T](w.registry)
}

func (w *World) growLocations(slot uint64) {
	if slot < uint64(len(w.locations)) {
		return
	}
	newLen := len(w.locations) * 2
	if newLen <= int(slot) {
		newLen = int(slot) + 1
	}
	grown := make([]location, newLen)
	copy(grown, w.locations)
	for i := len(w.locations); i < newLen; i++ {
		grown[i] = location{archetype: w.graph.empty}
	}
	w.locations = grown
}

func (w *World) locationOf(e EntityID) (location, bool) {
	if !w.entities.IsAlive(e) {
		return location{}, false
	}
	return w.locations[w.entities.slotOf(e)], true
}

// maybeDestroyArchetype removes an archetype that just lost its last
// entity from the graph, unless the World is configured to retain
// empty archetypes (the default) or a is the permanent empty-signature
// archetype every fresh entity lands in.
func (w *World) maybeDestroyArchetype(a *Archetype) {
	if w.opts.retainEmptyArchetypes || len(a.entities) != 0 || a == w.graph.empty {
		return
	}

	w.graph.byID.Del(a.id)
	for _, c := range a.componentIDs {
		if m, ok := w.graph.reverseIndex[c]; ok {
			m.Del(a.id)
		}
	}
	for c, neighbor := range a.addEdges {
		delete(neighbor.removeEdges, c)
	}
	for c, neighbor := range a.removeEdges {
		delete(neighbor.addEdges, c)
	}
}

// CreateEntity allocates a fresh entity with no components, placed in
// the empty-signature archetype.
func (w *World) CreateEntity() EntityID {
	h := w.entities.Add()
	slot := w.entities.slotOf(h)
	w.growLocations(slot)

	row := w.graph.empty.appendEntity(h)
	w.locations[slot] = location{archetype: w.graph.empty, row: row}
	return h
}

// DeleteEntity removes e from the world. A dead handle is a silent
// no-op, per spec.md §7.
func (w *World) DeleteEntity(e EntityID) {
	if !w.entities.IsAlive(e) {
		return
	}
	slot := w.entities.slotOf(e)
	loc := w.locations[slot]

	movedEntity, moved := loc.archetype.swapRemoveRow(loc.row)
	if moved {
		w.locations[w.entities.slotOf(movedEntity)] = location{archetype: loc.archetype, row: loc.row}
	}
	w.locations[slot] = location{archetype: w.graph.empty}

	w.entities.Remove(e)
	w.maybeDestroyArchetype(loc.archetype)
}

// IsAlive reports whether e refers to a currently live entity.
func (w *World) IsAlive(e EntityID) bool {
	return w.entities.IsAlive(e)
}

func valueBytes[T any](v *T, size uintptr) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// AddComponent attaches value to e, moving it to the archetype reached
// by adding T's ComponentID. If e already carries a data component of
// type T, the existing value is overwritten in place (no archetype
// move). Attaching a tag (size 0) to an entity that already has it is
// a no-op. Operating on a dead entity is a silent no-op.
func AddComponent[T any](w *World, e EntityID, value T) {
	if !w.entities.IsAlive(e) {
		return
	}
	c := Register[T](w.registry)
	size := w.registry.SizeOf(c)

	slot := w.entities.slotOf(e)
	loc := w.locations[slot]
	oldArch := loc.archetype

	if oldArch.Has(c) {
		if size > 0 {
			oldArch.write(c, loc.row, valueBytes(&value, size))
		}
		return
	}

	newArch := w.graph.addEdge(oldArch, c, size)
	// Ordering rule (spec.md §4.5): append to the destination before
	// swap-removing from the source, so the entity is never transiently
	// missing from the world and the moved-last bookkeeping always has
	// a distinct row to point at.
	rowNew := newArch.appendEntity(e)

	for _, shared := range oldArch.componentIDs {
		if newArch.HasData(shared) {
			oldArch.columns[shared].copyRowTo(loc.row, newArch.columns[shared], rowNew)
		}
	}
	if size > 0 {
		newArch.write(c, rowNew, valueBytes(&value, size))
	}

	movedEntity, moved := oldArch.swapRemoveRow(loc.row)
	if moved {
		w.locations[w.entities.slotOf(movedEntity)] = location{archetype: oldArch, row: loc.row}
	}
	w.locations[slot] = location{archetype: newArch, row: rowNew}
	w.maybeDestroyArchetype(oldArch)
}

// RemoveComponent detaches T from e, moving it to the archetype reached
// by removing T's ComponentID. Removing a component the entity does
// not have, or operating on a dead entity, is a silent no-op.
func RemoveComponent[T any](w *World, e EntityID) {
	if !w.entities.IsAlive(e) {
		return
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return
	}

	slot := w.entities.slotOf(e)
	loc := w.locations[slot]
	oldArch := loc.archetype
	if !oldArch.Has(c) {
		return
	}

	newArch := w.graph.removeEdge(oldArch, c)
	rowNew := newArch.appendEntity(e)

	for _, kept := range newArch.componentIDs {
		if oldArch.HasData(kept) {
			oldArch.columns[kept].copyRowTo(loc.row, newArch.columns[kept], rowNew)
		}
	}

	movedEntity, moved := oldArch.swapRemoveRow(loc.row)
	if moved {
		w.locations[w.entities.slotOf(movedEntity)] = location{archetype: oldArch, row: loc.row}
	}
	w.locations[slot] = location{archetype: newArch, row: rowNew}
	w.maybeDestroyArchetype(oldArch)
}

// HasComponent reports whether e currently carries a component (data
// or tag) of type T. Unregistered types and dead entities report false.
func HasComponent[T any](w *World, e EntityID) bool {
	loc, ok := w.locationOf(e)
	if !ok {
		return false
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return false
	}
	return loc.archetype.Has(c)
}

// GetComponent returns a pointer to e's T component, valid until the
// next mutating call on w, and true — or (nil, false) if the entity is
// dead, T was never registered, e lacks the component, or T is a tag
// (which has no backing storage to point at).
func GetComponent[T any](w *World, e EntityID) (*T, bool) {
	loc, ok := w.locationOf(e)
	if !ok {
		return nil, false
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return nil, false
	}
	col, ok := loc.archetype.columns[c]
	if !ok {
		return nil, false
	}
	return columnElem[T](col, loc.row), true
}

// TryGetComponent mirrors GetComponent but distinguishes the four
// failure kinds named in spec.md §7 via the sentinel errors in errors.go.
func TryGetComponent[T any](w *World, e EntityID) (*T, error) {
	if !w.entities.IsAlive(e) {
		return nil, ErrUnknownEntity
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return nil, ErrRegistrationMissing
	}
	loc := w.locations[w.entities.slotOf(e)]
	if !loc.archetype.Has(c) {
		return nil, ErrMissingComponent
	}
	col, ok := loc.archetype.columns[c]
	if !ok {
		return nil, ErrTypeMismatch
	}
	return columnElem[T](col, loc.row), nil
}

// EnableComponent clears T's disabled flag on e's archetype. It does
// not move the entity. A dead entity or unregistered type is a no-op.
func EnableComponent[T any](w *World, e EntityID) {
	loc, ok := w.locationOf(e)
	if !ok {
		return
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return
	}
	delete(loc.archetype.disabledSet, c)
}

// DisableComponent sets T's disabled flag on e's archetype. Disabled
// components remain in storage and are still visible to HasComponent/
// GetComponent. The flag is reported by IsComponentEnabled; the query
// helpers in this package (ArchetypesWith, View, Query) do not consult
// it.
func DisableComponent[T any](w *World, e EntityID) {
	loc, ok := w.locationOf(e)
	if !ok {
		return
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return
	}
	loc.archetype.disabledSet[c] = struct{}{}
}

// IsComponentEnabled reports whether T is present and not disabled on e.
func IsComponentEnabled[T any](w *World, e EntityID) bool {
	loc, ok := w.locationOf(e)
	if !ok {
		return false
	}
	c, ok := Lookup[T](w.registry)
	if !ok {
		return false
	}
	return loc.archetype.Has(c) && !loc.archetype.IsDisabled(c)
}
