package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// ArchetypesWith is the query primitive from spec.md §4.6: it returns
// every archetype whose data signature is a superset of the given
// ComponentIDs. Each archetype appears at most once; iteration order
// is unspecified but stable within one call. ids must all be data
// ComponentIDs — tag membership is not indexed here.
func ArchetypesWith(w *World, ids ...ComponentID) []*Archetype {
	return w.graph.archetypesWith(ids)
}

// ArchetypesWithTags layers tag-membership filtering on top of
// ArchetypesWith, per spec.md §4.6 ("tag membership and 'not'/
// relationship filters... composed in a thin layer above this
// primitive"). It first resolves every archetype matching dataIDs
// through the core reverse index, then keeps only those that also
// carry every tag in tagIDs.
func ArchetypesWithTags(w *World, dataIDs []ComponentID, tagIDs ...ComponentID) []*Archetype {
	candidates := w.graph.archetypesWith(dataIDs)
	if len(tagIDs) == 0 {
		return candidates
	}

	result := make([]*Archetype, 0, len(candidates))
	for _, a := range candidates {
		matches := true
		for _, t := range tagIDs {
			if !a.HasTag(t) {
				matches = false
				break
			}
		}
		if matches {
			result = append(result, a)
		}
	}
	return result
}

// GetTable returns a's column for ComponentID c reinterpreted as a
// contiguous []T of length a.Len(). The slice is invalidated by any
// subsequent mutating call on the archetype.
func GetTable[T any](a *Archetype, c ComponentID) []T {
	col, ok := a.columns[c]
	if !ok {
		return nil
	}
	return columnSlice[T](col)
}

// View describes a query shape: a struct T whose fields are pointers
// to component types, exactly as ooftn/ecs/view.go specifies it.
// Embedded fields are required; named fields tagged `ecs:"optional"`
// are filled with nil when the archetype lacks that component. A tag
// field (zero-sized component) has no storage: it is always filled with
// nil, and when required it only constrains archetype membership.
//
// This reflects field *offsets* of the caller's declared struct once,
// at construction — not component layouts at query time, which keeps
// it within spec.md's Non-goal ("reflection of component layouts
// beyond size and alignment").
type View[T any] struct {
	world       *World
	types       []reflect.Type
	ids         []ComponentID
	optional    []bool
	fieldOffset []uintptr
	requiredIDs []ComponentID

	// requiredDataIDs is the data-only subset of requiredIDs, used to
	// drive the core archetypesWith primitive (spec.md §4.6). Required
	// tag fields are excluded here and re-checked by matchesArchetype,
	// the thin layer above that primitive.
	requiredDataIDs []ComponentID
}

// NewView builds a View for struct type T against w.
func NewView[T any](w *World) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{world: w}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}
		componentType := field.Type.Elem()

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "", "required":
			case "optional":
				optional = true
			default:
				panic("ecs: invalid ecs tag value: " + tag)
			}
		}

		id := w.registry.registerType(componentType)

		v.types = append(v.types, componentType)
		v.ids = append(v.ids, id)
		v.optional = append(v.optional, optional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !optional {
			v.requiredIDs = append(v.requiredIDs, id)
			if info, ok := w.registry.TypeInfo(id); ok && !info.IsTag() {
				v.requiredDataIDs = append(v.requiredDataIDs, id)
			}
		}
	}
	return v
}

func (v *View[T]) matchesArchetype(a *Archetype) bool {
	for _, id := range v.requiredIDs {
		if !a.Has(id) {
			return false
		}
	}
	return true
}

// Fill populates ptr's fields from e's components. Returns false (and
// leaves ptr unmodified beyond already-filled fields) if e lacks any
// required component.
func (v *View[T]) Fill(e EntityID, ptr *T) bool {
	loc, ok := v.world.locationOf(e)
	if !ok {
		return false
	}
	return v.fillFromArchetype(unsafe.Pointer(ptr), loc.archetype, loc.row)
}

func (v *View[T]) fillFromArchetype(structPtr unsafe.Pointer, a *Archetype, row int) bool {
	for i, id := range v.ids {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		col, ok := a.columns[id]
		if !ok {
			if v.optional[i] || a.HasTag(id) {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = unsafe.Pointer(&col.data[uintptr(row)*col.size])
	}
	return true
}

// Get returns a filled view for e, or nil if e lacks a required component.
func (v *View[T]) Get(e EntityID) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over every entity matching the view's
// required components, across every matching archetype.
func (v *View[T]) Iter() iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		for _, a := range v.world.graph.archetypesWith(v.requiredDataIDs) {
			if !v.matchesArchetype(a) {
				continue
			}
			var result T
			resultPtr := unsafe.Pointer(&result)
			for row, e := range a.entities {
				if !v.fillFromArchetype(resultPtr, a, row) {
					continue
				}
				if !yield(e, result) {
					return
				}
			}
		}
	}
}

// Query wraps a View with per-frame caching: Execute() snapshots the
// matching archetypes and entities/components once, and Iter/Values
// replay that snapshot. This mirrors ooftn/ecs/query.go, adapted to
// read from byte columns instead of per-type block storage.
type Query[T any] struct {
	view *View[T]
	w    *World

	lastArchetypeGeneration int
	cachedArchetypes        []*Archetype

	cachedEntities   []EntityID
	cachedComponents []T
	cacheValid       bool
}

// NewQuery constructs a Query for struct type T against w.
func NewQuery[T any](w *World) *Query[T] {
	return &Query[T]{view: NewView[T](w), w: w, lastArchetypeGeneration: -1}
}

// Init (re)binds the Query to w. Called by Scheduler during system
// registration so a System's Query fields don't need manual wiring.
func (q *Query[T]) Init(w *World) {
	q.view = NewView[T](w)
	q.w = w
	q.lastArchetypeGeneration = -1
	q.cacheValid = false
}

func (q *Query[T]) ensureArchetypeCache() {
	generation := int(q.w.graph.byID.Len())
	if q.cachedArchetypes != nil && generation == q.lastArchetypeGeneration {
		return
	}
	q.cachedArchetypes = nil
	for _, a := range q.w.graph.archetypesWith(q.view.requiredDataIDs) {
		if q.view.matchesArchetype(a) {
			q.cachedArchetypes = append(q.cachedArchetypes, a)
		}
	}
	q.lastArchetypeGeneration = generation
}

// Execute (re)builds the entity/component snapshot for this frame.
func (q *Query[T]) Execute() {
	q.ensureArchetypeCache()

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, a := range q.cachedArchetypes {
		var result T
		resultPtr := unsafe.Pointer(&result)
		for row, e := range a.entities {
			if !q.view.fillFromArchetype(resultPtr, a, row) {
				continue
			}
			q.cachedEntities = append(q.cachedEntities, e)
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}
	q.cacheValid = true
}

// Iter returns an iterator over the snapshot built by the most recent
// Execute. Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityID, T] {
	if !q.cacheValid {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityID, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over just the component data in the
// snapshot built by the most recent Execute.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for _, c := range q.cachedComponents {
			if !yield(c) {
				return
			}
		}
	}
}
