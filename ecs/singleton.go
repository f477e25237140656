package ecs

import "unsafe"

// singletonSlot boxes one singleton component value on the heap so a
// Singleton[T] can hold a stable pointer to it.
type singletonSlot struct {
	ptr unsafe.Pointer
}

// AddSingleton installs value as the world's singleton instance of T,
// registering T if necessary. A later AddSingleton of the same type
// replaces the previous value.
func AddSingleton[T any](w *World, value T) {
	c := Register[T](w.registry)
	if slot, ok := w.singletons[c]; ok {
		*(*T)(slot.ptr) = value
		return
	}
	boxed := new(T)
	*boxed = value
	w.singletons[c] = &singletonSlot{ptr: unsafe.Pointer(boxed)}
}

// Singleton gives cached access to a single, entity-less instance of
// component type T — world-level state such as a frame counter or RNG
// seed. Ported from ooftn/ecs/singleton.go; teacher worlds keep a
// singleton's storage behind a reflect.Type key, this one behind a
// ComponentID, consistent with every other lookup in the package.
type Singleton[T any] struct {
	world *World
	id    ComponentID
	ptr   unsafe.Pointer
}

// NewSingleton returns a Singleton accessor for T, creating the
// singleton (with initializer's first value, or T's zero value) if it
// does not already exist. Guarantees the singleton exists afterward.
func NewSingleton[T any](w *World, initializer ...T) *Singleton[T] {
	c := Register[T](w.registry)
	if _, ok := w.singletons[c]; !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		AddSingleton(w, value)
	}

	s := &Singleton[T]{world: w, id: c}
	s.refresh()
	return s
}

// Init (re)binds the Singleton to w. Called by Scheduler during system
// registration.
func (s *Singleton[T]) Init(w *World) {
	s.world = w
	s.id = Register[T](w.registry)
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if slot, ok := s.world.singletons[s.id]; ok {
		s.ptr = slot.ptr
	} else {
		s.ptr = nil
	}
}

// Get returns a pointer to the singleton's current value, or nil if it
// has never been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	if s.ptr == nil {
		return nil
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added.
func (s *Singleton[T]) Exists() bool {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr != nil
}
