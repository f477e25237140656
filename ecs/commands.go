package ecs

// Commands buffers structural operations (spawn/delete/add/remove/defer)
// issued while iterating a Query, so they can be applied once the
// iteration (and the archetype it reads from) is no longer in flight.
// Swap-remove storage makes in-place structural changes unsafe mid-scan;
// this is ported from ooftn/ecs/commands.go, adapted to the generic
// World operations in world.go. Go generics can't attach type
// parameters to methods, so the component-typed queue operations are
// free functions (QueueSpawn, QueueAddComponent, QueueRemoveComponent)
// rather than methods on Commands.
type Commands struct {
	ops    []func(*World)
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues an arbitrary callback to run after every queued
// structural operation on the next Flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// DeleteEntity queues deletion of e.
func (c *Commands) DeleteEntity(e EntityID) {
	c.ops = append(c.ops, func(w *World) { w.DeleteEntity(e) })
}

// QueueSpawn queues creation of a fresh entity carrying value.
func QueueSpawn[T any](c *Commands, value T) {
	c.ops = append(c.ops, func(w *World) {
		e := w.CreateEntity()
		AddComponent(w, e, value)
	})
}

// QueueAddComponent queues attaching value to e.
func QueueAddComponent[T any](c *Commands, e EntityID, value T) {
	c.ops = append(c.ops, func(w *World) { AddComponent(w, e, value) })
}

// QueueRemoveComponent queues removing T from e.
func QueueRemoveComponent[T any](c *Commands, e EntityID) {
	c.ops = append(c.ops, func(w *World) { RemoveComponent[T](w, e) })
}

// Flush applies every queued structural operation to w in queue order,
// then runs every deferred callback, then resets the buffer.
func (c *Commands) Flush(w *World) {
	for _, op := range c.ops {
		op(w)
	}
	for _, fn := range c.defers {
		fn()
	}
	c.ops = c.ops[:0]
	c.defers = c.defers[:0]
}
