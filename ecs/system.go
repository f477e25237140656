package ecs

// System represents one step of per-frame behavior against a World.
// Implementations typically embed Query/Singleton fields, which
// Scheduler.Register wires up automatically.
type System interface {
	Execute(frame *UpdateFrame)
}
