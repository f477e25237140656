package ecs

// UpdateFrame carries the per-tick context passed to every System.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, w *World) *UpdateFrame {
	return &UpdateFrame{DeltaTime: dt, Commands: newCommands(), World: w}
}
