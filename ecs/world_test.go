package ecs_test

import (
	"testing"

	"github.com/archonecs/archon/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntityStartsEmptyAndAlive(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	assert.True(t, w.IsAlive(e))
	assert.False(t, ecs.HasComponent[Position](w, e))
}

func TestDeleteEntityMakesItDead(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	w.DeleteEntity(e)

	assert.False(t, w.IsAlive(e))
}

func TestDeleteOnDeadHandleIsSilentNoop(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	w.DeleteEntity(e)

	assert.NotPanics(t, func() { w.DeleteEntity(e) })
	assert.NotPanics(t, func() { ecs.AddComponent(w, e, Position{X: 1}) })
	assert.NotPanics(t, func() { ecs.RemoveComponent[Position](w, e) })
}

// Seed scenario 3 from spec.md §8: component round-trip across an
// archetype move, preserving data that existed before the move.
func TestComponentRoundTripAcrossArchetypeMove(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	ecs.AddComponent(w, e, Position{X: 10, Y: 20})
	ecs.AddComponent(w, e, Velocity{DX: 5, DY: 5})

	pos, ok := ecs.GetComponent[Position](w, e)
	require.True(t, ok)
	assert.Equal(t, float32(10), pos.X)

	ecs.RemoveComponent[Velocity](w, e)
	assert.False(t, ecs.HasComponent[Velocity](w, e))

	pos, ok = ecs.GetComponent[Position](w, e)
	require.True(t, ok)
	assert.Equal(t, float32(10), pos.X, "data must survive the archetype move caused by removing Velocity")
}

func TestAddComponentOverwritesWithoutMovingArchetype(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{X: 1, Y: 1})

	before, _ := ecs.GetComponent[Position](w, e)
	beforePtr := before

	ecs.AddComponent(w, e, Position{X: 99, Y: 99})
	after, ok := ecs.GetComponent[Position](w, e)
	require.True(t, ok)
	assert.Equal(t, float32(99), after.X)
	assert.Same(t, beforePtr, after, "overwrite of an already-present component must not relocate the row")
}

// Seed scenario 4: archetype identity is independent of add order.
func TestArchetypeIdentityUnderComponentAddOrder(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.CreateEntity()
	ecs.AddComponent(w, e1, Position{})
	ecs.AddComponent(w, e1, Velocity{})
	ecs.AddComponent(w, e1, Health{})

	e2 := w.CreateEntity()
	ecs.AddComponent(w, e2, Velocity{})
	ecs.AddComponent(w, e2, Health{})
	ecs.AddComponent(w, e2, Position{})

	e3 := w.CreateEntity()
	ecs.AddComponent(w, e3, Health{})
	ecs.AddComponent(w, e3, Position{})
	ecs.AddComponent(w, e3, Velocity{})

	archetypes := ecs.ArchetypesWith(w, ecs.RegisterComponent[Position](w), ecs.RegisterComponent[Velocity](w), ecs.RegisterComponent[Health](w))
	require.Len(t, archetypes, 1)
	assert.Equal(t, 3, archetypes[0].Len())
}

// Seed scenario 5: swap-remove correctness through the public API.
func TestSwapRemoveCorrectnessThroughWorld(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.CreateEntity()
	ecs.AddComponent(w, e1, Position{X: 1})
	e2 := w.CreateEntity()
	ecs.AddComponent(w, e2, Position{X: 2})
	e3 := w.CreateEntity()
	ecs.AddComponent(w, e3, Position{X: 3})

	w.DeleteEntity(e2)

	pos, ok := ecs.GetComponent[Position](w, e3)
	require.True(t, ok)
	assert.Equal(t, float32(3), pos.X, "e3's own value must follow it after the swap-remove")

	_, ok = ecs.GetComponent[Position](w, e2)
	assert.False(t, ok)
}

func TestAddingTagDoesNotAllocateAColumn(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	ecs.AddComponent(w, e, PlayerControlled{})
	assert.True(t, ecs.HasComponent[PlayerControlled](w, e))

	_, ok := ecs.GetComponent[PlayerControlled](w, e)
	assert.False(t, ok, "a tag has no column, so GetComponent reports absent even though HasComponent is true")
}

func TestEnableDisableDoesNotMoveArchetype(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Health{Current: 10, Max: 10})

	before, _ := ecs.GetComponent[Health](w, e)

	ecs.DisableComponent[Health](w, e)
	assert.False(t, ecs.IsComponentEnabled[Health](w, e))
	assert.True(t, ecs.HasComponent[Health](w, e), "disabled components remain in storage")

	after, ok := ecs.GetComponent[Health](w, e)
	require.True(t, ok)
	assert.Same(t, before, after, "enable/disable must not relocate the entity's row")

	ecs.EnableComponent[Health](w, e)
	assert.True(t, ecs.IsComponentEnabled[Health](w, e))
}

func TestTryGetComponentDistinguishesFailureKinds(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{})
	ecs.RegisterComponent[Velocity](w)

	_, err := ecs.TryGetComponent[Velocity](w, e)
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)

	w.DeleteEntity(e)
	_, err = ecs.TryGetComponent[Position](w, e)
	assert.ErrorIs(t, err, ecs.ErrUnknownEntity)

	fresh := w.CreateEntity()
	_, err = ecs.TryGetComponent[Score](w, fresh)
	assert.ErrorIs(t, err, ecs.ErrRegistrationMissing)
}

func TestWorldCollectStats(t *testing.T) {
	w := ecs.NewWorld()

	stats := w.CollectStats()
	assert.Equal(t, 1, stats.ArchetypeCount, "the empty-signature archetype is always interned")
	assert.Equal(t, 0, stats.TotalEntityCount)

	e1 := w.CreateEntity()
	ecs.AddComponent(w, e1, Position{})
	e2 := w.CreateEntity()
	ecs.AddComponent(w, e2, Position{})
	ecs.AddComponent(w, e2, Velocity{})

	stats = w.CollectStats()
	assert.Equal(t, 3, stats.ArchetypeCount) // empty, {Position}, {Position,Velocity}
	assert.Equal(t, 2, stats.TotalEntityCount)
}

func TestWorldWithoutVersioningRecyclesHandlesExactly(t *testing.T) {
	w := ecs.NewWorld(ecs.WithoutVersioning())

	e := w.CreateEntity()
	w.DeleteEntity(e)
	reused := w.CreateEntity()
	assert.Equal(t, e, reused)
}
