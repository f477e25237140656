package ecs_test

import (
	"testing"

	"github.com/archonecs/archon/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FrameCounter struct {
	Count int
}

func TestAddSingletonThenGet(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddSingleton(w, FrameCounter{Count: 1})

	s := ecs.NewSingleton[FrameCounter](w)
	require.True(t, s.Exists())
	assert.Equal(t, 1, s.Get().Count)
}

func TestNewSingletonCreatesWithInitializerWhenAbsent(t *testing.T) {
	w := ecs.NewWorld()
	s := ecs.NewSingleton(w, FrameCounter{Count: 7})

	require.True(t, s.Exists())
	assert.Equal(t, 7, s.Get().Count)
}

func TestNewSingletonCreatesZeroValueWithoutInitializer(t *testing.T) {
	w := ecs.NewWorld()
	s := ecs.NewSingleton[FrameCounter](w)

	require.True(t, s.Exists())
	assert.Equal(t, 0, s.Get().Count)
}

func TestSingletonGetReflectsMutationsInPlace(t *testing.T) {
	w := ecs.NewWorld()
	s := ecs.NewSingleton(w, FrameCounter{Count: 0})

	s.Get().Count++
	s.Get().Count++
	assert.Equal(t, 2, s.Get().Count)
}

func TestAddSingletonReplacesPreviousValue(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddSingleton(w, FrameCounter{Count: 1})
	ecs.AddSingleton(w, FrameCounter{Count: 99})

	s := ecs.NewSingleton[FrameCounter](w)
	assert.Equal(t, 99, s.Get().Count)
}

func TestSingletonDoesNotExistBeforeAdded(t *testing.T) {
	w := ecs.NewWorld()
	type Unregistered struct{ V int }

	s := &ecs.Singleton[Unregistered]{}
	s.Init(w)
	assert.False(t, s.Exists())
	assert.Nil(t, s.Get())
}

type clockSystem struct {
	Clock ecs.Singleton[FrameCounter]
}

func (c *clockSystem) Execute(frame *ecs.UpdateFrame) {
	c.Clock.Get().Count++
}

func TestSchedulerInitializesSingletonField(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddSingleton(w, FrameCounter{Count: 0})

	sched := ecs.NewScheduler(w)
	sched.Register(&clockSystem{})
	sched.Once(0)
	sched.Once(0)

	s := ecs.NewSingleton[FrameCounter](w)
	assert.Equal(t, 2, s.Get().Count)
}
