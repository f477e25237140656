package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityIndexAddRecyclesLIFO(t *testing.T) {
	idx := NewEntityIndex(false, 0, 16)

	a := idx.Add()
	b := idx.Add()
	c := idx.Add()
	assert.True(t, idx.IsAlive(a))
	assert.True(t, idx.IsAlive(b))
	assert.True(t, idx.IsAlive(c))

	idx.Remove(b)
	assert.False(t, idx.IsAlive(b))

	reused := idx.Add()
	assert.Equal(t, b, reused, "recycled slot should come back without versioning")

	idx.Remove(a)
	idx.Remove(reused) // this is the slot originally held by b

	// Seed scenario 1 from spec.md §8: removes in order (a then reused/b),
	// so adds must come back in reverse: reused/b's slot first, then a's.
	first := idx.Add()
	second := idx.Add()
	assert.Equal(t, reused, first)
	assert.Equal(t, a, second)
}

func TestEntityIndexAliveCountTracksAddsMinusRemoves(t *testing.T) {
	idx := NewEntityIndex(true, 8, 16)

	handles := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		handles = append(handles, idx.Add())
	}
	assert.Equal(t, 5, idx.AliveCount())

	idx.Remove(handles[1])
	idx.Remove(handles[3])
	assert.Equal(t, 3, idx.AliveCount())

	idx.Add()
	assert.Equal(t, 4, idx.AliveCount())
}

func TestEntityIndexVersionWrapAt4Bits(t *testing.T) {
	idx := NewEntityIndex(true, 4, 16)

	h := idx.Add()
	slot := idx.slotOf(h)

	var lastVersion uint64
	for cycle := 1; cycle <= 17; cycle++ {
		idx.Remove(h)
		h = idx.Add()
		assert.Equal(t, slot, idx.slotOf(h), "slot must stay stable across recycle cycles")
		lastVersion = idx.versionOf(h)

		switch cycle {
		case 15:
			assert.EqualValues(t, 15, lastVersion)
		case 16:
			assert.EqualValues(t, 0, lastVersion, "16th cycle must wrap to version 0")
		case 17:
			assert.EqualValues(t, 1, lastVersion)
		default:
			assert.EqualValues(t, cycle, lastVersion)
		}
	}
}

func TestEntityIndexWithoutVersioningRecyclesBitForBit(t *testing.T) {
	idx := NewEntityIndex(false, 0, 16)

	h := idx.Add()
	idx.Remove(h)
	reused := idx.Add()
	assert.Equal(t, h, reused)
}

func TestEntityIndexDeadHandleOperationsAreNoops(t *testing.T) {
	idx := NewEntityIndex(true, 16, 16)

	h := idx.Add()
	idx.Remove(h)

	assert.False(t, idx.IsAlive(h))
	assert.NotPanics(t, func() { idx.Remove(h) })
	assert.False(t, idx.IsAlive(EntityID(999999)))
}

func TestEntityIndexGrowsSparseMonotonically(t *testing.T) {
	idx := NewEntityIndex(false, 0, 4)

	for i := 0; i < 100; i++ {
		idx.Add()
	}
	assert.GreaterOrEqual(t, len(idx.sparse), 100)
	assert.Equal(t, 100, idx.AliveCount())
}
