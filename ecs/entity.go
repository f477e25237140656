package ecs

import "fmt"

// EntityID is an opaque handle into a World. It packs a dense slot
// number in its low bits and a generation counter in its high bits; the
// split point is fixed when the owning [EntityIndex] is constructed.
// The zero value never refers to a live entity.
type EntityID uint64

// String renders the raw handle value as EntityID(n) for debugging; it
// does not split out the slot and generation.
func (id EntityID) String() string {
	return fmt.Sprintf("EntityID(%d)", uint64(id))
}

const sparseNone int32 = -1

// EntityIndex is a sparse-set allocator for [EntityID] handles. It
// hands out dense slot numbers starting at 1, recycles freed slots in
// LIFO order, and — when versioning is enabled — stamps each recycled
// handle with an incremented generation so stale copies of a freed
// handle can be told apart from its replacement.
//
// EntityIndex only tracks allocation and liveness; it does not know
// about archetypes or components. [World] layers entity→(archetype,row)
// lookup on top of it.
type EntityIndex struct {
	versioning  bool
	versionBits uint
	entityBits  uint
	entityMask  uint64
	versionMask uint64

	maxID      uint64
	aliveCount int
	dense      []EntityID
	sparse     []int32 // slot -> position in dense, or sparseNone
}

// NewEntityIndex constructs an index with the given versioning policy.
// versionBits is ignored when versioning is false. Sparse capacity is
// pre-reserved to at least 16 entries, per spec.
func NewEntityIndex(versioning bool, versionBits uint, initialCapacity int) *EntityIndex {
	if versionBits == 0 || versionBits >= 64 {
		versionBits = 16
	}
	if initialCapacity < 16 {
		initialCapacity = 16
	}

	idx := &EntityIndex{
		versioning:  versioning,
		versionBits: versionBits,
		entityBits:  64 - versionBits,
	}
	idx.entityMask = (uint64(1) << idx.entityBits) - 1
	idx.versionMask = (uint64(1) << idx.versionBits) - 1

	idx.sparse = make([]int32, initialCapacity)
	for i := range idx.sparse {
		idx.sparse[i] = sparseNone
	}
	return idx
}

func (idx *EntityIndex) slotOf(h EntityID) uint64 {
	return uint64(h) & idx.entityMask
}

func (idx *EntityIndex) versionOf(h EntityID) uint64 {
	return uint64(h) >> idx.entityBits
}

func (idx *EntityIndex) makeHandle(slot, version uint64) EntityID {
	return EntityID((version&idx.versionMask)<<idx.entityBits | (slot & idx.entityMask))
}

func (idx *EntityIndex) withVersion(h EntityID, version uint64) EntityID {
	return idx.makeHandle(idx.slotOf(h), version)
}

func (idx *EntityIndex) growSparse(minSlot uint64) {
	if minSlot < uint64(len(idx.sparse)) {
		return
	}
	newLen := len(idx.sparse) * 2
	if newLen <= int(minSlot) {
		newLen = int(minSlot) + 1
	}
	grown := make([]int32, newLen)
	copy(grown, idx.sparse)
	for i := len(idx.sparse); i < newLen; i++ {
		grown[i] = sparseNone
	}
	idx.sparse = grown
}

// Add allocates an entity handle, reusing a recycled slot in LIFO order
// when one is available.
func (idx *EntityIndex) Add() EntityID {
	if idx.aliveCount < len(idx.dense) {
		h := idx.dense[idx.aliveCount]
		idx.sparse[idx.slotOf(h)] = int32(idx.aliveCount)
		idx.aliveCount++
		return h
	}

	idx.maxID++
	h := idx.makeHandle(idx.maxID, 0)
	idx.dense = append(idx.dense, h)
	idx.growSparse(idx.maxID)
	idx.sparse[idx.maxID] = int32(idx.aliveCount)
	idx.aliveCount++
	return h
}

// Remove releases the handle h. It is a silent no-op if h's slot is
// unknown or not currently live. When versioning is enabled the freed
// slot is parked with its generation incremented (wrapping modulo
// 2^version_bits); otherwise the handle is recycled bit-for-bit.
func (idx *EntityIndex) Remove(h EntityID) {
	slot := idx.slotOf(h)
	if slot >= uint64(len(idx.sparse)) {
		return
	}
	row := idx.sparse[slot]
	if row == sparseNone || int(row) >= idx.aliveCount {
		return
	}

	last := idx.aliveCount - 1
	idx.dense[row], idx.dense[last] = idx.dense[last], idx.dense[row]
	idx.sparse[idx.slotOf(idx.dense[row])] = row

	if idx.versioning {
		nextVersion := (idx.versionOf(h) + 1) & idx.versionMask
		idx.dense[last] = idx.makeHandle(slot, nextVersion)
	} else {
		idx.dense[last] = h
	}

	idx.aliveCount--
	idx.sparse[slot] = sparseNone
}

// IsAlive reports whether h refers to a currently live entity, matching
// generation exactly.
func (idx *EntityIndex) IsAlive(h EntityID) bool {
	slot := idx.slotOf(h)
	if slot >= uint64(len(idx.sparse)) {
		return false
	}
	row := idx.sparse[slot]
	if row == sparseNone || int(row) >= idx.aliveCount {
		return false
	}
	return idx.dense[row] == h
}

// AliveCount returns the number of currently live entities.
func (idx *EntityIndex) AliveCount() int {
	return idx.aliveCount
}

// MaxSlot returns the largest slot number ever issued.
func (idx *EntityIndex) MaxSlot() uint64 {
	return idx.maxID
}
