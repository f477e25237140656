package ecs

// WorldStats is a point-in-time snapshot of a World's storage, useful
// for debugging/inspection without pulling in the teacher's excluded
// ImGui panel.
type WorldStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
}

// ArchetypeStats describes one archetype's occupancy.
type ArchetypeStats struct {
	ID           uint64
	EntityCount  int
	ComponentIDs []ComponentID
	TagIDs       []ComponentID
}

// CollectStats walks every interned archetype and returns a snapshot.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		SingletonCount: len(w.singletons),
	}

	w.graph.byID.ForEach(func(_ uint64, a *Archetype) bool {
		stats.ArchetypeCount++
		stats.TotalEntityCount += len(a.entities)
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:           a.id,
			EntityCount:  len(a.entities),
			ComponentIDs: append([]ComponentID(nil), a.componentIDs...),
			TagIDs:       append([]ComponentID(nil), a.tagIDs...),
		})
		return true
	})
	return stats
}
