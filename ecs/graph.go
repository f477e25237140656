package ecs

import "github.com/kamstrup/intmap"

// graph interns archetypes by signature hash and maintains a reverse
// index from ComponentID to every archetype whose signature contains
// it as a data component (tags are not indexed), so the query primitive
// can answer "archetypes containing component C" without a linear scan.
//
// byID and each per-component map inside reverseIndex are keyed by
// uint64 (archetype signature hash), which is
// exactly what github.com/kamstrup/intmap is built for — the same
// integer-keyed hot-path map the teacher repo already reaches for
// (ooftn/ecs/archetype.go's weak-pointer ref table).
type graph struct {
	registry *ComponentRegistry

	byID         *intmap.Map[uint64, *Archetype]
	reverseIndex map[ComponentID]*intmap.Map[uint64, *Archetype]

	empty *Archetype
}

func newGraph(registry *ComponentRegistry) *graph {
	g := &graph{
		registry:     registry,
		byID:         intmap.New[uint64, *Archetype](16),
		reverseIndex: make(map[ComponentID]*intmap.Map[uint64, *Archetype]),
	}
	g.empty = g.intern(nil, nil)
	return g
}

// intern returns the archetype for the given signature, creating and
// registering it on first demand.
func (g *graph) intern(dataIDs, tagIDs []ComponentID) *Archetype {
	dataSorted := sortedCopy(dataIDs)
	tagSorted := sortedCopy(tagIDs)
	id := fnv1a64(dataSorted, tagSorted)

	if a, ok := g.byID.Get(id); ok {
		return a
	}

	a := newArchetype(id, dataSorted, tagSorted, g.registry)
	g.byID.Put(id, a)

	// Only data components are indexed here: spec.md §4.6 restricts this
	// reverse index (and therefore archetypesWith) to the data signature.
	// Tag membership is composed in a thin layer above this primitive —
	// see ArchetypesWithTags in query.go.
	for _, c := range dataSorted {
		g.indexInsert(c, a)
	}
	return a
}

func (g *graph) indexInsert(c ComponentID, a *Archetype) {
	m, ok := g.reverseIndex[c]
	if !ok {
		m = intmap.New[uint64, *Archetype](8)
		g.reverseIndex[c] = m
	}
	m.Put(a.id, a)
}

// addEdge resolves (caching on from) the archetype reached by adding
// component c — a data component if size > 0, else a tag — to from's
// signature. c must not already be part of from's signature.
func (g *graph) addEdge(from *Archetype, c ComponentID, size uintptr) *Archetype {
	if dst, ok := from.addEdges[c]; ok {
		return dst
	}

	var dataIDs, tagIDs []ComponentID
	if size == 0 {
		dataIDs = from.componentIDs
		tagIDs = append(sortedCopy(from.tagIDs), c)
	} else {
		dataIDs = append(sortedCopy(from.componentIDs), c)
		tagIDs = from.tagIDs
	}

	dst := g.intern(dataIDs, tagIDs)
	from.addEdges[c] = dst
	dst.removeEdges[c] = from
	return dst
}

// removeEdge resolves (caching on from) the archetype reached by
// removing component c from from's signature. c must be present.
func (g *graph) removeEdge(from *Archetype, c ComponentID) *Archetype {
	if dst, ok := from.removeEdges[c]; ok {
		return dst
	}

	var dataIDs, tagIDs []ComponentID
	if from.HasTag(c) {
		dataIDs = from.componentIDs
		tagIDs = removeID(from.tagIDs, c)
	} else {
		dataIDs = removeID(from.componentIDs, c)
		tagIDs = from.tagIDs
	}

	dst := g.intern(dataIDs, tagIDs)
	from.removeEdges[c] = dst
	dst.addEdges[c] = from
	return dst
}

func removeID(ids []ComponentID, c ComponentID) []ComponentID {
	out := make([]ComponentID, 0, len(ids))
	for _, id := range ids {
		if id != c {
			out = append(out, id)
		}
	}
	return out
}

// archetypesWith returns every archetype whose data signature is a
// superset of ids, per spec.md §4.6 ("yield archetypes whose data
// signature is a superset"). This is the core primitive: it only
// consults the data-component reverse index, never tag membership.
// Tag membership and "not"/relationship filters are composed in a thin
// layer above this primitive — see ArchetypesWithTags in query.go. Each
// archetype appears at most once; order is unspecified but stable
// within a call.
func (g *graph) archetypesWith(ids []ComponentID) []*Archetype {
	if len(ids) == 0 {
		result := make([]*Archetype, 0, g.byID.Len())
		g.byID.ForEach(func(_ uint64, a *Archetype) bool {
			result = append(result, a)
			return true
		})
		return result
	}

	var smallest *intmap.Map[uint64, *Archetype]
	for _, id := range ids {
		m, ok := g.reverseIndex[id]
		if !ok {
			return nil
		}
		if smallest == nil || m.Len() < smallest.Len() {
			smallest = m
		}
	}

	result := make([]*Archetype, 0, smallest.Len())
	smallest.ForEach(func(_ uint64, a *Archetype) bool {
		for _, id := range ids {
			if !a.HasData(id) {
				return true
			}
		}
		result = append(result, a)
		return true
	})
	return result
}
