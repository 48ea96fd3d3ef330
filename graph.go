package silo

import "github.com/TheBitDrifter/mask"

// archetypeGraph owns every archetype ever created for a Registry and
// indexes them by canonical component set for O(1) dedup. Archetypes
// are never destroyed for the life of the registry; edges between them
// are non-owning *archetype pointers to archetypes this graph already
// keeps alive in all.
type archetypeGraph struct {
	chunkBytes int
	byMask     map[mask.Mask]*archetype
	all        []*archetype
	root       *archetype // the empty-set archetype, pre-created
}

func newArchetypeGraph(chunkBytes int) *archetypeGraph {
	g := &archetypeGraph{
		chunkBytes: chunkBytes,
		byMask:     make(map[mask.Mask]*archetype),
	}
	g.root = g.findOrCreate(ComponentSet{})
	return g
}

// findOrCreate returns the archetype for set, creating and indexing one
// if none exists yet.
func (g *archetypeGraph) findOrCreate(set ComponentSet) *archetype {
	key := set.mask()
	if a, ok := g.byMask[key]; ok {
		return a
	}
	a := newArchetype(archetypeID(len(g.all)), set, g.chunkBytes)
	g.byMask[key] = a
	g.all = append(g.all, a)
	if cb := Config.events.OnArchetypeCreated; cb != nil {
		cb(set)
	}
	return a
}

// traverseAdd follows current's cached add-edge for cid, computing and
// caching it on first traversal.
func (g *archetypeGraph) traverseAdd(current *archetype, cid ComponentID) *archetype {
	if next, ok := current.addEdge[cid]; ok {
		return next
	}
	next := g.findOrCreate(current.layout.set.withAdded(cid))
	current.addEdge[cid] = next
	next.removeEdge[cid] = current
	return next
}

// traverseRemove follows current's cached remove-edge for cid,
// computing and caching it on first traversal.
func (g *archetypeGraph) traverseRemove(current *archetype, cid ComponentID) *archetype {
	if next, ok := current.removeEdge[cid]; ok {
		return next
	}
	next := g.findOrCreate(current.layout.set.withRemoved(cid))
	current.removeEdge[cid] = next
	next.addEdge[cid] = current
	return next
}

// archetypes returns every archetype in creation order, the order
// view and query selection is stable against.
func (g *archetypeGraph) archetypes() []*archetype {
	return g.all
}
