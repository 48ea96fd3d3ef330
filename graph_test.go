package silo

import "testing"

func TestArchetypeGraphFindOrCreateDedups(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()

	g := newArchetypeGraph(defaultChunkBytes)
	setA, _ := newComponentSet(pos, vel)
	setB, _ := newComponentSet(vel, pos) // same set, different construction order

	a1 := g.findOrCreate(setA)
	a2 := g.findOrCreate(setB)
	if a1 != a2 {
		t.Fatalf("two component sets with the same members must map to one archetype")
	}
}

func TestArchetypeGraphEdgeCaching(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()

	g := newArchetypeGraph(defaultChunkBytes)
	empty, _ := newComponentSet()
	root := g.findOrCreate(empty)

	withPos := g.traverseAdd(root, pos.ID())
	if !withPos.layout.set.equal(ComponentSet{pos.ID()}) {
		t.Fatalf("traverseAdd should land on the {Position} archetype")
	}

	// Cached edge should return the identical archetype on a second call.
	again := g.traverseAdd(root, pos.ID())
	if again != withPos {
		t.Fatalf("traverseAdd should reuse the cached edge")
	}

	back := g.traverseRemove(withPos, pos.ID())
	if back != root {
		t.Fatalf("traverseRemove should follow the reciprocal edge back to root")
	}

	withBoth := g.traverseAdd(withPos, vel.ID())
	if !withBoth.layout.set.equal(ComponentSet{pos.ID(), vel.ID()}) {
		t.Fatalf("traverseAdd from {Position} by Velocity should land on {Position,Velocity}")
	}
}

func TestArchetypeGraphCreationOrderIsStable(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()
	health := RegisterComponent[Health]()

	g := newArchetypeGraph(defaultChunkBytes)
	setPos, _ := newComponentSet(pos)
	setVel, _ := newComponentSet(vel)
	setHealth, _ := newComponentSet(health)

	first := g.findOrCreate(setPos)
	second := g.findOrCreate(setVel)
	third := g.findOrCreate(setHealth)

	all := g.archetypes()
	idx := func(a *archetype) int {
		for i, x := range all {
			if x == a {
				return i
			}
		}
		return -1
	}
	if idx(first) >= idx(second) || idx(second) >= idx(third) {
		t.Fatalf("archetypes() should list archetypes in creation order")
	}
}
