/*
Package silo is an archetype-based Entity-Component-System (ECS) registry.

Silo stores heterogeneous component data keyed by opaque entity handles,
grouping entities by the exact set of component types they carry (their
"archetype"), and exposes typed, cache-friendly iteration over tuples of
component references.

Core Concepts:

  - Entity: an opaque, generational (id, generation) handle.
  - Component: a plain-data type attached to an entity.
  - Archetype: the storage bucket for all entities sharing one component set.
  - Chunk: a fixed-size, column-major slab of rows within an archetype.
  - View: a typed, lazy, single-pass sequence of component-reference tuples;
    once exhausted or closed it stays exhausted, and iterating again takes a
    new view.

Basic Usage:

	reg := silo.Factory.NewRegistry()

	position := silo.RegisterComponent[Position]()
	velocity := silo.RegisterComponent[Velocity]()

	e, _ := reg.Create(position, velocity)
	silo.Set(reg, e, position, Position{X: 1, Y: 2})
	silo.Set(reg, e, velocity, Velocity{X: 0.3, Y: -5})

	view, _ := silo.NewView2Mut[Position, Velocity](reg, position, velocity)
	defer view.Close()
	for view.Next() {
		pos, vel := view.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}

Silo's storage engine, archetype graph, and view machinery are the whole
of the library; application bootstrap, rendering, and scripting are
explicitly out of scope (see DESIGN.md).
*/
package silo
