package silo

import "testing"

func TestRegistryCreateGetSet(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()

	r := NewRegistry()
	e, err := r.Create(pos, vel)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := Set(r, e, pos, Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := Get(r, e, pos)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != (Position{X: 1, Y: 2}) {
		t.Fatalf("Get() = %+v, want {1 2}", got)
	}

	ptr, err := GetMut(r, e, vel)
	if err != nil {
		t.Fatalf("GetMut: %v", err)
	}
	ptr.X = 9
	again, _ := Get(r, e, vel)
	if again.X != 9 {
		t.Fatalf("mutation through GetMut should be visible to a later Get: got %v", again.X)
	}
}

func TestRegistryCreateDuplicateComponent(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()
	if _, err := r.Create(pos, pos); err == nil {
		t.Fatalf("Create with a repeated component should error")
	}
}

func TestRegistryDestroyRecyclesAndStalesHandle(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()

	e, _ := r.Create(pos)
	if !r.Alive(e) {
		t.Fatalf("freshly created entity should be alive")
	}
	if err := r.Destroy(e); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if r.Alive(e) {
		t.Fatalf("destroyed entity should no longer be alive")
	}
	if err := r.Destroy(e); err == nil {
		t.Fatalf("destroying an already-destroyed handle should error")
	}
}

func TestRegistryDestroyPatchesSwappedLocation(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()

	e1, _ := r.Create(pos)
	Set(r, e1, pos, Position{X: 1})
	e2, _ := r.Create(pos)
	Set(r, e2, pos, Position{X: 2})

	if err := r.Destroy(e1); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	// e2 may have been relocated to fill e1's slot; Get must still resolve it
	// through the patched location map.
	got, err := Get(r, e2, pos)
	if err != nil {
		t.Fatalf("Get(e2) after destroying e1: %v", err)
	}
	if got.X != 2 {
		t.Fatalf("Get(e2).X = %v, want 2 (location map should track the swap)", got.X)
	}
}

func TestRegistryAddRemoveComponentMovesArchetype(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	vel := RegisterComponent[Velocity]()
	r := NewRegistry()

	e, _ := r.Create(pos)
	if has, _ := r.Has(e, vel.ID()); has {
		t.Fatalf("entity shouldn't have Velocity yet")
	}

	if err := AddComponent(r, e, vel); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if has, _ := r.Has(e, vel.ID()); !has {
		t.Fatalf("entity should carry Velocity after AddComponent")
	}

	if err := RemoveComponent(r, e, pos); err != nil {
		t.Fatalf("RemoveComponent: %v", err)
	}
	if has, _ := r.Has(e, pos.ID()); has {
		t.Fatalf("entity should no longer carry Position after RemoveComponent")
	}
	if err := RemoveComponent(r, e, pos); err == nil {
		t.Fatalf("removing an already-absent component should error")
	}
}

func TestRegistryAddComponentOnExistingIsNoOp(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()

	e, _ := r.Create(pos)
	if err := Set(r, e, pos, Position{X: 7, Y: 9}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := AddComponent(r, e, pos); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	got, err := Get(r, e, pos)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.X != 7 || got.Y != 9 {
		t.Fatalf("AddComponent on an already-present component clobbered the value: got %+v", got)
	}
}

func TestRegistryLockedRejectsStructuralMutation(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()
	e, _ := r.Create(pos)

	v, err := NewView1[Position](r, pos)
	if err != nil {
		t.Fatalf("NewView1: %v", err)
	}
	defer v.Close()

	if _, err := r.Create(pos); err == nil {
		t.Fatalf("Create while a view is open should error")
	}
	if err := r.Destroy(e); err == nil {
		t.Fatalf("Destroy while a view is open should error")
	}
}

func TestRegistrySharedViewsCoexistExclusiveDoesNot(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	r := NewRegistry()
	r.Create(pos)

	v1, err := NewView1[Position](r, pos)
	if err != nil {
		t.Fatalf("first shared view: %v", err)
	}
	defer v1.Close()

	v2, err := NewView1[Position](r, pos)
	if err != nil {
		t.Fatalf("a second shared view should be allowed to coexist: %v", err)
	}
	defer v2.Close()

	if _, err := NewView1Mut[Position](r, pos); err == nil {
		t.Fatalf("an exclusive view should not be allowed while shared views are open")
	}
}
