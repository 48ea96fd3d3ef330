package silo

import "testing"

func TestBlueprintCacheCreate(t *testing.T) {
	resetGlobalMetadata()
	pos := RegisterComponent[Position]()
	health := RegisterComponent[Health]()

	cache := Factory.NewBlueprintCache(4)
	_, err := cache.Register("grunt", Blueprint{
		Components: []Component{pos, health},
		Init: func(r *Registry, e Entity) error {
			return Set(r, e, health, Health{Current: 10, Max: 10})
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	r := NewRegistry()
	e, err := r.CreateFromBlueprint(cache, "grunt")
	if err != nil {
		t.Fatalf("CreateFromBlueprint: %v", err)
	}

	h, err := Get(r, e, health)
	if err != nil {
		t.Fatalf("Get(health): %v", err)
	}
	if h.Current != 10 || h.Max != 10 {
		t.Fatalf("blueprint Init should have run: got %+v", h)
	}
}

func TestBlueprintCacheCapacity(t *testing.T) {
	cache := Factory.NewBlueprintCache(1)
	if _, err := cache.Register("a", Blueprint{}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := cache.Register("b", Blueprint{}); err == nil {
		t.Fatalf("Register beyond capacity should error")
	}
}

func TestBlueprintCacheUnknownName(t *testing.T) {
	resetGlobalMetadata()
	cache := Factory.NewBlueprintCache(1)
	r := NewRegistry()
	if _, err := r.CreateFromBlueprint(cache, "missing"); err == nil {
		t.Fatalf("CreateFromBlueprint with an unregistered name should error")
	}
}
