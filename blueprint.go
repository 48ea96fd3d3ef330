package silo

import "fmt"

// Blueprint is a named template for entity creation: a fixed component
// set plus a constructor that fills each instance's initial values.
type Blueprint struct {
	Name       string
	Components []Component
	Init       func(r *Registry, e Entity) error
}

// BlueprintCache stores Blueprints by name with a fixed capacity,
// mirroring warehouse's Cache[T] interface shape.
type BlueprintCache interface {
	GetIndex(name string) (int, bool)
	GetItem(index int) *Blueprint
	Register(name string, bp Blueprint) (int, error)
	Clear()
}

// simpleBlueprintCache is a dense, append-only BlueprintCache bounded by
// maxCapacity.
type simpleBlueprintCache struct {
	items       []Blueprint
	itemIndices map[string]int
	maxCapacity int
}

func newSimpleBlueprintCache(cap int) *simpleBlueprintCache {
	return &simpleBlueprintCache{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}

func (c *simpleBlueprintCache) GetIndex(name string) (int, bool) {
	idx, ok := c.itemIndices[name]
	return idx, ok
}

func (c *simpleBlueprintCache) GetItem(index int) *Blueprint {
	return &c.items[index]
}

func (c *simpleBlueprintCache) Register(name string, bp Blueprint) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("silo: blueprint cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[name] = idx
	bp.Name = name
	c.items = append(c.items, bp)
	return idx, nil
}

func (c *simpleBlueprintCache) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}

// CreateFromBlueprint creates a new entity using bp's component set and
// runs bp.Init (if any) against it once placed.
func (r *Registry) CreateFromBlueprint(cache BlueprintCache, name string) (Entity, error) {
	idx, ok := cache.GetIndex(name)
	if !ok {
		return Entity{}, fmt.Errorf("silo: no blueprint registered under %q", name)
	}
	bp := cache.GetItem(idx)
	e, err := r.Create(bp.Components...)
	if err != nil {
		return Entity{}, err
	}
	if bp.Init != nil {
		if err := bp.Init(r, e); err != nil {
			return e, err
		}
	}
	return e, nil
}
